// Package scan walks a copied photo library and indexes the image files that
// can participate in the migration.
package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"favsaver/internal/pathkey"
)

// SupportedExtensions are the photo formats exiftool is asked to touch.
var SupportedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".heic": true,
	".png":  true,
}

// ErrRootMissing indicates the scan root does not exist.
var ErrRootMissing = errors.New("photo directory not found")

// FileRecord is one discovered file on disk.
type FileRecord struct {
	// RelPath is relative to the scan root, forward slashes, original casing.
	RelPath  string
	FullPath string
}

// Result is the outcome of one library scan.
type Result struct {
	// Files maps normalized keys to discovered files.
	Files map[string]FileRecord
	// Duplicates counts files dropped because their normalized key collided
	// with an earlier file.
	Duplicates int
	// CollectionSeen is false when no 100APPLE-style folder exists anywhere
	// under the root; diagnostic only, the scan itself still succeeds.
	CollectionSeen bool
}

// PhotoFiles walks the tree under root and returns every supported photo file
// that lives below a collection folder, keyed by normalized path. A missing
// root is fatal; everything else degrades to warnings.
func PhotoFiles(root string) (*Result, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRootMissing, root)
	}

	result := &Result{Files: make(map[string]FileRecord)}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subdirectories are skipped, not fatal.
			slog.Warn("Skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && pathkey.IsCollectionSegment(d.Name()) {
				result.CollectionSeen = true
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if !underCollectionFolder(rel) {
			return nil
		}

		if !SupportedExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		key := pathkey.Key(rel)
		if _, exists := result.Files[key]; exists {
			slog.Warn("Duplicate file encountered after normalization", "path", rel)
			result.Duplicates++
			return nil
		}
		result.Files[key] = FileRecord{RelPath: rel, FullPath: path}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	slog.Info("Discovered photo files", "count", len(result.Files), "root", root)
	return result, nil
}

// underCollectionFolder reports whether any ancestor directory segment of a
// root-relative file path is a collection folder.
func underCollectionFolder(rel string) bool {
	parts := strings.Split(rel, "/")
	if len(parts) < 2 {
		// File directly under the root has no ancestor directories.
		return false
	}
	for _, part := range parts[:len(parts)-1] {
		if pathkey.IsCollectionSegment(part) {
			return true
		}
	}
	return false
}
