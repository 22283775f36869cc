// Package pathkey canonicalizes photo paths from the Photos database and the
// file system into a shared join key.
//
// The database stores paths like "DCIM/100APPLE/IMG_0001.JPG" while a copied
// library on disk may sit under an arbitrary root with different casing. Both
// sides are truncated at the DCIM collection folder (digits + "APPLE") and
// lower-cased so that the same photo always produces the same key.
package pathkey

import "strings"

// CollectionSuffix is the token that, preceded by one or more digits, marks a
// DCIM batch-import folder (100APPLE, 101APPLE, ...).
const CollectionSuffix = "APPLE"

// IsCollectionSegment reports whether a single path segment is a collection
// folder name: one or more digits followed by the APPLE suffix, any casing.
func IsCollectionSegment(segment string) bool {
	if len(segment) <= len(CollectionSuffix) {
		return false
	}
	digits := segment[:len(segment)-len(CollectionSuffix)]
	if !strings.EqualFold(segment[len(digits):], CollectionSuffix) {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Join combines a directory and filename into a single forward-slash path.
// An empty directory yields the bare filename.
func Join(directory, filename string) string {
	if directory == "" {
		return filename
	}
	return strings.ReplaceAll(directory, "\\", "/") + "/" + filename
}

// TruncateToCollection cuts a path down to its collection-relative suffix:
// everything before the rightmost collection segment is discarded, the segment
// itself and everything after it are kept. Paths without a collection segment
// are returned unchanged (separators still normalized to forward slashes).
func TruncateToCollection(p string) string {
	normalized := strings.ReplaceAll(p, "\\", "/")
	parts := strings.Split(normalized, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if IsCollectionSegment(parts[i]) {
			return strings.Join(parts[i:], "/")
		}
	}
	return normalized
}

// Key produces the canonical join key for a path: collection-truncated and
// lower-cased. The same logical file yields byte-identical keys regardless of
// which source the path came from.
func Key(p string) string {
	return strings.ToLower(TruncateToCollection(p))
}
