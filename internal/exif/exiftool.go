// Package exif wraps exiftool as the embedded-metadata collaborator: reading
// what is already stored inside an image file and writing rating/description
// updates back. All character-encoding concerns are delegated to exiftool.
package exif

import (
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	exiftool "github.com/barasher/go-exiftool"
)

// Data holds the embedded metadata values relevant to the migration. Nil
// means the tag is absent from the file.
type Data struct {
	Rating      *int
	Description *string
}

// Check verifies that the exiftool binary is reachable and returns its
// resolved path and version. binary may be empty to mean "exiftool from PATH".
func Check(binary string) (path, version string, err error) {
	if binary == "" {
		binary = "exiftool"
	}
	path, err = exec.LookPath(binary)
	if err != nil {
		return "", "", fmt.Errorf("exiftool not found: %w", err)
	}

	out, err := exec.Command(path, "-ver").Output()
	if err != nil {
		return "", "", fmt.Errorf("failed to execute exiftool -ver: %w", err)
	}
	return path, strings.TrimSpace(string(out)), nil
}

// Tool is a stay-open exiftool session. Invocations are synchronous; the
// session must not be shared across goroutines.
type Tool struct {
	et *exiftool.Exiftool
}

// Options configures a Tool.
type Options struct {
	// BinaryPath overrides the exiftool binary location; empty uses PATH.
	BinaryPath string
	// OverwriteOriginal drops exiftool's *_original backup files on writes.
	OverwriteOriginal bool
}

// New starts an exiftool session.
func New(opts Options) (*Tool, error) {
	initOpts := []func(*exiftool.Exiftool) error{
		exiftool.Charset("utf8"),
	}
	if opts.BinaryPath != "" {
		initOpts = append(initOpts, exiftool.SetExiftoolBinaryPath(opts.BinaryPath))
	}
	if !opts.OverwriteOriginal {
		// go-exiftool passes -overwrite_original unless told to keep backups.
		initOpts = append(initOpts, exiftool.BackupOriginal())
	}

	et, err := exiftool.NewExiftool(initOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to start exiftool: %w", err)
	}
	return &Tool{et: et}, nil
}

// Close shuts the exiftool session down.
func (t *Tool) Close() error {
	return t.et.Close()
}

// Read returns the embedded rating and description for one file.
func (t *Tool) Read(path string) (Data, error) {
	fms := t.et.ExtractMetadata(path)
	if len(fms) == 0 {
		return Data{}, fmt.Errorf("exiftool returned no result for %s", path)
	}
	fm := fms[0]
	if fm.Err != nil {
		return Data{}, fmt.Errorf("failed to read metadata from %s: %w", path, fm.Err)
	}

	var data Data
	if v, err := fm.GetInt("Rating"); err == nil {
		rating := int(v)
		data.Rating = &rating
	}
	// Description wins over ImageDescription when both are present.
	for _, tag := range []string{"ImageDescription", "Description"} {
		if v, err := fm.GetString(tag); err == nil && v != "" {
			desc := v
			data.Description = &desc
		}
	}
	return data, nil
}

// Write applies the given changes to one file. Nil fields are left untouched;
// a call with nothing to write is a no-op.
func (t *Tool) Write(path string, rating *int, description *string) error {
	if rating == nil && description == nil {
		return nil
	}

	fm := exiftool.FileMetadata{File: path, Fields: map[string]interface{}{}}
	if rating != nil {
		fm.SetInt("Rating", int64(*rating))
	}
	if description != nil {
		fm.SetString("ImageDescription", *description)
		fm.SetString("Description", *description)
	}

	slog.Info("Writing metadata", "file", path, "fields", fieldNames(fm))

	fms := []exiftool.FileMetadata{fm}
	t.et.WriteMetadata(fms)
	if fms[0].Err != nil {
		return fmt.Errorf("failed to write metadata to %s: %w", path, fms[0].Err)
	}
	return nil
}

func fieldNames(fm exiftool.FileMetadata) []string {
	names := make([]string, 0, len(fm.Fields))
	for name := range fm.Fields {
		names = append(names, name)
	}
	return names
}
