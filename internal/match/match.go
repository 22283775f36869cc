// Package match joins database metadata to files discovered on disk.
package match

import (
	"log/slog"
	"sort"

	"favsaver/internal/photodb"
	"favsaver/internal/scan"
)

// Pair is one metadata record matched to one file by normalized key.
type Pair struct {
	Meta photodb.Meta
	File scan.FileRecord
}

// Join pairs every metadata record with the file sharing its key. Metadata
// without a file is only counted; files without metadata are left alone
// entirely. Pairs come back in key order so runs are reproducible.
func Join(metadata map[string]photodb.Meta, files map[string]scan.FileRecord) ([]Pair, int) {
	keys := make([]string, 0, len(metadata))
	for key := range metadata {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var pairs []Pair
	unmatched := 0
	for _, key := range keys {
		file, ok := files[key]
		if !ok {
			unmatched++
			continue
		}
		pairs = append(pairs, Pair{Meta: metadata[key], File: file})
	}

	slog.Info("Matched files between database and disk", "matched", len(pairs), "unmatched_metadata", unmatched)
	return pairs, unmatched
}
