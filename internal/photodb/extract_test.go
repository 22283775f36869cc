package photodb

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func newFixtureStore(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "Photos.sqlite")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open fixture store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ddl := []string{
		`CREATE TABLE ZASSET (
			Z_PK INTEGER PRIMARY KEY,
			ZFILENAME TEXT,
			ZDIRECTORY TEXT,
			ZFAVORITE INTEGER,
			ZTRASHEDSTATE INTEGER
		)`,
		`CREATE TABLE ZADDITIONALASSETATTRIBUTES (
			Z_PK INTEGER PRIMARY KEY,
			ZASSET INTEGER,
			ZTITLE TEXT
		)`,
		`CREATE TABLE ZASSETDESCRIPTION (
			Z_PK INTEGER PRIMARY KEY,
			ZASSETATTRIBUTES INTEGER,
			ZLONGDESCRIPTION TEXT
		)`,
	}
	for _, stmt := range ddl {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("create fixture schema: %v", err)
		}
	}
	return db
}

func insertAsset(t *testing.T, db *sql.DB, pk int, filename, directory string, favorite, trashed int) {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO ZASSET (Z_PK, ZFILENAME, ZDIRECTORY, ZFAVORITE, ZTRASHEDSTATE) VALUES (?, ?, ?, ?, ?)",
		pk, filename, directory, favorite, trashed)
	if err != nil {
		t.Fatalf("insert asset: %v", err)
	}
}

func insertDescription(t *testing.T, db *sql.DB, assetPK int, title, long string) {
	t.Helper()
	if _, err := db.Exec(
		"INSERT INTO ZADDITIONALASSETATTRIBUTES (Z_PK, ZASSET, ZTITLE) VALUES (?, ?, ?)",
		assetPK, assetPK, title); err != nil {
		t.Fatalf("insert attributes: %v", err)
	}
	if long != "" {
		if _, err := db.Exec(
			"INSERT INTO ZASSETDESCRIPTION (Z_PK, ZASSETATTRIBUTES, ZLONGDESCRIPTION) VALUES (?, ?, ?)",
			assetPK, assetPK, long); err != nil {
			t.Fatalf("insert description: %v", err)
		}
	}
}

func resolveFixturePlan(t *testing.T, db *sql.DB) *Plan {
	t.Helper()
	tables, err := TableColumns(db)
	if err != nil {
		t.Fatalf("TableColumns: %v", err)
	}
	plan, err := ResolvePlan(tables)
	if err != nil {
		t.Fatalf("ResolvePlan: %v", err)
	}
	return plan
}

func TestReadMetadataInclusionPredicate(t *testing.T) {
	db := newFixtureStore(t)

	insertAsset(t, db, 1, "IMG_0001.JPG", "DCIM/100APPLE", 1, 0) // favorite, no description
	insertAsset(t, db, 2, "IMG_0002.HEIC", "DCIM/101APPLE", 0, 0)
	insertDescription(t, db, 2, "", "Sunset")                    // description only
	insertAsset(t, db, 3, "IMG_0003.JPG", "DCIM/100APPLE", 0, 0) // neither: must not be emitted
	insertAsset(t, db, 4, "IMG_0004.JPG", "DCIM/100APPLE", 1, 1) // trashed: must not be emitted

	metadata, duplicates, err := ReadMetadata(db, resolveFixturePlan(t, db))
	if err != nil {
		t.Fatalf("ReadMetadata: %v", err)
	}
	if duplicates != 0 {
		t.Errorf("duplicates = %d, want 0", duplicates)
	}
	if len(metadata) != 2 {
		t.Fatalf("got %d records, want 2: %v", len(metadata), metadata)
	}

	fav, ok := metadata["100apple/img_0001.jpg"]
	if !ok {
		t.Fatal("favorite asset missing from metadata")
	}
	if !fav.Favorite || fav.Description != "" {
		t.Errorf("favorite record = %+v", fav)
	}
	if fav.RelPath != "100APPLE/IMG_0001.JPG" {
		t.Errorf("RelPath = %q, want collection-truncated original casing", fav.RelPath)
	}

	desc, ok := metadata["101apple/img_0002.heic"]
	if !ok {
		t.Fatal("described asset missing from metadata")
	}
	if desc.Favorite || desc.Description != "Sunset" {
		t.Errorf("described record = %+v", desc)
	}
}

func TestReadMetadataDescriptionPrecedence(t *testing.T) {
	db := newFixtureStore(t)

	// Both a title and a long description: the long form must win.
	insertAsset(t, db, 1, "IMG_0009.JPG", "DCIM/100APPLE", 0, 0)
	insertDescription(t, db, 1, "short title", "the long description")

	metadata, _, err := ReadMetadata(db, resolveFixturePlan(t, db))
	if err != nil {
		t.Fatalf("ReadMetadata: %v", err)
	}

	got := metadata["100apple/img_0009.jpg"].Description
	if got != "the long description" {
		t.Errorf("Description = %q, want long-form value", got)
	}
}

func TestReadMetadataDuplicateKeys(t *testing.T) {
	db := newFixtureStore(t)

	// Same logical path with different casing collapses to one key; the first
	// row wins and the collision is counted, not fatal.
	insertAsset(t, db, 1, "IMG_0001.JPG", "DCIM/100APPLE", 1, 0)
	insertAsset(t, db, 2, "img_0001.jpg", "dcim/100apple", 1, 0)

	metadata, duplicates, err := ReadMetadata(db, resolveFixturePlan(t, db))
	if err != nil {
		t.Fatalf("ReadMetadata: %v", err)
	}
	if duplicates != 1 {
		t.Errorf("duplicates = %d, want 1", duplicates)
	}
	if len(metadata) != 1 {
		t.Errorf("got %d records, want 1", len(metadata))
	}
}

func TestReadMetadataUnicodeDescription(t *testing.T) {
	db := newFixtureStore(t)

	insertAsset(t, db, 1, "IMG_0010.HEIC", "DCIM/102APPLE", 0, 0)
	insertDescription(t, db, 1, "", "Balaton nyáron — árvíztűrő tükörfúrógép")

	metadata, _, err := ReadMetadata(db, resolveFixturePlan(t, db))
	if err != nil {
		t.Fatalf("ReadMetadata: %v", err)
	}
	got := metadata["102apple/img_0010.heic"].Description
	if got != "Balaton nyáron — árvíztűrő tükörfúrógép" {
		t.Errorf("Description = %q, unicode text must round-trip", got)
	}
}
