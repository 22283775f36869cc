package pathkey

import "testing"

func TestIsCollectionSegment(t *testing.T) {
	tests := []struct {
		segment string
		want    bool
	}{
		{"100APPLE", true},
		{"101APPLE", true},
		{"9apple", true},
		{"100Apple", true},
		{"APPLE", false},
		{"apple", false},
		{"100APPLES", false},
		{"X100APPLE", false},
		{"100", false},
		{"", false},
		{"100BANANA", false},
	}

	for _, tt := range tests {
		t.Run(tt.segment, func(t *testing.T) {
			if got := IsCollectionSegment(tt.segment); got != tt.want {
				t.Errorf("IsCollectionSegment(%q) = %v, want %v", tt.segment, got, tt.want)
			}
		})
	}
}

func TestJoin(t *testing.T) {
	tests := []struct {
		name      string
		directory string
		filename  string
		want      string
	}{
		{"empty directory", "", "IMG_0001.JPG", "IMG_0001.JPG"},
		{"simple", "DCIM/100APPLE", "IMG_0001.JPG", "DCIM/100APPLE/IMG_0001.JPG"},
		{"backslashes", `DCIM\100APPLE`, "IMG_0001.JPG", "DCIM/100APPLE/IMG_0001.JPG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Join(tt.directory, tt.filename); got != tt.want {
				t.Errorf("Join(%q, %q) = %q, want %q", tt.directory, tt.filename, got, tt.want)
			}
		})
	}
}

func TestTruncateToCollection(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"database path", "DCIM/100APPLE/IMG_0001.JPG", "100APPLE/IMG_0001.JPG"},
		{"deep root", "/mnt/backup/phone/DCIM/101APPLE/IMG_2.HEIC", "101APPLE/IMG_2.HEIC"},
		{"no marker", "somewhere/else/IMG_1.JPG", "somewhere/else/IMG_1.JPG"},
		{"windows separators", `E:\DCIM\100APPLE\IMG_0001.JPG`, "100APPLE/IMG_0001.JPG"},
		{"marker is first segment", "100APPLE/IMG_0001.JPG", "100APPLE/IMG_0001.JPG"},
		{"rightmost marker wins", "100APPLE/nested/101APPLE/IMG_3.PNG", "101APPLE/IMG_3.PNG"},
		{"lowercase marker", "dcim/100apple/img_0001.jpg", "100apple/img_0001.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateToCollection(tt.path); got != tt.want {
				t.Errorf("TruncateToCollection(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

// Keys must be identical no matter which side of the join a path came from:
// different roots, different casing, different separators.
func TestKeyCrossSourceEquality(t *testing.T) {
	tests := []struct {
		name string
		db   string
		disk string
	}{
		{
			"casing differs",
			"DCIM/100APPLE/IMG_0001.JPG",
			"100apple/img_0001.jpg",
		},
		{
			"disk has extra root",
			"DCIM/101APPLE/IMG_0042.HEIC",
			"phone-backup/2024/DCIM/101APPLE/IMG_0042.HEIC",
		},
		{
			"windows style on one side",
			`DCIM\100APPLE\IMG_7.PNG`,
			"DCIM/100APPLE/IMG_7.PNG",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if Key(tt.db) != Key(tt.disk) {
				t.Errorf("keys differ: %q vs %q", Key(tt.db), Key(tt.disk))
			}
		})
	}
}

func TestKeyIsLowercase(t *testing.T) {
	got := Key("DCIM/100APPLE/IMG_0001.JPG")
	want := "100apple/img_0001.jpg"
	if got != want {
		t.Errorf("Key = %q, want %q", got, want)
	}
}
