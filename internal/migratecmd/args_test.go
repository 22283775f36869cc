package migratecmd

import "testing"

func TestStripArgQuotes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"C:\photos"`, `C:\photos`},
		{`  Photos.sqlite  `, "Photos.sqlite"},
		{"plain", "plain"},
		{`""`, ""},
	}

	for _, tt := range tests {
		if got := stripArgQuotes(tt.in); got != tt.want {
			t.Errorf("stripArgQuotes(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanupPathArg(t *testing.T) {
	tests := []struct {
		in          string
		wantPath    string
		wantVerbose bool
	}{
		{"/photos", "/photos", false},
		{`"/photos -v"`, "/photos", true},
		{"/photos --verbose", "/photos", true},
		{"/photos-v", "/photos-v", false},
	}

	for _, tt := range tests {
		path, verbose := cleanupPathArg(tt.in)
		if path != tt.wantPath || verbose != tt.wantVerbose {
			t.Errorf("cleanupPathArg(%q) = (%q, %v), want (%q, %v)",
				tt.in, path, verbose, tt.wantPath, tt.wantVerbose)
		}
	}
}
