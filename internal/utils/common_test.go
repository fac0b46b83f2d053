package utils

import "testing"

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		ptr  string
		want string
	}{
		{"", ""},
		{"#", ""},
		{"/log_level", "log_level"},
		{"#/foo/bar/0/baz", "foo.bar[0].baz"},
		{"/a~1b/c~0d", "a/b.c~d"},
	}

	for _, tt := range tests {
		t.Run(tt.ptr, func(t *testing.T) {
			if got := JSONPointerToPath(tt.ptr); got != tt.want {
				t.Errorf("JSONPointerToPath(%q): got %q, want %q", tt.ptr, got, tt.want)
			}
		})
	}
}

func TestBoolFromString(t *testing.T) {
	for _, s := range []string{"1", "true", "TRUE", " yes ", "on"} {
		if !BoolFromString(s) {
			t.Errorf("BoolFromString(%q): got false, want true", s)
		}
	}
	for _, s := range []string{"", "0", "false", "off", "nope"} {
		if BoolFromString(s) {
			t.Errorf("BoolFromString(%q): got true, want false", s)
		}
	}
}

func TestNormalizeName(t *testing.T) {
	if got := NormalizeName("  SQLite "); got != "sqlite" {
		t.Errorf("NormalizeName: got %q, want sqlite", got)
	}
}
