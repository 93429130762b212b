package randx

import (
	"strings"
	"testing"
)

func TestImageKey(t *testing.T) {
	key := ImageKey("posts")

	if !strings.HasPrefix(key, "posts/") {
		t.Errorf("key %q missing folder prefix", key)
	}
	if !strings.HasSuffix(key, ".jpg") {
		t.Errorf("key %q missing jpg extension", key)
	}
	if key == ImageKey("posts") {
		t.Error("two keys collided")
	}
}

func TestIsValidObjectIDHex(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"64f1c0ffee64f1c0ffee64f1", true},
		{"64F1C0FFEE64F1C0FFEE64F1", true},
		{"", false},
		{"64f1c0ffee", false},
		{"64f1c0ffee64f1c0ffee64f1aa", false},
		{"zzf1c0ffee64f1c0ffee64f1", false},
	}

	for _, tc := range cases {
		if got := IsValidObjectIDHex(tc.in); got != tc.want {
			t.Errorf("IsValidObjectIDHex(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
