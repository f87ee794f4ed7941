package version

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	v, c, d := Info()
	if v == "" || c == "" || d == "" {
		t.Errorf("Info should not return empty parts: version=%q commit=%q date=%q", v, c, d)
	}
}

func TestAccessorsMatchInfo(t *testing.T) {
	v, c, d := Info()
	if GetVersion() != v {
		t.Errorf("GetVersion (%s) should match Info version (%s)", GetVersion(), v)
	}
	if GetCommit() != c {
		t.Errorf("GetCommit (%s) should match Info commit (%s)", GetCommit(), c)
	}
	if GetDate() != d {
		t.Errorf("GetDate (%s) should match Info date (%s)", GetDate(), d)
	}
}

func TestString(t *testing.T) {
	s := String()
	for _, part := range []string{"version=", "commit=", "date="} {
		if !strings.Contains(s, part) {
			t.Errorf("String should contain %q, got %s", part, s)
		}
	}
}
