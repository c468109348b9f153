package upload

import (
	"regexp"
	"testing"
	"time"
)

var storedNamePattern = regexp.MustCompile(`^\d+-\d+(\.\w+)?$`)

func TestExtension(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"photo.png", ".png"},
		{"archive.tar.gz", ".gz"},
		{"README", ""},
		{"", ""},
		{".env", ".env"},
		{"trailing.", "."},
		{"../../etc/passwd", ""},
		{"dir.d/report.PDF", ".PDF"},
		{`C:\Users\me\scan.jpeg`, ".jpeg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Extension(tt.name); got != tt.want {
				t.Errorf("Extension(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestNamerDeterministic(t *testing.T) {
	n := &Namer{
		now:  func() time.Time { return time.UnixMilli(1700000000123) },
		intn: func(int) int { return 42 },
	}

	if got := n.Name("cat.png"); got != "1700000000123-42.png" {
		t.Errorf("Name = %q", got)
	}
	if got := n.Name("Makefile"); got != "1700000000123-42" {
		t.Errorf("Name without extension = %q", got)
	}
}

func TestNamerRandomBound(t *testing.T) {
	var bound int
	n := &Namer{
		now:  time.Now,
		intn: func(b int) int { bound = b; return b - 1 },
	}
	n.Name("x.txt")

	if bound != 1_000_000_000 {
		t.Errorf("random bound = %d, want 1e9", bound)
	}
}

func TestNewNamerMatchesPattern(t *testing.T) {
	n := NewNamer()
	for _, original := range []string{"a.png", "b", "c.tar.gz", "d.JPG"} {
		got := n.Name(original)
		if !storedNamePattern.MatchString(got) {
			t.Errorf("Name(%q) = %q does not match %s", original, got, storedNamePattern)
		}
		if Extension(got) != Extension(original) {
			t.Errorf("Name(%q) = %q lost the extension", original, got)
		}
	}
}
