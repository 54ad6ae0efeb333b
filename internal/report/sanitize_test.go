package report

import (
	"regexp"
	"strings"
	"testing"
)

var sanitizedRe = regexp.MustCompile(`^[A-Za-z0-9_]*$`)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Old Mill, Vltava river bank", "Old_Mill_Vltava_river_bank"},
		{"  --weird__ name!!  ", "weird_name"},
		{"___", ""},
		{"", ""},
		{"plain", "plain"},
		{"Karlův most", "Karl_v_most"},
		{"a/b\\c:d", "a_b_c_d"},
	}
	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestSanitizeFilename_Properties(t *testing.T) {
	inputs := []string{
		"Old Mill, Vltava river bank",
		strings.Repeat("location name with spaces ", 20),
		strings.Repeat("_a_", 100),
		"!!!###",
		"Ünïcødé tîtlè",
	}
	for _, in := range inputs {
		got := SanitizeFilename(in)
		if !sanitizedRe.MatchString(got) {
			t.Errorf("%q: output %q contains forbidden characters", in, got)
		}
		if len(got) > maxFilenameLen {
			t.Errorf("%q: output length %d exceeds %d", in, len(got), maxFilenameLen)
		}
		if strings.HasPrefix(got, "_") || strings.HasSuffix(got, "_") {
			t.Errorf("%q: output %q has leading or trailing underscore", in, got)
		}
		// Idempotence.
		if again := SanitizeFilename(got); again != got {
			t.Errorf("%q: not idempotent, %q != %q", in, got, again)
		}
	}
}
