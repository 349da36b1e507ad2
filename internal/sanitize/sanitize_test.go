package sanitize

import (
	"strings"
	"testing"
)

func TestClean(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		`a\b/c*d?e:f"g<h>i|j`:   "a_b_c_d_e_f_g_h_i_j",
		"  My   Cool\tVideo  ":  "My Cool Video",
		"already clean":         "already clean",
		"tabs\t\tand\nnewlines": "tabs and newlines",
		"AAA / BBB":             "AAA _ BBB",
		"a /b":                  "a _b",
		"":                      "",
		"   ":                   "audio",
		`***`:                   "___",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			if got := Clean(in); got != want {
				t.Fatalf("Clean(%q) = %q, want %q", in, got, want)
			}
		})
	}
}

func TestCleanRemovesForbiddenRunes(t *testing.T) {
	t.Parallel()

	got := Clean(`Movie: "The/Sequel" <Part 2>?`)
	for _, r := range `\/*?:"<>|` {
		if strings.ContainsRune(got, r) {
			t.Fatalf("output %q still contains %q", got, r)
		}
	}
}

func TestCleanTruncates(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 150) + " " + strings.Repeat("y", 150)
	got := Clean(long)
	if n := len([]rune(got)); n > 200 {
		t.Fatalf("length %d exceeds bound", n)
	}
	if got == "" {
		t.Fatal("non-empty input produced empty result")
	}
	if strings.HasSuffix(got, " ") {
		t.Fatalf("truncated result has trailing space: %q", got)
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	t.Parallel()

	in := `Weird * Name | With ? Everything`
	once := Clean(in)
	if twice := Clean(once); twice != once {
		t.Fatalf("Clean not idempotent: %q vs %q", once, twice)
	}
}
