package analyzer

import "testing"

var porterCases = []struct {
	in, want string
}{
	// step 1a
	{"caresses", "caress"},
	{"ponies", "poni"},
	{"ties", "ti"},
	{"caress", "caress"},
	{"cats", "cat"},
	// step 1b
	{"feed", "feed"},
	{"agreed", "agre"},
	{"plastered", "plaster"},
	{"motoring", "motor"},
	{"sing", "sing"},
	{"conflated", "conflat"},
	{"troubled", "troubl"},
	{"sized", "size"},
	{"hopping", "hop"},
	{"tanned", "tan"},
	{"falling", "fall"},
	{"hissing", "hiss"},
	{"fizzed", "fizz"},
	{"failing", "fail"},
	{"filing", "file"},
	// step 1c
	{"happy", "happi"},
	{"sky", "sky"},
	{"query", "queri"},
	{"queries", "queri"},
	// step 2
	{"relational", "relat"},
	{"conditional", "condit"},
	{"rational", "ration"},
	// steps 3 and 4
	{"triplicate", "triplic"},
	{"formative", "form"},
	{"formalize", "formal"},
	{"electricity", "electr"},
	{"adjustable", "adjust"},
	{"defensible", "defens"},
	{"connection", "connect"},
	{"connections", "connect"},
	{"connecting", "connect"},
	{"authenticate", "authent"},
	{"authentication", "authent"},
	// step 5
	{"probate", "probat"},
	{"rate", "rate"},
	{"cease", "ceas"},
	{"controlling", "control"},
	{"database", "databas"},
	{"running", "run"},
}

func TestStem(t *testing.T) {
	for _, tt := range porterCases {
		if got := Stem(tt.in); got != tt.want {
			t.Errorf("Stem(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStemShortWordsPassThrough(t *testing.T) {
	for _, w := range []string{"", "a", "go", "io"} {
		if got := Stem(w); got != w {
			t.Errorf("Stem(%q) = %q, want unchanged", w, got)
		}
	}
}

func TestStemLowercasesInput(t *testing.T) {
	if got := Stem("Running"); got != "run" {
		t.Errorf("Stem(%q) = %q, want %q", "Running", got, "run")
	}
}

// Inflected forms of the same lemma map to one stem, which is the property
// the document and query pipelines rely on.
func TestStemConflatesInflections(t *testing.T) {
	groups := [][]string{
		{"connect", "connected", "connecting", "connection", "connections"},
		{"authenticate", "authentication", "authenticating"},
		{"query", "queries", "querying"},
		{"index", "indexes", "indexing"},
	}
	for _, group := range groups {
		want := Stem(group[0])
		for _, w := range group[1:] {
			if got := Stem(w); got != want {
				t.Errorf("Stem(%q) = %q, want %q (stem of %q)", w, got, want, group[0])
			}
		}
	}
}
