package analyzer

import (
	"reflect"
	"testing"
)

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "fenced code block removed",
			in:   "before\n```go\nfunc main() {}\n```\nafter",
			want: []string{"before", "after"},
		},
		{
			name: "inline code removed",
			in:   "call `doThing()` now",
			want: []string{"call", "now"},
		},
		{
			name: "link keeps label drops url",
			in:   "see [the guide](https://example.com/guide) here",
			want: []string{"see", "the", "guide", "here"},
		},
		{
			name: "header markers stripped",
			in:   "## Getting Started",
			want: []string{"getting", "started"},
		},
		{
			name: "emphasis markers stripped",
			in:   "this is **important** and *this* too",
			want: []string{"this", "is", "important", "and", "this", "too"},
		},
		{
			name: "edge underscores are emphasis interior ones are not",
			in:   "_emphasized_ but snake_case survives",
			want: []string{"emphasized", "but", "snake_case", "survives"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "lowercases and splits on punctuation",
			in:   "Hello, World! Again.",
			want: []string{"hello", "world", "again"},
		},
		{
			name: "internal hyphen kept",
			in:   "my-function is well-known",
			want: []string{"my-function", "is", "well-known"},
		},
		{
			name: "dangling hyphen splits",
			in:   "trailing- -leading",
			want: []string{"trailing", "leading"},
		},
		{
			name: "single rune tokens dropped",
			in:   "a b cd",
			want: []string{"cd"},
		},
		{
			name: "digits are word characters",
			in:   "utf8 http2",
			want: []string{"utf8", "http2"},
		},
		{
			name: "empty input",
			in:   "",
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRawTokensPreservesCase(t *testing.T) {
	got := RawTokens("the HTTPServer uses parseJSON and snake_case")
	want := []string{"the", "HTTPServer", "uses", "parseJSON", "and", "snake_case"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RawTokens = %v, want %v", got, want)
	}
}
