package analyzer

import (
	"reflect"
	"testing"
)

func TestNGrams(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want []string
	}{
		{
			name: "sliding windows over cleaned text",
			in:   "hello world",
			n:    3,
			want: []string{"hel", "ell", "llo", "low", "owo", "wor", "orl", "rld"},
		},
		{
			name: "punctuation and case removed before windowing",
			in:   "Ab-Cd",
			n:    2,
			want: []string{"ab", "bc", "cd"},
		},
		{
			name: "text shorter than n yields single gram",
			in:   "hi",
			n:    3,
			want: []string{"hi"},
		},
		{
			name: "text exactly n yields single gram",
			in:   "abc",
			n:    3,
			want: []string{"abc"},
		},
		{
			name: "empty input yields single empty gram",
			in:   "",
			n:    3,
			want: []string{""},
		},
		{
			name: "non-positive n falls back to default",
			in:   "abcd",
			n:    0,
			want: []string{"abc", "bcd"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NGrams(tt.in, tt.n)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NGrams(%q, %d) = %v, want %v", tt.in, tt.n, got, tt.want)
			}
		})
	}
}
