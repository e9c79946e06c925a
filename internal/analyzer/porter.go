package analyzer

import "strings"

// Stem reduces word to its root using the Porter stemming algorithm (steps
// 1a through 5b, with the usual measure gates and early exits). Input is
// lower-cased first; words shorter than three characters pass through
// unchanged. Stem never panics, for any input.
func Stem(word string) string {
	word = strings.ToLower(word)
	if len(word) < 3 {
		return word
	}
	s := &porterStemmer{b: []byte(word), k: len(word) - 1}
	s.step1ab()
	s.step1c()
	s.step2()
	s.step3()
	s.step4()
	s.step5()
	return string(s.b[:s.k+1])
}

// porterStemmer holds the working buffer. k is the offset of the last
// character of the current word, j a general offset set by ends.
type porterStemmer struct {
	b []byte
	k int
	j int
}

// cons reports whether b[i] is a consonant. 'y' counts as a consonant at the
// start of the word or after a vowel.
func (s *porterStemmer) cons(i int) bool {
	switch s.b[i] {
	case 'a', 'e', 'i', 'o', 'u':
		return false
	case 'y':
		if i == 0 {
			return true
		}
		return !s.cons(i - 1)
	}
	return true
}

// m counts consonant-vowel sequences between 0 and j: the "measure" that
// gates most suffix removals.
func (s *porterStemmer) m() int {
	n, i := 0, 0
	for {
		if i > s.j {
			return n
		}
		if !s.cons(i) {
			break
		}
		i++
	}
	i++
	for {
		for {
			if i > s.j {
				return n
			}
			if s.cons(i) {
				break
			}
			i++
		}
		i++
		n++
		for {
			if i > s.j {
				return n
			}
			if !s.cons(i) {
				break
			}
			i++
		}
		i++
	}
}

func (s *porterStemmer) vowelInStem() bool {
	for i := 0; i <= s.j; i++ {
		if !s.cons(i) {
			return true
		}
	}
	return false
}

// doubleC reports whether b[i-1..i] is a double consonant.
func (s *porterStemmer) doubleC(i int) bool {
	if i < 1 {
		return false
	}
	if s.b[i] != s.b[i-1] {
		return false
	}
	return s.cons(i)
}

// cvc reports whether b[i-2..i] is consonant-vowel-consonant with the final
// consonant not w, x, or y. Used to restore a trailing e on short stems.
func (s *porterStemmer) cvc(i int) bool {
	if i < 2 || !s.cons(i) || s.cons(i-1) || !s.cons(i-2) {
		return false
	}
	switch s.b[i] {
	case 'w', 'x', 'y':
		return false
	}
	return true
}

// ends reports whether the word ends with suffix, setting j to the offset
// just before it on a match.
func (s *porterStemmer) ends(suffix string) bool {
	l := len(suffix)
	o := s.k - l + 1
	if o < 0 {
		return false
	}
	for i := 0; i < l; i++ {
		if s.b[o+i] != suffix[i] {
			return false
		}
	}
	s.j = s.k - l
	return true
}

// setTo replaces the suffix after j with repl.
func (s *porterStemmer) setTo(repl string) {
	s.b = append(s.b[:s.j+1], repl...)
	s.k = s.j + len(repl)
}

// r replaces the matched suffix with repl when the stem measure is positive.
func (s *porterStemmer) r(repl string) {
	if s.m() > 0 {
		s.setTo(repl)
	}
}

// step1ab removes plurals and -ed/-ing suffixes: sses->ss, ies->i, trailing
// lone s; eed->ee on positive measure; ed/ing stripped when a vowel remains
// in the stem, followed by the at/bl/iz, double-consonant, and short-CVC
// cleanups.
func (s *porterStemmer) step1ab() {
	if s.b[s.k] == 's' {
		switch {
		case s.ends("sses"):
			s.k -= 2
		case s.ends("ies"):
			s.setTo("i")
		case s.b[s.k-1] != 's':
			s.k--
		}
	}
	if s.ends("eed") {
		if s.m() > 0 {
			s.k--
		}
	} else if (s.ends("ed") || s.ends("ing")) && s.vowelInStem() {
		s.k = s.j
		switch {
		case s.ends("at"):
			s.setTo("ate")
		case s.ends("bl"):
			s.setTo("ble")
		case s.ends("iz"):
			s.setTo("ize")
		case s.doubleC(s.k):
			s.k--
			switch s.b[s.k] {
			case 'l', 's', 'z':
				s.k++
			}
		default:
			if s.m() == 1 && s.cvc(s.k) {
				s.setTo("e")
			}
		}
	}
}

// step1c turns a trailing y into i when a vowel remains in the stem.
func (s *porterStemmer) step1c() {
	if s.ends("y") && s.vowelInStem() {
		s.b[s.k] = 'i'
	}
}

type suffixRule struct {
	suffix string
	repl   string
}

// step2 collapses double suffixes (ational->ate, iveness->ive, ...) on
// stems with positive measure, dispatched on the penultimate character.
func (s *porterStemmer) step2() {
	if s.k < 1 {
		return
	}
	var rules []suffixRule
	switch s.b[s.k-1] {
	case 'a':
		rules = []suffixRule{{"ational", "ate"}, {"tional", "tion"}}
	case 'c':
		rules = []suffixRule{{"enci", "ence"}, {"anci", "ance"}}
	case 'e':
		rules = []suffixRule{{"izer", "ize"}}
	case 'l':
		rules = []suffixRule{{"bli", "ble"}, {"alli", "al"}, {"entli", "ent"}, {"eli", "e"}, {"ousli", "ous"}}
	case 'o':
		rules = []suffixRule{{"ization", "ize"}, {"ation", "ate"}, {"ator", "ate"}}
	case 's':
		rules = []suffixRule{{"alism", "al"}, {"iveness", "ive"}, {"fulness", "ful"}, {"ousness", "ous"}}
	case 't':
		rules = []suffixRule{{"aliti", "al"}, {"iviti", "ive"}, {"biliti", "ble"}}
	case 'g':
		rules = []suffixRule{{"logi", "log"}}
	default:
		return
	}
	for _, rule := range rules {
		if s.ends(rule.suffix) {
			s.r(rule.repl)
			return
		}
	}
}

// step3 removes -icate, -ative, -alize, -iciti, -ical, -ful, -ness on stems
// with positive measure.
func (s *porterStemmer) step3() {
	var rules []suffixRule
	switch s.b[s.k] {
	case 'e':
		rules = []suffixRule{{"icate", "ic"}, {"ative", ""}, {"alize", "al"}}
	case 'i':
		rules = []suffixRule{{"iciti", "ic"}}
	case 'l':
		rules = []suffixRule{{"ical", "ic"}, {"ful", ""}}
	case 's':
		rules = []suffixRule{{"ness", ""}}
	default:
		return
	}
	for _, rule := range rules {
		if s.ends(rule.suffix) {
			s.r(rule.repl)
			return
		}
	}
}

// step4 strips the long suffix list (-al, -ance, -ence, -er, -ic, ...) on
// stems of measure greater than one. -ion is removed only after s or t.
func (s *porterStemmer) step4() {
	if s.k < 1 {
		return
	}
	switch s.b[s.k-1] {
	case 'a':
		if !s.ends("al") {
			return
		}
	case 'c':
		if !s.ends("ance") && !s.ends("ence") {
			return
		}
	case 'e':
		if !s.ends("er") {
			return
		}
	case 'i':
		if !s.ends("ic") {
			return
		}
	case 'l':
		if !s.ends("able") && !s.ends("ible") {
			return
		}
	case 'n':
		if !s.ends("ant") && !s.ends("ement") && !s.ends("ment") && !s.ends("ent") {
			return
		}
	case 'o':
		if s.ends("ion") && s.j >= 0 && (s.b[s.j] == 's' || s.b[s.j] == 't') {
			// removable ion
		} else if !s.ends("ou") {
			return
		}
	case 's':
		if !s.ends("ism") {
			return
		}
	case 't':
		if !s.ends("ate") && !s.ends("iti") {
			return
		}
	case 'u':
		if !s.ends("ous") {
			return
		}
	case 'v':
		if !s.ends("ive") {
			return
		}
	case 'z':
		if !s.ends("ize") {
			return
		}
	default:
		return
	}
	if s.m() > 1 {
		s.k = s.j
	}
}

// step5 drops a final e when the measure allows it and collapses a final
// double l.
func (s *porterStemmer) step5() {
	s.j = s.k
	if s.b[s.k] == 'e' {
		a := s.m()
		if a > 1 || (a == 1 && !s.cvc(s.k-1)) {
			s.k--
		}
	}
	if s.b[s.k] == 'l' && s.doubleC(s.k) && s.m() > 1 {
		s.k--
	}
}
