package search

import "regexp"

var (
	acronymRe    = regexp.MustCompile(`^[A-Z0-9]{2,}$`)
	pascalCaseRe = regexp.MustCompile(`^[A-Z][a-z0-9]+(?:[A-Z][a-z0-9]*)+$`)
	camelCaseRe  = regexp.MustCompile(`^[a-z][a-z0-9]*(?:[A-Z][a-z0-9]*)+$`)
	snakeCaseRe  = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*(?:_[A-Za-z0-9]+)+$`)
	identifierRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
)

// protocolKeywords are lowercase terms that mark a token as technical
// regardless of its casing.
var protocolKeywords = map[string]struct{}{
	"http": {}, "https": {}, "grpc": {}, "tcp": {}, "udp": {}, "tls": {},
	"ssl": {}, "ssh": {}, "dns": {}, "json": {}, "yaml": {}, "xml": {},
	"sql": {}, "api": {}, "sdk": {}, "cli": {}, "uri": {}, "url": {},
	"uuid": {}, "jwt": {}, "oauth": {}, "smtp": {}, "ftp": {}, "mqtt": {},
	"websocket": {}, "graphql": {}, "regex": {}, "utf8": {}, "ascii": {},
}

// technicalPrefixes and technicalSuffixes capture common shapes of code
// identifiers that plain English words rarely have.
var technicalPrefixes = []string{"async", "auto", "micro", "multi", "pre", "un"}

var technicalSuffixes = []string{"ify", "ctl", "fs", "db", "io"}

// isTechnicalTerm reports whether a raw (case-preserved) token looks like a
// technical term. Rules are evaluated with any-match semantics.
func isTechnicalTerm(token string) bool {
	if len(token) < 2 {
		return false
	}
	if acronymRe.MatchString(token) ||
		pascalCaseRe.MatchString(token) ||
		camelCaseRe.MatchString(token) ||
		snakeCaseRe.MatchString(token) {
		return true
	}
	lower := toLowerASCII(token)
	if _, ok := protocolKeywords[lower]; ok {
		return true
	}
	for _, prefix := range technicalPrefixes {
		if len(lower) > len(prefix)+2 && lower[:len(prefix)] == prefix {
			return true
		}
	}
	for _, suffix := range technicalSuffixes {
		if len(lower) > len(suffix)+2 && lower[len(lower)-len(suffix):] == suffix {
			return true
		}
	}
	return false
}

// isIdentifier reports whether a token is shaped like a programming
// identifier: a letter followed by letters, digits, or underscores.
func isIdentifier(token string) bool {
	return len(token) > 1 && identifierRe.MatchString(token)
}

// boostFor returns the multiplier for one matched raw token: the maximum of
// the applicable rules, never a stacked product.
func boostFor(token string, opts Options) float64 {
	boost := opts.ExactMatchBoost
	if isTechnicalTerm(token) && opts.TechnicalBoost > boost {
		boost = opts.TechnicalBoost
	}
	if isIdentifier(token) && opts.IdentifierBoost > boost {
		boost = opts.IdentifierBoost
	}
	return boost
}

func toLowerASCII(s string) string {
	b := []byte(s)
	changed := false
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
			changed = true
		}
	}
	if !changed {
		return s
	}
	return string(b)
}
