package globalsearch

import "strings"

// Tokenize splits a query into lowercase search tokens.
func Tokenize(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// QualityFor rates how well text matches the query tokens.
// A text equal to the whole query is an exact match, a text that starts with
// one of the tokens is an at-start match, and a text containing any token is
// a middle match.
func QualityFor(tokens []string, text string) MatchQuality {
	if text == "" || len(tokens) == 0 {
		return MatchNone
	}
	lower := strings.ToLower(text)
	if lower == strings.Join(tokens, " ") {
		return MatchExact
	}

	ret := MatchNone
	for _, token := range tokens {
		idx := strings.Index(lower, token)
		if idx == 0 {
			return MatchAtStart
		}
		if idx > 0 {
			ret = MatchMiddle
		}
	}
	return ret
}

// BestQuality returns the best quality across several fields.
func BestQuality(tokens []string, fields ...string) MatchQuality {
	best := MatchNone
	for _, f := range fields {
		if q := QualityFor(tokens, f); q < best {
			best = q
		}
	}
	return best
}
