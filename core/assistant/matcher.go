package assistant

import "strings"

// Matcher is a predicate over the normalized (lower-cased) query text.
// Keyword, AllOf and AnyOf are deliberately the only
// matching primitives: exact substring containment combined with boolean
// AND/OR, no stemming, no fuzzy matching. Unmatched phrasings fall through
// to the fallback response; ambiguous keywords are disambiguated by
// requiring conjunctions (AllOf) instead of looser matching.
type Matcher interface {
	Match(text string) bool
}

// Keyword matches when the keyword occurs anywhere in the text.
type Keyword string

func (k Keyword) Match(text string) bool {
	return strings.Contains(text, string(k))
}

// AllOf matches when every member matches.
type AllOf []Matcher

func (m AllOf) Match(text string) bool {
	for _, sub := range m {
		if !sub.Match(text) {
			return false
		}
	}
	return len(m) > 0
}

// AnyOf matches when at least one member matches.
type AnyOf []Matcher

func (m AnyOf) Match(text string) bool {
	for _, sub := range m {
		if sub.Match(text) {
			return true
		}
	}
	return false
}

// keywords builds an AnyOf over plain keywords; rule tables read better with it.
func keywords(kws ...string) AnyOf {
	m := make(AnyOf, 0, len(kws))
	for _, kw := range kws {
		m = append(m, Keyword(kw))
	}
	return m
}
