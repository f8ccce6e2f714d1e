package search

import "strings"

// TokenProvider splits the query into whitespace-separated tokens. Every
// token must appear in the candidate (AND logic), in any order.
type TokenProvider struct {
	opts Options
}

// NewTokenProvider creates a new token search provider.
func NewTokenProvider(opts ...Option) Provider {
	return &TokenProvider{
		opts: applyOptions(opts),
	}
}

// Match returns true if all tokens of query are found in candidate.
func (p *TokenProvider) Match(candidate, query string) bool {
	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return true
	}
	if p.opts.CaseInsensitive {
		candidate = strings.ToLower(candidate)
	}
	for _, token := range tokens {
		if p.opts.CaseInsensitive {
			token = strings.ToLower(token)
		}
		if !strings.Contains(candidate, token) {
			return false
		}
	}
	return true
}

// Name returns the provider name.
func (p *TokenProvider) Name() string {
	return NameToken
}
