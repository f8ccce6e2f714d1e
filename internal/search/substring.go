package search

import "strings"

// SubstringProvider matches if the candidate contains the query.
type SubstringProvider struct {
	opts Options
}

// NewSubstringProvider creates a new substring search provider.
func NewSubstringProvider(opts ...Option) Provider {
	return &SubstringProvider{
		opts: applyOptions(opts),
	}
}

// Match returns true if candidate contains the query substring.
func (p *SubstringProvider) Match(candidate, query string) bool {
	if query == "" {
		return true
	}
	if p.opts.CaseInsensitive {
		return strings.Contains(strings.ToLower(candidate), strings.ToLower(query))
	}
	return strings.Contains(candidate, query)
}

// Name returns the provider name.
func (p *SubstringProvider) Name() string {
	return NameSubstring
}
