// Package search filters the suggestions of a value prompt against the text
// typed so far. Matching strategies (substring, token, regex) share the
// Provider interface so the prompt does not care which one is configured.
package search

import (
	"errors"
	"fmt"
	"strings"
)

// Provider names accepted by New.
const (
	NameSubstring = "substring"
	NameToken     = "token"
	NameRegex     = "regex"
	// NameNone disables filtering.
	NameNone = "none"
)

// ErrUnknownProvider is returned by New for an unsupported name.
var ErrUnknownProvider = errors.New("unknown search provider")

// Provider defines the interface for search providers.
type Provider interface {
	// Match returns true if candidate matches the query.
	Match(candidate, query string) bool

	// Name returns the provider name for identification and debugging.
	Name() string
}

// Options holds configuration options for creating search providers.
type Options struct {
	CaseInsensitive bool // If true, searches ignore case sensitivity
}

// DefaultOptions returns the default search options.
func DefaultOptions() Options {
	return Options{CaseInsensitive: true}
}

// Option is a function that modifies search options.
type Option func(*Options)

// WithCaseInsensitive sets case-insensitive search.
func WithCaseInsensitive(enabled bool) Option {
	return func(o *Options) {
		o.CaseInsensitive = enabled
	}
}

// applyOptions applies the given options to the options struct.
func applyOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New returns the provider registered under name. NameNone returns a nil
// provider, which Filter treats as "keep everything".
func New(name string, opts ...Option) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameSubstring:
		return NewSubstringProvider(opts...), nil
	case NameToken:
		return NewTokenProvider(opts...), nil
	case NameRegex:
		return NewRegexProvider(opts...), nil
	case NameNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
}

// Filter returns the candidates matching query, in their original order.
func Filter(p Provider, candidates []string, query string) []string {
	if p == nil || query == "" {
		return candidates
	}
	var out []string
	for _, c := range candidates {
		if p.Match(c, query) {
			out = append(out, c)
		}
	}
	return out
}
