// Copyright (c) 2026 Chronomap. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package search maps free-text queries to named historical periods.

A query either resolves to a [Preset] (a closed year interval such as
1939–1945 for "Seconde Guerre mondiale") or falls through to a plain text
filter. The same catalogue drives autocomplete suggestions.

Matching Rules:

  - Exact: a preset synonym appears inside the query.
  - Any order: every significant word of a synonym appears in the query.
  - Overlap: at least two significant words are shared with a synonym.

Rules are tried in that order; within a rule the first preset in catalogue
order wins. There is no scoring across presets.

The any-order rule is a refinement layered between the exact and overlap
rules. With overlap alone, "mondiale guerre premiere" shares two words with
the first world-war entry in catalogue order, which is the 1939 one. Running
the any-order rule first lets a complete, reordered synonym pick its own
preset; overlap then only handles partial phrasing.
*/
package search

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/taibuivan/chronomap/internal/core/filter"
	"github.com/taibuivan/chronomap/pkg/textnorm"
)

const (
	// MinSuggestLength is the folded query length that enables suggestions.
	MinSuggestLength = 2

	// MaxSuggestions caps the suggestion list.
	MaxSuggestions = 6

	// minWordOverlap is the number of shared words for an overlap match.
	minWordOverlap = 2
)

//go:embed presets.yaml
var defaultPresetsYAML []byte

// stopWords never count towards a word overlap.
var stopWords = map[string]struct{}{
	"de": {}, "du": {}, "des": {}, "la": {}, "le": {}, "les": {}, "l": {}, "d": {},
	"et": {}, "en": {}, "a": {}, "au": {}, "aux": {},
	"the": {}, "of": {}, "and": {}, "in": {},
}

// # Domain Entities

// Preset is a named period resolving to a closed year interval.
type Preset struct {
	Label string   `yaml:"label" json:"label"`
	Keys  []string `yaml:"keys"  json:"keys"`
	Start int      `yaml:"start" json:"start"`
	End   int      `yaml:"end"   json:"end"`
}

// Suggestion is an autocomplete entry.
type Suggestion struct {
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// preparedPreset caches the folded forms used during matching.
type preparedPreset struct {
	preset      Preset
	foldedLabel string
	foldedKeys  []string
	keyWords    [][]string
}

// # Resolver

// Resolver matches queries against a read-only preset catalogue.
//
// # Concurrency
//
// A Resolver is immutable after construction and safe for concurrent use.
type Resolver struct {
	presets []preparedPreset
}

// NewResolver folds every label and key once.
func NewResolver(presets []Preset) *Resolver {
	prepared := make([]preparedPreset, 0, len(presets))
	for _, p := range presets {
		entry := preparedPreset{preset: p, foldedLabel: textnorm.Fold(p.Label)}
		for _, key := range p.Keys {
			folded := textnorm.Fold(key)
			if folded == "" {
				continue
			}
			entry.foldedKeys = append(entry.foldedKeys, folded)
			entry.keyWords = append(entry.keyWords, significantWords(folded))
		}
		prepared = append(prepared, entry)
	}

	return &Resolver{presets: prepared}
}

// ParsePresets decodes a YAML preset catalogue.
func ParsePresets(data []byte) ([]Preset, error) {
	var presets []Preset
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("search: invalid preset catalog: %w", err)
	}

	for i, p := range presets {
		if p.Label == "" || len(p.Keys) == 0 {
			return nil, fmt.Errorf("search: preset %d needs a label and at least one key", i)
		}
		if p.End < p.Start {
			return nil, fmt.Errorf("search: preset %q ends before it starts", p.Label)
		}
	}

	return presets, nil
}

// DefaultPresets returns the embedded preset catalogue.
func DefaultPresets() ([]Preset, error) {
	return ParsePresets(defaultPresetsYAML)
}

// Presets returns the catalogue in priority order.
func (r *Resolver) Presets() []Preset {
	result := make([]Preset, 0, len(r.presets))
	for _, p := range r.presets {
		result = append(result, p.preset)
	}
	return result
}

/*
Resolve finds the preset named by an already normalized query.

Parameters:
  - normalizedQuery: string (output of [filter.NormalizeQuery])

Returns:
  - Preset: The first matching preset
  - bool: false when the query should be used as a plain text filter
*/
func (r *Resolver) Resolve(normalizedQuery string) (Preset, bool) {
	if normalizedQuery == "" {
		return Preset{}, false
	}

	// Exact synonym containment
	for _, p := range r.presets {
		for _, key := range p.foldedKeys {
			if strings.Contains(normalizedQuery, key) {
				return p.preset, true
			}
		}
	}

	queryWords := make(map[string]struct{})
	for _, w := range significantWords(normalizedQuery) {
		queryWords[w] = struct{}{}
	}

	// Every word of a multi-word synonym, in any order
	for _, p := range r.presets {
		for _, words := range p.keyWords {
			if len(words) >= minWordOverlap && overlap(queryWords, words) == len(words) {
				return p.preset, true
			}
		}
	}

	// Partial word overlap
	for _, p := range r.presets {
		for _, words := range p.keyWords {
			if overlap(queryWords, words) >= minWordOverlap {
				return p.preset, true
			}
		}
	}

	return Preset{}, false
}

/*
Suggest lists presets matching a partially typed query.

Description: A preset matches when its label or one of its keys contains
the query, or when the query contains one of its keys (so over-typing a
short synonym such as "ww2 normandie" still suggests it). Results keep
catalogue order and are capped at [MaxSuggestions].
*/
func (r *Resolver) Suggest(query string) []Suggestion {
	folded := filter.NormalizeQuery(query)
	if len([]rune(folded)) < MinSuggestLength {
		return []Suggestion{}
	}

	suggestions := make([]Suggestion, 0, MaxSuggestions)
	for _, p := range r.presets {
		if !p.suggests(folded) {
			continue
		}

		suggestions = append(suggestions, Suggestion{Label: p.preset.Label, Start: p.preset.Start, End: p.preset.End})
		if len(suggestions) == MaxSuggestions {
			break
		}
	}

	return suggestions
}

// FindByLabel returns the preset whose folded label equals the folded input.
func (r *Resolver) FindByLabel(label string) (Preset, bool) {
	folded := textnorm.Fold(label)
	for _, p := range r.presets {
		if p.foldedLabel == folded {
			return p.preset, true
		}
	}
	return Preset{}, false
}

func (p preparedPreset) suggests(folded string) bool {
	if strings.Contains(p.foldedLabel, folded) {
		return true
	}

	for _, key := range p.foldedKeys {
		if strings.Contains(key, folded) || strings.Contains(folded, key) {
			return true
		}
	}
	return false
}

// # Helpers

func significantWords(folded string) []string {
	var words []string
	for _, w := range textnorm.Words(folded) {
		if _, stop := stopWords[w]; stop {
			continue
		}
		words = append(words, w)
	}
	return words
}

func overlap(set map[string]struct{}, words []string) int {
	count := 0
	for _, w := range words {
		if _, ok := set[w]; ok {
			count++
		}
	}
	return count
}
