// Package discovery proposes directed edges between documents by scanning
// their content with independent lexical heuristics. Each strategy emits
// weighted proposals; the graph builder merges them into a single edge per
// ordered pair.
package discovery

import (
	"sort"
	"strings"
)

// Strategy tags identify which heuristic produced a proposal.
const (
	StrategyReference     = "reference"      // A's content names B's id or filename
	StrategyMutual        = "mutual"         // A references B and B references A
	StrategyPathComponent = "path-component" // a significant path segment of B appears in A
	StrategyKeyword       = "keyword"        // A and B share salient terms
)

// Default proposal weights per strategy. An explicit reference is the
// strongest signal; shared keywords the weakest.
const (
	weightReference     = 1.0
	weightMutual        = 0.5
	weightPathComponent = 0.6
	weightKeyword       = 0.3
)

// Document is a unit of content to scan. ID is a stable path-like string.
type Document struct {
	ID      string
	Content string
}

// Proposal is a directed edge candidate from one strategy.
type Proposal struct {
	Source   string
	Target   string
	Strategy string
	Weight   float64
}

// Scanner runs all discovery strategies over a document set.
type Scanner struct {
	config Config

	// precomputed per scan
	exclude map[string]bool
}

// NewScanner creates a scanner with the given configuration.
func NewScanner(config Config) *Scanner {
	exclude := make(map[string]bool, len(config.Exclusions))
	for _, term := range config.Exclusions {
		exclude[strings.ToLower(term)] = true
	}
	return &Scanner{config: config, exclude: exclude}
}

// docView holds the derived per-document state used by the strategies.
type docView struct {
	id       string
	lower    string          // lowercased content
	tokens   map[string]bool // salient terms (filtered)
	segments []string        // significant path segments of the id
	names    []string        // match names: full id, base filename, stem
}

// Scan produces edge proposals for every ordered document pair.
// Documents are processed in sorted ID order so the output is
// deterministic for identical input. A document with empty or unusable
// content simply contributes no proposals; it never aborts the scan.
func (s *Scanner) Scan(docs []Document) []Proposal {
	views := make([]docView, 0, len(docs))
	seen := make(map[string]bool, len(docs))
	for _, d := range docs {
		if d.ID == "" || seen[d.ID] {
			continue
		}
		seen[d.ID] = true
		views = append(views, s.viewOf(d))
	}
	sort.Slice(views, func(i, j int) bool { return views[i].id < views[j].id })

	var proposals []Proposal
	for i := range views {
		for j := range views {
			if i == j {
				continue
			}
			a, b := &views[i], &views[j]

			if references(a, b) {
				proposals = append(proposals, Proposal{
					Source: a.id, Target: b.id,
					Strategy: StrategyReference, Weight: weightReference,
				})
				// Mutual mention is a strict subset of reference: the
				// extra proposal only reinforces an edge that already
				// exists in both directions.
				if references(b, a) {
					proposals = append(proposals, Proposal{
						Source: a.id, Target: b.id,
						Strategy: StrategyMutual, Weight: weightMutual,
					})
				}
			}

			if s.matchesSegment(a, b) {
				proposals = append(proposals, Proposal{
					Source: a.id, Target: b.id,
					Strategy: StrategyPathComponent, Weight: weightPathComponent,
				})
			}

			if shared := sharedKeywords(a, b); shared >= s.config.MinSharedKeywords {
				proposals = append(proposals, Proposal{
					Source: a.id, Target: b.id,
					Strategy: StrategyKeyword, Weight: weightKeyword,
				})
			}
		}
	}
	return proposals
}

// viewOf derives the matchable names, segments, and token set for a document.
func (s *Scanner) viewOf(d Document) docView {
	v := docView{
		id:    d.ID,
		lower: strings.ToLower(d.Content),
	}

	idLower := strings.ToLower(d.ID)
	v.names = append(v.names, idLower)

	base := idLower
	if idx := strings.LastIndexByte(base, '/'); idx >= 0 {
		base = base[idx+1:]
	}
	if base != idLower && len(base) >= s.config.MinTokenLength {
		v.names = append(v.names, base)
	}
	stem := base
	if idx := strings.LastIndexByte(stem, '.'); idx > 0 {
		stem = stem[:idx]
	}
	// The bare stem is the ghost-edge hazard: "utils" names half the
	// tree. Generic stems never count as a reference.
	if stem != base && len(stem) >= s.config.MinTokenLength && !s.exclude[stem] {
		v.names = append(v.names, stem)
	}

	for _, seg := range splitSegments(idLower) {
		if len(seg) < s.config.MinSegmentLength || s.exclude[seg] {
			continue
		}
		v.segments = append(v.segments, seg)
	}

	v.tokens = make(map[string]bool)
	for _, tok := range Tokenize(v.lower) {
		if len(tok) < s.config.MinTokenLength || s.exclude[tok] || isNumeric(tok) {
			continue
		}
		v.tokens[tok] = true
	}

	return v
}

// references reports whether a's content names b by any of b's match names.
func references(a, b *docView) bool {
	if a.lower == "" {
		return false
	}
	for _, name := range b.names {
		if strings.Contains(a.lower, name) {
			return true
		}
	}
	return false
}

// matchesSegment reports whether any significant path segment of b
// appears in a's content.
func (s *Scanner) matchesSegment(a, b *docView) bool {
	if a.lower == "" {
		return false
	}
	for _, seg := range b.segments {
		if strings.Contains(a.lower, seg) {
			return true
		}
	}
	return false
}

// sharedKeywords counts salient terms present in both documents.
func sharedKeywords(a, b *docView) int {
	// Iterate the smaller set.
	small, large := a.tokens, b.tokens
	if len(large) < len(small) {
		small, large = large, small
	}
	shared := 0
	for tok := range small {
		if large[tok] {
			shared++
		}
	}
	return shared
}

// splitSegments splits a path-like id on separator characters.
func splitSegments(id string) []string {
	return strings.FieldsFunc(id, func(r rune) bool {
		return r == '/' || r == '\\' || r == '.' || r == '-' || r == '_'
	})
}

// isNumeric reports whether the token is all digits.
func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
