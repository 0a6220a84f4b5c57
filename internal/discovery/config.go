package discovery

import "fmt"

// Config holds tunable parameters for edge discovery.
type Config struct {
	// Exclusions lists generic terms that never contribute to an edge.
	// Matching on terms like "utils" produces ghost edges between
	// unrelated documents, so they are filtered from every strategy.
	Exclusions []string `json:"exclusions" yaml:"exclusions"`

	// MinTokenLength is the minimum length for a term or filename stem
	// to participate in matching. Default: 4.
	MinTokenLength int `json:"min_token_length" yaml:"min_token_length"`

	// MinSegmentLength is the minimum length for a path segment to count
	// as structurally significant. Default: 4.
	MinSegmentLength int `json:"min_segment_length" yaml:"min_segment_length"`

	// MinSharedKeywords is the number of shared salient terms required
	// before the keyword strategy proposes an edge. Default: 3.
	MinSharedKeywords int `json:"min_shared_keywords" yaml:"min_shared_keywords"`
}

// defaultExclusions are generic terms that appear in most codebases and
// carry no relational signal.
var defaultExclusions = []string{
	"utils", "util", "common", "shared", "helpers", "helper",
	"index", "main", "test", "tests", "core", "base", "data",
	"config", "types", "internal", "src", "lib", "docs", "readme",
	"the", "and", "for", "with", "this", "that", "from", "into",
	"file", "files", "name", "type", "value", "true", "false", "nil",
	"func", "return", "error", "string", "package", "import",
}

// DefaultConfig returns the default discovery configuration.
func DefaultConfig() Config {
	exclusions := make([]string, len(defaultExclusions))
	copy(exclusions, defaultExclusions)
	return Config{
		Exclusions:        exclusions,
		MinTokenLength:    4,
		MinSegmentLength:  4,
		MinSharedKeywords: 3,
	}
}

// Validate rejects out-of-range parameters. Invalid settings are an error
// at construction time, never silently clamped.
func (c Config) Validate() error {
	if c.MinTokenLength < 1 {
		return fmt.Errorf("min_token_length must be >= 1, got %d", c.MinTokenLength)
	}
	if c.MinSegmentLength < 1 {
		return fmt.Errorf("min_segment_length must be >= 1, got %d", c.MinSegmentLength)
	}
	if c.MinSharedKeywords < 1 {
		return fmt.Errorf("min_shared_keywords must be >= 1, got %d", c.MinSharedKeywords)
	}
	return nil
}
