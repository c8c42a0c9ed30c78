package anneal

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config gathers every tunable parameter of one annealing run. It is
// designed to round-trip through YAML (gopkg.in/yaml.v3) the way operators
// hand-edit a pipeline configuration file between runs.
type Config struct {
	// Debug runs pinch.Graph.CheckGraph after every round and
	// cactus.CheckTwoEdgeConnected on the final cactus graph. Expensive;
	// off by default in production runs. Log verbosity is set by the
	// Pipeline's logger, not by this flag.
	Debug bool `yaml:"debug"`

	// AnnealingRounds is the number of (filter, merge) rounds to run
	// before de-annealing, one threshold set per round.
	AnnealingRounds []RoundThresholds `yaml:"annealing_rounds"`

	// AlignRepeatsAtRound, if >0, re-admits alignments that were
	// excluded as repeats starting at this round index (0-based).
	AlignRepeatsAtRound int `yaml:"align_repeats_at_round"`

	// Trim removes this many bases from each end of every accepted
	// piece before it is merged, guarding against alignment-boundary
	// noise; TrimChange adjusts Trim by this much after each round.
	Trim       int64 `yaml:"trim"`
	TrimChange int64 `yaml:"trim_change"`

	// MinimumTreeCoverage is the fraction of seeded threads a block's
	// degree must reach to survive the final round's filter.
	MinimumTreeCoverage float64 `yaml:"minimum_tree_coverage"`

	// MinimumBlockLength/_Change and MinimumChainLength/_Change ratchet
	// the filter package's Config.MinimumBlockLength and
	// Config.MinimumChainLength across rounds.
	MinimumBlockLength       int64 `yaml:"minimum_block_length"`
	MinimumBlockLengthChange int64 `yaml:"minimum_block_length_change"`
	MinimumChainLength       int64 `yaml:"minimum_chain_length"`
	MinimumChainLengthChange int64 `yaml:"minimum_chain_length_change"`

	// DeannealingRounds is the number of de-annealing passes applied to
	// blocks that fail the final filter before flower materialisation;
	// each pass removes progressively shorter blocks first, matching the
	// "undo the weakest joins first" behaviour of the original pipeline.
	DeannealingRounds int `yaml:"deannealing_rounds"`

	// TerminateRecursion selects the final block set's minimum degree:
	// 0 (every surviving block, including singletons) when true, 2
	// (only blocks still aligning at least two segments) when false.
	// Set this once the caller has no further annealing round to run
	// against this flower's children.
	TerminateRecursion bool `yaml:"terminate_recursion"`

	// AdjacencyComponentOverlap is forwarded to component.Build: 0
	// requires an exact shared adjacency component for a merge, any
	// positive value disables the constraint for the round.
	AdjacencyComponentOverlap int `yaml:"adjacency_component_overlap"`
}

// RoundThresholds is the filter.Config applied at the end of one annealing
// round, before the next round's alignments are merged in.
type RoundThresholds struct {
	MinimumDegree      int   `yaml:"minimum_degree"`
	MinimumBlockLength int64 `yaml:"minimum_block_length"`
}

// DefaultConfig returns the conservative single-round configuration used
// when an operator supplies no YAML file.
func DefaultConfig() Config {
	return Config{
		AnnealingRounds:           []RoundThresholds{{MinimumDegree: 2, MinimumBlockLength: 1}},
		Trim:                      0,
		MinimumTreeCoverage:       0,
		MinimumBlockLength:        1,
		MinimumChainLength:        0,
		DeannealingRounds:         1,
		AdjacencyComponentOverlap: 0,
	}
}

// LoadConfig parses a Config from YAML, the format operators hand-edit
// between runs (see Config's struct tags for field names). Fields absent
// from the document keep their Go zero value, not DefaultConfig's values;
// callers wanting defaults-plus-overrides should start from DefaultConfig
// and decode on top of it instead of calling LoadConfig directly.
func LoadConfig(r io.Reader) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "anneal: decoding config")
	}
	return cfg, nil
}
