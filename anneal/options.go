package anneal

import (
	"github.com/rs/zerolog"

	"github.com/comparomics/cactuscore/pinch"
)

// Option customizes a Pipeline built by NewPipelineWithOptions. Options are
// applied in order over a DefaultConfig()/zerolog.Nop() base, the same
// later-option-wins discipline as the teacher library's BuilderOption, so a
// caller can layer a YAML-loaded Config (via WithConfig, after LoadConfig)
// with a programmatic logger override (WithLogger) without re-deriving the
// whole Config by hand.
type Option func(*pipelineOptions)

type pipelineOptions struct {
	cfg Config
	log zerolog.Logger
}

// WithConfig replaces the pipeline's Config outright, typically with the
// result of LoadConfig.
func WithConfig(cfg Config) Option {
	return func(o *pipelineOptions) { o.cfg = cfg }
}

// WithLogger replaces the pipeline's zerolog.Logger (default zerolog.Nop()).
func WithLogger(log zerolog.Logger) Option {
	return func(o *pipelineOptions) { o.log = log }
}

// NewPipelineWithOptions is NewPipeline's functional-options counterpart: it
// starts from DefaultConfig() and a no-op logger, applies opts in order,
// then constructs the pipeline exactly as NewPipeline does.
func NewPipelineWithOptions(threads []pinch.SeedThread, adjacencies []pinch.SeedAdjacency, source AlignmentSource, seqs SequenceStore, opts ...Option) (*Pipeline, error) {
	o := &pipelineOptions{cfg: DefaultConfig(), log: zerolog.Nop()}
	for _, opt := range opts {
		opt(o)
	}
	return NewPipeline(threads, adjacencies, source, seqs, o.cfg, o.log)
}
