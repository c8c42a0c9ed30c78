// Package anneal drives the full pipeline: seed a pinch graph, anneal
// alignments into it round by round (tightening filter thresholds each
// time), de-anneal whatever didn't survive, and materialise the final
// cactus graph into a flower. Pipeline is the single entry point; Config
// holds every tunable threshold, loaded from YAML the way the wider
// repository's configuration layer does.
package anneal
