// Package cactuscore implements the anneal/de-anneal core of a
// comparative-genomics structural inference engine: it turns a stream of
// pairwise sequence alignments into a hierarchy of homology blocks, chains,
// and groups.
//
// The module is organised as seven packages, bottom-up:
//
//	piece/     — immutable interval and alignment value types
//	pinch/     — the pinch graph (vertices, black-edge blocks, grey-edge adjacencies)
//	component/ — the grey-edge adjacency-component index and its overlay graph
//	cactus/    — the 2-edge-connected cactus graph derived from that overlay
//	filter/    — tree-coverage / length / chain-length block scoring
//	flower/    — the materialised output hierarchy (blocks, ends, chains, groups)
//	anneal/    — the outer annealing/de-annealing control loop, Pipeline.Run
//
// anneal.Pipeline is the single entry point: seed it with threads and
// adjacencies from a parent flower, drive it with an AlignmentSource, and it
// returns a fully materialised *flower.Flower.
package cactuscore
