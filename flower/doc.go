// Package flower materialises the cactus graph produced by one annealing
// round into the flower hierarchy: the nested structure of blocks, ends,
// chains, links, and groups that a genome aligner ultimately emits.
//
// A Flower owns the blocks and ends reachable from one net of the cactus
// graph. Its chains group the blocks that survived annealing as a
// contiguous run of synteny; whatever is left over (tangle material) is
// parcelled into groups, each either terminal (no further children) or
// carrying a nested child Flower for recursive refinement.
package flower
