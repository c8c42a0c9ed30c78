// Package piece defines the immutable value types shared by every layer of
// the annealing pipeline: genomic intervals (Piece), aligned piece pairs
// (AlignedPair), and the pairwise alignment format pulled from the caller.
//
// Nothing in this package mutates after construction. Pieces are compared and
// copied by value; callers needing identity (e.g. "this exact aligned run")
// should key maps on the full value rather than a pointer.
package piece
