// Package filter decides which pinch blocks survive an annealing round:
// those short, low-degree, or member of an undersized chain are marked for
// de-annealing (RemoveBlocks) rather than becoming part of the flower
// hierarchy.
package filter
