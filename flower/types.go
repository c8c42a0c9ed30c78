package flower

import "github.com/comparomics/cactuscore/pinch"

// End is one oriented attachment point: either the boundary of a Block or a
// free stub inherited from the parent flower. Name is unique within one
// Flower: the vertex's stub EndName where it has one, otherwise
// "end-<vertex ID>".
type End struct {
	Name     string
	Block    *Block
	Side     pinch.Side
	Group    *Group
	Attached bool
}

// Block is a surviving pinch block reprojected into the flower: a run of
// aligned sequence bounded by two Ends.
type Block struct {
	Name   string
	Length int64
	Degree int
	Five   *End
	Three  *End
}

// Link is one step of a Chain: the block at this step plus the Group
// covering the adjacency gap leading to the next step (nil for the last
// link of a chain whose far end is a stub rather than another block).
type Link struct {
	Name  string
	Block *Block
	Gap   *Group
}

// Chain is a maximal run of Links: the flower-level counterpart of a
// cactus.Chain once its blocks have survived filtering.
type Chain struct {
	Name  string
	Links []*Link
}

// Group is a net of ends not (yet) resolved into a chain: either terminal
// (Nested == nil, no further recursion) or carrying a nested child Flower
// that refines it.
type Group struct {
	Name   string
	Ends   map[string]*End
	Nested *Flower
}

// Flower is one node of the flower hierarchy.
type Flower struct {
	Name   string
	Parent *Flower

	ends   map[string]*End
	blocks map[string]*Block
	chains map[string]*Chain
	groups map[string]*Group

	builtBlocks bool
}

// MakeEmptyNestedFlower creates a Flower with no ends, blocks, chains, or
// groups yet, parented to parent (nil for a root). Construct uses it for the
// root flower it fills and for the empty nested flower of each chain gap.
func MakeEmptyNestedFlower(name string, parent *Flower) *Flower {
	return &Flower{
		Name:   name,
		Parent: parent,
		ends:   make(map[string]*End),
		blocks: make(map[string]*Block),
		chains: make(map[string]*Chain),
		groups: make(map[string]*Group),
	}
}

// Ends returns the flower's ends keyed by name.
func (f *Flower) Ends() map[string]*End { return f.ends }

// Blocks returns the flower's blocks keyed by name.
func (f *Flower) Blocks() map[string]*Block { return f.blocks }

// Chains returns the flower's chains keyed by name.
func (f *Flower) Chains() map[string]*Chain { return f.chains }

// Groups returns the flower's groups keyed by name.
func (f *Flower) Groups() map[string]*Group { return f.groups }

// SetBuiltBlocks marks the flower's block set as finalised. It returns
// ErrAlreadyBuilt if called twice.
func (f *Flower) SetBuiltBlocks() error {
	if f.builtBlocks {
		return ErrAlreadyBuilt
	}
	f.builtBlocks = true
	return nil
}

// BuiltBlocks reports whether SetBuiltBlocks has been called.
func (f *Flower) BuiltBlocks() bool { return f.builtBlocks }

// SetBuiltBlocksRecursive marks f's block set as finalised, then does the
// same to every flower nested (transitively) within f's groups, so the
// built-blocks flag propagates to every descendant the way CheckRecursive
// walks the same tree to check parent/child consistency.
func (f *Flower) SetBuiltBlocksRecursive() error {
	if err := f.SetBuiltBlocks(); err != nil {
		return err
	}
	for _, g := range f.groups {
		if g.Nested == nil {
			continue
		}
		if err := g.Nested.SetBuiltBlocksRecursive(); err != nil {
			return err
		}
	}
	return nil
}

// IsTerminal reports whether f has no nested children: every group is a
// leaf.
func (f *Flower) IsTerminal() bool {
	for _, g := range f.groups {
		if g.Nested != nil {
			return false
		}
	}
	return true
}

// CheckRecursive walks f and every flower nested (transitively) within its
// groups, verifying that each nested Flower's Parent pointer is the flower
// whose group holds it and that each group's Name matches its key in the
// groups map. It returns ErrUnknownEnd for the first inconsistency found.
func (f *Flower) CheckRecursive() error {
	for name, g := range f.groups {
		if g.Nested == nil {
			continue
		}
		if g.Nested.Parent != f {
			return ErrUnknownEnd
		}
		if g.Name != name {
			return ErrUnknownEnd
		}
		if err := g.Nested.CheckRecursive(); err != nil {
			return err
		}
	}
	return nil
}
