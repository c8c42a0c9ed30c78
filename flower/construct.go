package flower

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/comparomics/cactuscore/cactus"
	"github.com/comparomics/cactuscore/component"
	"github.com/comparomics/cactuscore/pinch"
)

// Construct materialises one Flower from the surviving portion of a pinch
// graph: kept names the blocks that passed filter.Blocks this round. Blocks
// whose cactus chain is fully kept become Chains; every other kept block,
// together with every still-unattached stub vertex, is parcelled into
// tangle Groups keyed by the adjacency component (ix.Of) its ends belong to.
func Construct(name string, g *pinch.Graph, ix *component.Index, cg *cactus.Graph, kept []pinch.BlockID) (*Flower, error) {
	f := MakeEmptyNestedFlower(name, nil)

	keptSet := make(map[pinch.BlockID]struct{}, len(kept))
	for _, id := range kept {
		keptSet[id] = struct{}{}
	}

	endFor := func(v pinch.VertexID) *End {
		name := endName(g, v)
		if e, ok := f.ends[name]; ok {
			return e
		}
		e := &End{Name: name}
		if vx, ok := g.Vertex(v); ok && vx.Stub != nil {
			e.Attached = vx.Stub.Attached
		}
		f.ends[name] = e
		return e
	}

	blockFor := func(id pinch.BlockID) *Block {
		b, ok := g.Block(id)
		if !ok {
			return nil
		}
		bname := fmt.Sprintf("block-%d", id)
		if existing, ok := f.blocks[bname]; ok {
			return existing
		}
		fb := &Block{Name: bname, Length: b.Length, Degree: b.Degree()}
		fb.Five = endFor(b.Five)
		fb.Five.Block, fb.Five.Side = fb, pinch.FivePrime
		fb.Three = endFor(b.Three)
		fb.Three.Block, fb.Three.Side = fb, pinch.ThreePrime
		f.blocks[bname] = fb
		return fb
	}

	chained := make(map[pinch.BlockID]struct{})
	for _, ch := range cg.Chains {
		if len(ch.Edges) < 2 {
			continue
		}
		allKept := true
		for _, e := range ch.Edges {
			if _, ok := keptSet[e.Block]; !ok {
				allKept = false
				break
			}
		}
		if !allKept {
			continue
		}
		fc := &Chain{Name: fmt.Sprintf("chain-%d", ch.ID)}
		for _, e := range ch.Edges {
			fb := blockFor(e.Block)
			if fb == nil {
				continue
			}
			fc.Links = append(fc.Links, &Link{Name: fmt.Sprintf("%s-link-%s", fc.Name, fb.Name), Block: fb})
			chained[e.Block] = struct{}{}
		}
		f.chains[fc.Name] = fc
	}

	groupOf := make(map[component.Component]*Group)
	groupFor := func(c component.Component) *Group {
		if grp, ok := groupOf[c]; ok {
			return grp
		}
		grp := &Group{Name: fmt.Sprintf("group-%d", c), Ends: make(map[string]*End)}
		groupOf[c] = grp
		f.groups[grp.Name] = grp
		return grp
	}
	assign := func(e *End, v pinch.VertexID) {
		grp := groupFor(ix.Of(v))
		e.Group = grp
		grp.Ends[e.Name] = e
	}

	// Every cactus node touched by exactly two ends of a materialised chain
	// is the gap between two consecutive links: assign both facing ends to
	// its group and give the group a nested flower to hold that gap's
	// interior, per the chain-walking step of the materialisation
	// algorithm. Ends at a node touched by any other number of the chain's
	// ends get no group from this pass, and the tangle-group pass below
	// skips chained blocks, so those ends are left without a group.
	for _, ch := range cg.Chains {
		fc, ok := f.chains[fmt.Sprintf("chain-%d", ch.ID)]
		if !ok {
			continue
		}
		nodeEnds := make(map[component.Component][]*End)
		for _, e := range ch.Edges {
			fb, ok := f.blocks[fmt.Sprintf("block-%d", e.Block)]
			if !ok {
				continue
			}
			nodeEnds[e.A] = append(nodeEnds[e.A], fb.Five)
			nodeEnds[e.B] = append(nodeEnds[e.B], fb.Three)
		}
		for node, ends := range nodeEnds {
			if len(ends) != 2 {
				continue
			}
			grp := groupFor(node)
			for _, e := range ends {
				e.Group = grp
				grp.Ends[e.Name] = e
			}
			if grp.Nested == nil {
				grp.Nested = MakeEmptyNestedFlower(uuid.NewString(), f)
			}
		}
		for _, link := range fc.Links {
			link.Gap = link.Block.Three.Group
		}
	}

	for id := range keptSet {
		if _, ok := chained[id]; ok {
			continue
		}
		fb := blockFor(id)
		if fb == nil {
			continue
		}
		b, _ := g.Block(id)
		assign(fb.Five, b.Five)
		assign(fb.Three, b.Three)
	}

	g.Vertices(func(v *pinch.Vertex) {
		if v.Stub == nil || len(v.BlackEdges) > 0 {
			return
		}
		e := endFor(v.ID)
		if e.Group == nil {
			assign(e, v.ID)
		}
	})

	if len(f.groups) > 0 && len(f.groups) > maxGroupsPerNet {
		return f, ErrTooManyGroups
	}

	return f, nil
}

// maxGroupsPerNet bounds how many tangle groups Construct will leave
// directly under one flower before reporting ErrTooManyGroups. The flower is
// still returned alongside that error; anneal.Pipeline treats the error as
// fatal.
const maxGroupsPerNet = 4096

func endName(g *pinch.Graph, v pinch.VertexID) string {
	if vx, ok := g.Vertex(v); ok && vx.Stub != nil && vx.Stub.EndName != "" {
		return vx.Stub.EndName
	}
	return fmt.Sprintf("end-%d", v)
}

// Destruct detaches f from its parent group, if any, leaving the group's
// Nested pointer nil. It does not recursively tear down f's own children;
// callers that need that walk f.Groups() first.
func Destruct(f *Flower) {
	if f.Parent == nil {
		return
	}
	for _, g := range f.Parent.groups {
		if g.Nested == f {
			g.Nested = nil
		}
	}
	f.Parent = nil
}
