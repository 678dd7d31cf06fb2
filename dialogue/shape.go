package dialogue

import (
	"errors"
	"fmt"
	"slices"
)

// ErrShapeMismatch is returned when a translated tree does not mirror its source
var ErrShapeMismatch = errors.New("dialogue trees differ in structure")

// SameShape checks that two trees have the same nodes, links and option
// counts, so that a translation can replace its source node for node.
// Message text is not compared.
func SameShape(source, translated *Tree) error {
	if !slices.Equal(sortedIDs(source), sortedIDs(translated)) {
		return fmt.Errorf("%w: node ids differ", ErrShapeMismatch)
	}
	for _, id := range source.order {
		a := source.nodes[id]
		b := translated.nodes[id]
		if a.Next != b.Next {
			return fmt.Errorf("%w: node %q advances to %q, want %q", ErrShapeMismatch, id, b.Next, a.Next)
		}
		if len(a.Options) != len(b.Options) {
			return fmt.Errorf("%w: node %q has %d options, want %d", ErrShapeMismatch, id, len(b.Options), len(a.Options))
		}
		for i := range a.Options {
			if a.Options[i].Next != b.Options[i].Next {
				return fmt.Errorf("%w: node %q option %d leads to %q, want %q", ErrShapeMismatch, id, i, b.Options[i].Next, a.Options[i].Next)
			}
		}
	}
	return nil
}

func sortedIDs(t *Tree) []string {
	ids := slices.Clone(t.order)
	slices.Sort(ids)
	return ids
}
