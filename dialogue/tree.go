// Package dialogue walks the scripted help-chat trees.
package dialogue

import (
	"errors"
	"fmt"
	"slices"

	"grantrates-backend/models"

	"gopkg.in/yaml.v3"
)

// RootNodeID is the node every conversation starts from
const RootNodeID = "start"

var (
	ErrMissingRoot        = errors.New("dialogue tree has no start node")
	ErrDanglingReference  = errors.New("dialogue node references an unknown node")
	ErrAmbiguousNode      = errors.New("dialogue node has both next and options")
	ErrInvalidNode        = errors.New("invalid dialogue node")
	ErrAdvanceCycle       = errors.New("dialogue nodes advance in a cycle")
	ErrUnsupportedContent = errors.New("dialogue tree must be a mapping of node ids")
)

// Tree is one language's immutable dialogue content
type Tree struct {
	Language    models.Language
	nodes       map[string]models.DialogueNode
	order       []string
	unreachable []string
}

// ParseTree decodes and validates a tree. JSON input is accepted too, since
// it is valid YAML.
func ParseTree(lang models.Language, data []byte) (*Tree, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s dialogue tree: %w", lang, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s: %w", lang, ErrUnsupportedContent)
	}

	root := doc.Content[0]
	t := &Tree{
		Language: lang,
		nodes:    make(map[string]models.DialogueNode, len(root.Content)/2),
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valueNode := root.Content[i], root.Content[i+1]
		id := keyNode.Value
		if _, dup := t.nodes[id]; dup {
			return nil, fmt.Errorf("%s line %d: %w: duplicate node %q", lang, keyNode.Line, ErrInvalidNode, id)
		}

		var node models.DialogueNode
		if err := valueNode.Decode(&node); err != nil {
			return nil, fmt.Errorf("%s node %q: %w", lang, id, err)
		}
		node.ID = id
		t.nodes[id] = node
		t.order = append(t.order, id)
	}

	if err := t.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", lang, err)
	}
	t.unreachable = t.findUnreachable()
	return t, nil
}

func (t *Tree) validate() error {
	if _, ok := t.nodes[RootNodeID]; !ok {
		return ErrMissingRoot
	}
	for _, id := range t.order {
		n := t.nodes[id]
		if n.Message.IsZero() {
			return fmt.Errorf("%w: node %q has no message", ErrInvalidNode, id)
		}
		if n.Next != "" && len(n.Options) > 0 {
			return fmt.Errorf("%w: %q", ErrAmbiguousNode, id)
		}
		if n.Next != "" {
			if _, ok := t.nodes[n.Next]; !ok {
				return fmt.Errorf("%w: %q -> %q", ErrDanglingReference, id, n.Next)
			}
		}
		for i, opt := range n.Options {
			if opt.Label == "" {
				return fmt.Errorf("%w: node %q option %d has no label", ErrInvalidNode, id, i)
			}
			if _, ok := t.nodes[opt.Next]; !ok {
				return fmt.Errorf("%w: %q option %d -> %q", ErrDanglingReference, id, i, opt.Next)
			}
		}
	}
	return t.checkAdvanceCycles()
}

// checkAdvanceCycles rejects chains of next links that never reach a node
// with options or a terminal node
func (t *Tree) checkAdvanceCycles() error {
	done := make(map[string]bool, len(t.nodes))
	for _, id := range t.order {
		onPath := make(map[string]bool)
		for cur := id; cur != "" && !done[cur]; cur = t.nodes[cur].Next {
			if onPath[cur] {
				return fmt.Errorf("%w: through %q", ErrAdvanceCycle, cur)
			}
			onPath[cur] = true
		}
		for n := range onPath {
			done[n] = true
		}
	}
	return nil
}

func (t *Tree) findUnreachable() []string {
	seen := map[string]bool{RootNodeID: true}
	queue := []string{RootNodeID}
	for len(queue) > 0 {
		n := t.nodes[queue[0]]
		queue = queue[1:]

		targets := make([]string, 0, len(n.Options)+1)
		if n.Next != "" {
			targets = append(targets, n.Next)
		}
		for _, opt := range n.Options {
			targets = append(targets, opt.Next)
		}
		for _, next := range targets {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}

	var out []string
	for _, id := range t.order {
		if !seen[id] {
			out = append(out, id)
		}
	}
	return out
}

// Node returns a node by id
func (t *Tree) Node(id string) (models.DialogueNode, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Root returns the start node
func (t *Tree) Root() models.DialogueNode {
	return t.nodes[RootNodeID]
}

// NodeIDs lists node ids in document order
func (t *Tree) NodeIDs() []string {
	return slices.Clone(t.order)
}

// Unreachable lists nodes that cannot be reached from the start node
func (t *Tree) Unreachable() []string {
	return slices.Clone(t.unreachable)
}

// Len returns the number of nodes
func (t *Tree) Len() int {
	return len(t.nodes)
}
