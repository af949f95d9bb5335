// Package flagtree derives tree structure from a flat, parent-linked flag list.
//
// Flags are stored in creation order with a ParentID reference. Every function
// here is pure: it reads the list and never modifies it.
package flagtree

import "github.com/fluttering/flagctl/internal/domain"

// RenderNode is a flag together with its position in the rendered tree.
type RenderNode struct {
	Flag        domain.Flag
	Depth       int  // root = 0
	IsLastChild bool // last among its siblings, in list order
	HasChildren bool // at least one direct child, whether or not collapsed

	// AncestorIsLastChild holds one entry per ancestor, root first, recording
	// whether that ancestor was the last child at its level. Renderers use it
	// to decide where continuation lines are drawn.
	AncestorIsLastChild []bool
}

// GetDirectChildren returns the flags whose ParentID equals parentID, in list order.
func GetDirectChildren(flags []domain.Flag, parentID string) []domain.Flag {
	var children []domain.Flag
	for _, f := range flags {
		if f.HasParent(parentID) {
			children = append(children, f)
		}
	}
	return children
}

// HasDescendant reports whether targetID is reachable from ancestorID by
// following child links one or more times. It does not special-case
// ancestorID == targetID; callers reject self-parenting themselves.
func HasDescendant(flags []domain.Flag, ancestorID, targetID string) bool {
	children := childIndex(flags)
	visited := make(map[string]bool)
	stack := []string{ancestorID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[id] {
			continue
		}
		visited[id] = true
		for _, child := range children[id] {
			if child.ID == targetID {
				return true
			}
			stack = append(stack, child.ID)
		}
	}
	return false
}

// BuildRenderList walks the forest depth-first, pre-order, starting at the
// root flags in list order. Children of a collapsed flag are skipped; the
// collapsed flag itself is still emitted. Flags not reachable from a root
// (dangling parent references) are not emitted.
func BuildRenderList(flags []domain.Flag, collapsed map[string]bool) []RenderNode {
	children := childIndex(flags)
	var result []RenderNode

	var walk func(siblings []domain.Flag, depth int, ancestors []bool)
	walk = func(siblings []domain.Flag, depth int, ancestors []bool) {
		for i, f := range siblings {
			isLast := i == len(siblings)-1
			kids := children[f.ID]
			result = append(result, RenderNode{
				Flag:                f,
				Depth:               depth,
				IsLastChild:         isLast,
				HasChildren:         len(kids) > 0,
				AncestorIsLastChild: append([]bool{}, ancestors...),
			})
			if len(kids) == 0 || collapsed[f.ID] {
				continue
			}
			next := make([]bool, len(ancestors), len(ancestors)+1)
			copy(next, ancestors)
			walk(kids, depth+1, append(next, isLast))
		}
	}

	walk(Roots(flags), 0, nil)
	return result
}

// Roots returns the flags with no parent, in list order.
func Roots(flags []domain.Flag) []domain.Flag {
	var roots []domain.Flag
	for _, f := range flags {
		if f.IsRoot() {
			roots = append(roots, f)
		}
	}
	return roots
}

// ParentCandidates returns the flags flagID may be moved under: boolean flags
// other than flagID itself that are not among its descendants.
func ParentCandidates(flags []domain.Flag, flagID string) []domain.Flag {
	var out []domain.Flag
	for _, f := range flags {
		if !f.IsBoolean() || f.ID == flagID {
			continue
		}
		if HasDescendant(flags, flagID, f.ID) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// childIndex maps each parent id to its children in list order.
func childIndex(flags []domain.Flag) map[string][]domain.Flag {
	idx := make(map[string][]domain.Flag)
	for _, f := range flags {
		if f.ParentID != nil {
			idx[*f.ParentID] = append(idx[*f.ParentID], f)
		}
	}
	return idx
}
