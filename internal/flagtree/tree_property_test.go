package flagtree

import (
	"fmt"
	"testing"

	"github.com/fluttering/flagctl/internal/domain"
	"pgregory.net/rapid"
)

// drawForest builds an acyclic forest: every flag's parent, when set, appears
// earlier in the list.
func drawForest(t *rapid.T) []domain.Flag {
	n := rapid.IntRange(0, 16).Draw(t, "n")
	flags := make([]domain.Flag, 0, n)
	for i := 0; i < n; i++ {
		parent := rapid.IntRange(-1, i-1).Draw(t, fmt.Sprintf("parent%d", i))
		p := ""
		if parent >= 0 {
			p = flags[parent].ID
		}
		flags = append(flags, boolFlag(fmt.Sprintf("f%d", i), p))
	}
	// Shuffle list order so children may precede parents.
	perm := rapid.Permutation(flags).Draw(t, "order")
	return perm
}

func parentOf(flags []domain.Flag) map[string]string {
	m := make(map[string]string)
	for _, f := range flags {
		if f.ParentID != nil {
			m[f.ID] = *f.ParentID
		}
	}
	return m
}

func isAncestor(parents map[string]string, ancestor, id string) bool {
	for p, ok := parents[id]; ok; p, ok = parents[p] {
		if p == ancestor {
			return true
		}
	}
	return false
}

func TestProperty_GetDirectChildrenMatchesFilter(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		flags := drawForest(t)
		for _, p := range flags {
			var want []string
			for _, f := range flags {
				if f.HasParent(p.ID) {
					want = append(want, f.ID)
				}
			}
			got := flagIDs(GetDirectChildren(flags, p.ID))
			if len(want) != len(got) {
				t.Fatalf("children of %s: want %v got %v", p.ID, want, got)
			}
			for i := range want {
				if want[i] != got[i] {
					t.Fatalf("children of %s: want %v got %v", p.ID, want, got)
				}
			}
		}
	})
}

func TestProperty_HasDescendantMatchesAncestry(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		flags := drawForest(t)
		parents := parentOf(flags)
		for _, a := range flags {
			for _, b := range flags {
				want := isAncestor(parents, a.ID, b.ID)
				if got := HasDescendant(flags, a.ID, b.ID); got != want {
					t.Fatalf("HasDescendant(%s, %s) = %v, want %v", a.ID, b.ID, got, want)
				}
			}
		}
	})
}

func TestProperty_RenderListVisitsReachableOnce(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		flags := drawForest(t)
		parents := parentOf(flags)
		collapsed := make(map[string]bool)
		for _, f := range flags {
			if rapid.Bool().Draw(t, "collapse-"+f.ID) {
				collapsed[f.ID] = true
			}
		}

		list := BuildRenderList(flags, collapsed)

		seen := make(map[string]int)
		for _, n := range list {
			seen[n.Flag.ID]++
			if len(n.AncestorIsLastChild) != n.Depth {
				t.Fatalf("%s: depth %d but %d ancestor entries", n.Flag.ID, n.Depth, len(n.AncestorIsLastChild))
			}
		}
		for _, f := range flags {
			hidden := false
			for p, ok := parents[f.ID]; ok; p, ok = parents[p] {
				if collapsed[p] {
					hidden = true
					break
				}
			}
			want := 1
			if hidden {
				want = 0
			}
			if seen[f.ID] != want {
				t.Fatalf("%s emitted %d times, want %d", f.ID, seen[f.ID], want)
			}
		}
	})
}

func TestProperty_RenderListIsDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		flags := drawForest(t)
		first := ids(BuildRenderList(flags, nil))
		second := ids(BuildRenderList(flags, nil))
		if fmt.Sprint(first) != fmt.Sprint(second) {
			t.Fatalf("render order changed: %v vs %v", first, second)
		}
	})
}
