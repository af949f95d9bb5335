package flagtree

import (
	"testing"
	"time"

	"github.com/fluttering/flagctl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 2, 19, 8, 0, 0, 0, time.UTC)

func boolFlag(id string, parent string) domain.Flag {
	var p *string
	if parent != "" {
		p = domain.StringPtr(parent)
	}
	return domain.NewBooleanFlag(id, id, p, testNow)
}

func enumFlag(id string, parent string) domain.Flag {
	var p *string
	if parent != "" {
		p = domain.StringPtr(parent)
	}
	et := domain.EnumType{ID: "env", Values: []string{"production"}}
	return domain.NewEnumFlag(id, id, p, et, testNow)
}

func ids(nodes []RenderNode) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Flag.ID
	}
	return out
}

func flagIDs(flags []domain.Flag) []string {
	out := make([]string, len(flags))
	for i, f := range flags {
		out[i] = f.ID
	}
	return out
}

func TestGetDirectChildren_None(t *testing.T) {
	flags := []domain.Flag{boolFlag("a", ""), boolFlag("b", "")}
	assert.Empty(t, GetDirectChildren(flags, "a"))
}

func TestGetDirectChildren_ListOrder(t *testing.T) {
	flags := []domain.Flag{
		boolFlag("a", ""),
		boolFlag("b", "a"),
		boolFlag("c", "a"),
		boolFlag("d", ""),
	}
	assert.Equal(t, []string{"b", "c"}, flagIDs(GetDirectChildren(flags, "a")))
}

func TestGetDirectChildren_IgnoresGrandchildren(t *testing.T) {
	flags := []domain.Flag{boolFlag("a", ""), boolFlag("b", "a"), boolFlag("c", "b")}
	assert.Equal(t, []string{"b"}, flagIDs(GetDirectChildren(flags, "a")))
}

func TestHasDescendant(t *testing.T) {
	flags := []domain.Flag{
		boolFlag("a", ""),
		boolFlag("b", "a"),
		boolFlag("c", "b"),
		boolFlag("d", "c"),
		boolFlag("e", ""),
	}

	cases := []struct {
		ancestor, target string
		want             bool
	}{
		{"a", "b", true},
		{"a", "d", true},
		{"b", "d", true},
		{"c", "d", true},
		{"d", "a", false},
		{"b", "a", false},
		{"a", "e", false},
		{"a", "a", false},
		{"missing", "a", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HasDescendant(flags, tc.ancestor, tc.target),
			"HasDescendant(%s, %s)", tc.ancestor, tc.target)
	}
}

func TestHasDescendant_TerminatesOnCorruptCycle(t *testing.T) {
	flags := []domain.Flag{boolFlag("a", "b"), boolFlag("b", "a")}
	assert.True(t, HasDescendant(flags, "a", "a"))
	assert.False(t, HasDescendant(flags, "a", "z"))
}

func TestBuildRenderList_Empty(t *testing.T) {
	assert.Empty(t, BuildRenderList(nil, nil))
}

func TestBuildRenderList_SingleRoot(t *testing.T) {
	a := boolFlag("a", "")
	list := BuildRenderList([]domain.Flag{a}, nil)

	require.Len(t, list, 1)
	assert.Equal(t, a, list[0].Flag)
	assert.Equal(t, 0, list[0].Depth)
	assert.True(t, list[0].IsLastChild)
	assert.False(t, list[0].HasChildren)
	assert.Empty(t, list[0].AncestorIsLastChild)
}

func TestBuildRenderList_MultipleRoots(t *testing.T) {
	flags := []domain.Flag{boolFlag("a", ""), boolFlag("b", ""), boolFlag("c", "")}
	list := BuildRenderList(flags, nil)

	require.Len(t, list, 3)
	assert.False(t, list[0].IsLastChild)
	assert.False(t, list[1].IsLastChild)
	assert.True(t, list[2].IsLastChild)
	for _, n := range list {
		assert.Equal(t, 0, n.Depth)
	}
}

func TestBuildRenderList_ParentWithChildren(t *testing.T) {
	flags := []domain.Flag{
		boolFlag("a", ""),
		boolFlag("b", "a"),
		boolFlag("c", "a"),
		boolFlag("d", "a"),
	}
	list := BuildRenderList(flags, nil)

	require.Len(t, list, 4)
	assert.True(t, list[0].HasChildren)
	for i, wantLast := range []bool{false, false, true} {
		n := list[i+1]
		assert.Equal(t, 1, n.Depth)
		assert.Equal(t, wantLast, n.IsLastChild, "node %s", n.Flag.ID)
		assert.Equal(t, []bool{true}, n.AncestorIsLastChild)
	}
}

func TestBuildRenderList_ThreeLevels(t *testing.T) {
	flags := []domain.Flag{boolFlag("a", ""), boolFlag("b", "a"), boolFlag("c", "b")}
	list := BuildRenderList(flags, nil)

	require.Len(t, list, 3)
	assert.Equal(t, []string{"a", "b", "c"}, ids(list))
	assert.True(t, list[1].HasChildren)
	assert.Equal(t, 2, list[2].Depth)
	assert.Equal(t, []bool{true, true}, list[2].AncestorIsLastChild)
}

func TestBuildRenderList_ChildrenFollowParentNotListOrder(t *testing.T) {
	// c was created before its parent b was reparented under a.
	flags := []domain.Flag{boolFlag("c", "b"), boolFlag("a", ""), boolFlag("b", "a")}
	assert.Equal(t, []string{"a", "b", "c"}, ids(BuildRenderList(flags, nil)))
}

func TestBuildRenderList_CollapsedRootHidesSubtree(t *testing.T) {
	flags := []domain.Flag{
		boolFlag("a", ""),
		boolFlag("b", "a"),
		boolFlag("b1", "b"),
		boolFlag("c", "a"),
		boolFlag("c1", "c"),
	}
	list := BuildRenderList(flags, map[string]bool{"a": true})

	require.Len(t, list, 1)
	assert.Equal(t, "a", list[0].Flag.ID)
	assert.True(t, list[0].HasChildren, "collapsed flag still reports children")
}

func TestBuildRenderList_CollapsedSiblingOnly(t *testing.T) {
	flags := []domain.Flag{
		boolFlag("a", ""),
		boolFlag("b", "a"),
		boolFlag("b1", "b"),
		boolFlag("c", "a"),
		boolFlag("c1", "c"),
	}
	list := BuildRenderList(flags, map[string]bool{"b": true})
	assert.Equal(t, []string{"a", "b", "c", "c1"}, ids(list))
}

func TestBuildRenderList_ComplexConnectors(t *testing.T) {
	// a
	// ├─ b
	// │  └─ b1
	// └─ c [collapsed]
	// d
	// └─ d1
	//    └─ e (enum)
	flags := []domain.Flag{
		boolFlag("a", ""),
		boolFlag("b", "a"),
		boolFlag("b1", "b"),
		boolFlag("c", "a"),
		boolFlag("c1", "c"),
		boolFlag("d", ""),
		boolFlag("d1", "d"),
		enumFlag("e", "d1"),
	}
	list := BuildRenderList(flags, map[string]bool{"c": true})

	assert.Equal(t, []string{"a", "b", "b1", "c", "d", "d1", "e"}, ids(list))

	byID := make(map[string]RenderNode)
	for _, n := range list {
		byID[n.Flag.ID] = n
	}
	assert.False(t, byID["a"].IsLastChild)
	assert.Equal(t, []bool{false, false}, byID["b1"].AncestorIsLastChild)
	assert.True(t, byID["c"].IsLastChild)
	assert.True(t, byID["c"].HasChildren)
	assert.True(t, byID["d"].IsLastChild)
	assert.Equal(t, []bool{true, true}, byID["e"].AncestorIsLastChild)
	assert.Equal(t, 2, byID["e"].Depth)
	assert.False(t, byID["e"].HasChildren)
}

func TestBuildRenderList_SkipsDanglingParents(t *testing.T) {
	flags := []domain.Flag{boolFlag("a", ""), boolFlag("orphan", "gone")}
	assert.Equal(t, []string{"a"}, ids(BuildRenderList(flags, nil)))
}

func TestBuildRenderList_AncestorSlicesAreIndependent(t *testing.T) {
	flags := []domain.Flag{
		boolFlag("a", ""),
		boolFlag("b", "a"),
		boolFlag("b1", "b"),
		boolFlag("c", "a"),
		boolFlag("c1", "c"),
	}
	list := BuildRenderList(flags, nil)
	list[2].AncestorIsLastChild[0] = false
	assert.Equal(t, []bool{true, true}, list[4].AncestorIsLastChild)
}

func TestParentCandidates_ExcludesSelfDescendantsAndEnums(t *testing.T) {
	flags := []domain.Flag{
		boolFlag("a", ""),
		boolFlag("b", "a"),
		boolFlag("c", "b"),
		boolFlag("d", ""),
		enumFlag("e", ""),
	}
	assert.Equal(t, []string{"d"}, flagIDs(ParentCandidates(flags, "a")))
	assert.Equal(t, []string{"a", "d"}, flagIDs(ParentCandidates(flags, "b")))
	assert.Equal(t, []string{"a", "b", "c", "d"}, flagIDs(ParentCandidates(flags, "e")))
}
