package formatter

import (
	"strings"
	"time"

	"github.com/fluttering/flagctl/internal/flagtree"
)

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeBlank  = "   "
)

// TreePrefix returns the connector drawn before a node: one column per
// ancestor below the root, then the node's own elbow.
func TreePrefix(n flagtree.RenderNode) string {
	if n.Depth == 0 {
		return ""
	}
	var b strings.Builder
	for i := 1; i < n.Depth && i < len(n.AncestorIsLastChild); i++ {
		if n.AncestorIsLastChild[i] {
			b.WriteString(treeBlank)
		} else {
			b.WriteString(treePipe)
		}
	}
	if n.IsLastChild {
		b.WriteString(treeCorner)
	} else {
		b.WriteString(treeBranch)
	}
	return b.String()
}

// CollapseMarker shows whether a parent is expanded (▾) or collapsed (▸).
func CollapseMarker(n flagtree.RenderNode, collapsed bool) string {
	switch {
	case !n.HasChildren:
		return ""
	case collapsed:
		return StyleYellow.Render("▸") + " "
	default:
		return StyleDim.Render("▾") + " "
	}
}

// RenderFlagTree renders a render list as aligned rows: tree and name, short
// id, type, value, created and updated times.
func RenderFlagTree(nodes []flagtree.RenderNode, collapsed map[string]bool, now time.Time) string {
	if len(nodes) == 0 {
		return ""
	}

	rows := make([][]string, 0, len(nodes))
	for _, n := range nodes {
		f := n.Flag
		name := TreePrefix(n) + CollapseMarker(n, collapsed[f.ID]) + f.Name
		rows = append(rows, []string{
			name,
			Dim(ShortID(f.ID)),
			TypeBadge(f.Type),
			ValuePill(f),
			Dim("+" + FlagTime(f.CreatedAt, now)),
			Dim("~" + FlagTime(f.UpdatedAt, now)),
		})
	}
	return strings.Join(AlignColumns(rows), "\n") + "\n"
}
