package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fluttering/flagctl/internal/cli/formatter"
	"github.com/fluttering/flagctl/internal/domain"
	"github.com/fluttering/flagctl/internal/flagtree"
	"github.com/fluttering/flagctl/internal/store"
	"github.com/spf13/cobra"
)

func newBrowseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse and edit the flag tree interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := app.load(ctx)
			if err != nil {
				return err
			}
			return app.runProgram(newBrowseModel(st, browseSave(ctx, app), app.now))
		},
	}
}

type browseKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Toggle      key.Binding
	Collapse    key.Binding
	Delete      key.Binding
	NextProject key.Binding
	Sidebar     key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultBrowseKeys() browseKeyMap {
	return browseKeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:      key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "toggle value")),
		Collapse:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "collapse/expand")),
		Delete:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		NextProject: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next project")),
		Sidebar:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "sidebar")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k browseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Collapse, k.Help, k.Quit}
}

func (k browseKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Collapse},
		{k.Delete, k.NextProject, k.Sidebar},
		{k.Help, k.Quit},
	}
}

// browseModel is the interactive flag tree. Every edit is applied to the
// store and saved immediately.
type browseModel struct {
	st   *store.Store
	save func(*store.Store) error
	now  func() time.Time

	keys browseKeyMap
	help help.Model

	cursor    int
	confirmID string
	status    string
	err       error
	width     int
}

func newBrowseModel(st *store.Store, save func(*store.Store) error, now func() time.Time) browseModel {
	return browseModel{
		st:   st,
		save: save,
		now:  now,
		keys: defaultBrowseKeys(),
		help: help.New(),
	}
}

func (m browseModel) Init() tea.Cmd { return nil }

func (m browseModel) nodes() []flagtree.RenderNode {
	return m.st.RenderList(m.st.SelectedProjectID())
}

func (m browseModel) current() (flagtree.RenderNode, bool) {
	nodes := m.nodes()
	if m.cursor < 0 || m.cursor >= len(nodes) {
		return flagtree.RenderNode{}, false
	}
	return nodes[m.cursor], true
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.confirmID != "" {
			return m.updateConfirm(msg), nil
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m browseModel) updateConfirm(msg tea.KeyMsg) browseModel {
	id := m.confirmID
	m.confirmID = ""
	if msg.String() != "y" {
		m.status = "Delete cancelled"
		return m
	}
	pid := m.st.SelectedProjectID()
	f, _ := m.st.Flag(pid, id)
	m = m.mutate(m.st.DeleteFlag(pid, id), "Deleted "+f.Name)
	m.cursor = min(m.cursor, max(0, len(m.nodes())-1))
	return m
}

func (m browseModel) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pid := m.st.SelectedProjectID()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.nodes())-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if n, ok := m.current(); ok {
			m = m.toggle(pid, n.Flag)
		}
	case key.Matches(msg, m.keys.Collapse):
		if n, ok := m.current(); ok && n.HasChildren {
			collapsed := m.st.ToggleFlagCollapsed(n.Flag.ID)
			verb := "Expanded "
			if collapsed {
				verb = "Collapsed "
			}
			m = m.mutate(nil, verb+n.Flag.Name)
		}
	case key.Matches(msg, m.keys.Delete):
		if n, ok := m.current(); ok {
			m.confirmID = n.Flag.ID
			m.status = fmt.Sprintf("Delete %s? (y/n)", n.Flag.Name)
		}
	case key.Matches(msg, m.keys.NextProject):
		projects := m.st.Projects()
		if len(projects) > 0 {
			i := slices.IndexFunc(projects, func(p domain.Project) bool { return p.ID == pid })
			next := projects[(i+1)%len(projects)]
			m.st.SelectProject(next.ID)
			m.cursor = 0
			m = m.mutate(nil, "Project "+next.Name)
		}
	case key.Matches(msg, m.keys.Sidebar):
		m.st.SetSidebarOpen(!m.st.SidebarOpen())
		m = m.mutate(nil, "")
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// toggle flips a boolean flag or advances an enum flag to its next value.
func (m browseModel) toggle(pid string, f domain.Flag) browseModel {
	if f.IsBoolean() {
		return m.mutate(m.st.ToggleFlagValue(pid, f.ID), "Toggled "+f.Name)
	}
	et, ok := m.st.EnumType(f.EnumTypeID)
	if !ok || len(et.Values) == 0 {
		return m
	}
	next := et.Values[(slices.Index(et.Values, f.EnumValue)+1)%len(et.Values)]
	return m.mutate(m.st.SetEnumFlagValue(pid, f.ID, next), f.Name+" = "+next)
}

// mutate records the outcome of a store operation and saves on success.
func (m browseModel) mutate(opErr error, status string) browseModel {
	if opErr != nil {
		m.err = opErr
		return m
	}
	m.err = m.save(m.st)
	m.status = status
	return m
}

func (m browseModel) View() string {
	body := m.viewTree()
	if m.st.SidebarOpen() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.viewSidebar(), "  ", body)
	}

	var b strings.Builder
	b.WriteString(body + "\n")
	switch {
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	case m.status != "":
		b.WriteString(formatter.StyleYellow.Render(m.status) + "\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m browseModel) viewSidebar() string {
	lines := make([]string, 0, len(m.st.Projects()))
	for _, p := range m.st.Projects() {
		if p.ID == m.st.SelectedProjectID() {
			lines = append(lines, formatter.StyleGreen.Render("▸ "+p.Name))
			continue
		}
		lines = append(lines, "  "+p.Name)
	}
	return formatter.Panel("projects", lines)
}

func (m browseModel) viewTree() string {
	pid := m.st.SelectedProjectID()
	title := pid
	if p, ok := domain.FindProject(m.st.Projects(), pid); ok {
		title = p.Name
	}

	var b strings.Builder
	b.WriteString(formatter.Header(title) + "\n")
	nodes := m.nodes()
	if len(nodes) == 0 {
		b.WriteString(formatter.Dim("No flags yet.") + "\n")
		return b.String()
	}

	now := m.now()
	rows := make([][]string, 0, len(nodes))
	for i, n := range nodes {
		cursor := "  "
		name := n.Flag.Name
		if i == m.cursor {
			cursor = formatter.StyleGreen.Render("▸") + " "
			name = formatter.Bold(name)
		}
		rows = append(rows, []string{
			cursor + formatter.TreePrefix(n) + formatter.CollapseMarker(n, m.st.IsCollapsed(n.Flag.ID)) + name,
			formatter.ValuePill(n.Flag),
			formatter.Dim(formatter.FlagTime(n.Flag.UpdatedAt, now)),
		})
	}
	b.WriteString(strings.Join(formatter.AlignColumns(rows), "\n") + "\n")
	return b.String()
}

// browseSave adapts a workspace save to the model's callback.
func browseSave(ctx context.Context, app *App) func(*store.Store) error {
	return func(st *store.Store) error { return app.Workspace.Save(ctx, st) }
}
