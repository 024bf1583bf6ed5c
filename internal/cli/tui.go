package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gitlanes/gitlanes/pkg/layout"
	"github.com/gitlanes/gitlanes/pkg/view"
)

// =============================================================================
// GraphModel - Interactive commit graph browser
// =============================================================================

// GraphModel is the bubbletea model for the interactive commit browser.
// It renders one row per commit: a colored lane gutter on the left, then
// hash, refs, and subject. Navigation drives the view state machine; the
// layout itself is computed once and reused for every frame.
type GraphModel struct {
	Repo   string
	Graph  layout.Graph
	State  *view.State
	Height int
	Offset int

	width int
}

// NewGraphModel creates a browser over a computed layout.
func NewGraphModel(repo string, g layout.Graph) GraphModel {
	return GraphModel{
		Repo:   repo,
		Graph:  g,
		State:  view.New(g.Commits()),
		Height: 20,
	}
}

func (m GraphModel) Init() tea.Cmd { return nil }

func (m GraphModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.State.Newer()
		case "down", "j":
			m.State.Older()
		case "g", "home":
			if m.State.Len() > 0 {
				m.State.Select(m.Graph.Nodes[0].Commit.Hash)
			}
		case "G", "end":
			if n := m.State.Len(); n > 0 {
				m.State.Select(m.Graph.Nodes[n-1].Commit.Hash)
			}
		case "+", "=":
			m.State.AdjustZoom(0.1)
		case "-":
			m.State.AdjustZoom(-0.1)
		}
		m.scrollToSelection()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.Height = msg.Height - 5
		if m.Height < 5 {
			m.Height = 5
		}
		m.scrollToSelection()
	}
	return m, nil
}

// scrollToSelection keeps the selected row inside the viewport.
func (m *GraphModel) scrollToSelection() {
	row, ok := m.State.SelectedRow()
	if !ok {
		return
	}
	if row < m.Offset {
		m.Offset = row
	}
	if row >= m.Offset+m.Height {
		m.Offset = row - m.Height + 1
	}
}

func (m GraphModel) View() string {
	var b strings.Builder

	title := "Commit Graph"
	if m.Repo != "" {
		title = m.Repo
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  +/- zoom  q quit"))
	b.WriteString("\n\n")

	if len(m.Graph.Nodes) == 0 {
		b.WriteString(StyleDim.Render("  (no commits)"))
		return b.String()
	}

	crossings := laneCrossings(m.Graph)
	lanes := m.Graph.Lanes()

	end := m.Offset + m.Height
	if end > len(m.Graph.Nodes) {
		end = len(m.Graph.Nodes)
	}

	for row := m.Offset; row < end; row++ {
		n := m.Graph.Nodes[row]
		selected := n.Commit.Hash == m.State.Selected()

		cursor := "  "
		if selected {
			cursor = "▸ "
		}
		b.WriteString(cursor)
		b.WriteString(renderGutter(n, lanes, crossings[row]))
		b.WriteString(" ")
		b.WriteString(renderCommitLine(n, selected))
		b.WriteString("\n")
	}

	row, _ := m.State.SelectedRow()
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]  zoom %.1fx",
		row+1, len(m.Graph.Nodes), m.State.Zoom())))

	return b.String()
}

// laneCrossings maps row -> set of columns where an edge passes through
// without a node, so the gutter can draw continuation lines.
func laneCrossings(g layout.Graph) map[int]map[int]bool {
	crossings := make(map[int]map[int]bool)
	for _, e := range g.Edges {
		for row := e.FromRow + 1; row < e.ToRow; row++ {
			if crossings[row] == nil {
				crossings[row] = make(map[int]bool)
			}
			crossings[row][e.ToColumn] = true
		}
	}
	return crossings
}

// renderGutter draws one row of the lane gutter.
func renderGutter(n layout.Node, lanes int, crossing map[int]bool) string {
	var b strings.Builder
	for col := 0; col < lanes; col++ {
		style := laneStyle(col)
		switch {
		case col == n.Column && n.Commit.IsMerge():
			b.WriteString(style.Render("◆"))
		case col == n.Column:
			b.WriteString(style.Render("●"))
		case crossing[col]:
			b.WriteString(style.Render("│"))
		default:
			b.WriteString(" ")
		}
		if col < lanes-1 {
			b.WriteString(" ")
		}
	}
	return b.String()
}

// renderCommitLine draws hash, refs and subject for one commit.
func renderCommitLine(n layout.Node, selected bool) string {
	c := n.Commit

	hash := c.Hash
	if len(hash) > 7 {
		hash = hash[:7]
	}

	var parts []string
	parts = append(parts, styleHash.Render(hash))

	for _, branch := range c.Branches {
		label := branch
		if c.IsHead {
			label = "HEAD → " + branch
		}
		parts = append(parts, styleHead.Render("["+label+"]"))
	}
	for _, tag := range c.Tags {
		parts = append(parts, styleTag.Render("<"+tag+">"))
	}
	if c.Subject != "" {
		parts = append(parts, c.Subject)
	}

	line := strings.Join(parts, " ")
	if selected {
		return styleSelected.Render(line)
	}
	return line
}

var _ tea.Model = GraphModel{}
