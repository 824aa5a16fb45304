package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mazegen/pkg/pipeline"
	"github.com/matzehuels/mazegen/pkg/render/grid/sink"
)

// Viewer styles
var (
	viewerWallStyle = lipgloss.NewStyle().Foreground(colorCyan)
	viewerDimStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

// viewerChrome is the number of lines used by the header and footer.
const viewerChrome = 3

// showCommand creates the show command for browsing a maze in the terminal.
func (c *CLI) showCommand() *cobra.Command {
	var maze mazeFlags

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Scroll through a maze in the terminal",
		Long: `Generate a maze once and browse its ASCII rendering in a full-screen viewer.

Keys: arrows or hjkl scroll, pgup/pgdown page, g/G jump to top/bottom, q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			if err := maze.apply(cmd, &opts); err != nil {
				return err
			}
			return c.runShow(cmd.Context(), opts)
		},
	}
	maze.register(cmd)
	return cmd
}

func (c *CLI) runShow(ctx context.Context, opts pipeline.Options) error {
	opts.Logger = c.Logger
	if err := opts.ValidateForGenerate(); err != nil {
		return err
	}
	m, err := c.newRunner().Generate(ctx, opts)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("Maze %dx%d · seed %d", m.Height(), m.Width(), opts.Seed)
	model := newMazeViewModel(title, sink.RenderText(m))
	_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// =============================================================================
// mazeViewModel - Scrollable maze viewer
// =============================================================================

// mazeViewModel is the bubbletea model for the maze viewer. It only scrolls;
// the maze never changes once shown.
type mazeViewModel struct {
	title  string
	lines  []string
	cols   int // widest line
	offX   int
	offY   int
	width  int
	height int // rows available for maze lines
}

func newMazeViewModel(title, text string) mazeViewModel {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	cols := 0
	for _, l := range lines {
		cols = max(cols, len(l))
	}
	return mazeViewModel{
		title:  title,
		lines:  lines,
		cols:   cols,
		width:  80,
		height: 20,
	}
}

func (m mazeViewModel) Init() tea.Cmd {
	return nil
}

func (m mazeViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.offY--
		case "down", "j":
			m.offY++
		case "left", "h":
			m.offX -= 2
		case "right", "l":
			m.offX += 2
		case "pgup":
			m.offY -= m.height
		case "pgdown", " ":
			m.offY += m.height
		case "home", "g":
			m.offX, m.offY = 0, 0
		case "end", "G":
			m.offY = len(m.lines)
		}
	case tea.WindowSizeMsg:
		m.width = max(msg.Width, 1)
		m.height = max(msg.Height-viewerChrome, 1)
	}
	m.clamp()
	return m, nil
}

// clamp keeps the viewport inside the maze text.
func (m *mazeViewModel) clamp() {
	m.offY = min(m.offY, max(len(m.lines)-m.height, 0))
	m.offX = min(m.offX, max(m.cols-m.width, 0))
	m.offY = max(m.offY, 0)
	m.offX = max(m.offX, 0)
}

func (m mazeViewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("\n")

	end := min(m.offY+m.height, len(m.lines))
	for _, line := range m.lines[m.offY:end] {
		if m.offX < len(line) {
			line = line[m.offX:min(len(line), m.offX+m.width)]
		} else {
			line = ""
		}
		b.WriteString(viewerWallStyle.Render(line))
		b.WriteString("\n")
	}

	b.WriteString(viewerDimStyle.Render(fmt.Sprintf("rows %d-%d of %d  ←↑↓→ scroll  q quit", m.offY+1, end, len(m.lines))))
	return b.String()
}
