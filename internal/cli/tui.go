package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowpack/pkg/flow"
	"github.com/matzehuels/flowpack/pkg/scene"
	"github.com/matzehuels/flowpack/pkg/sink"
)

// previewCommand creates the preview command: an interactive terminal view
// of a scene that relays out on every resize.
func (c *CLI) previewCommand() *cobra.Command {
	var container containerFlags

	cmd := &cobra.Command{
		Use:   "preview [scene.toml|scene.json]",
		Short: "Resize a scene interactively in the terminal",
		Long: `Resize a scene interactively in the terminal.

Arrow keys change the container width and height and lay the scene out
again; the text rendering shows how items wrap into lines.

  ←/→ width   ↑/↓ height   o orientation   d debug   r reset   q quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scene.Load(args[0])
			if err != nil {
				return err
			}
			s.Container.Override(container.overrides(cmd))
			if err := s.Validate(); err != nil {
				return err
			}

			m := newPreviewModel(args[0], s)
			if m.err != nil {
				return m.err
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	container.register(cmd)
	completeFiles(cmd, "toml", "json")
	return cmd
}

// =============================================================================
// previewModel - Interactive relayout
// =============================================================================

// previewModel is the bubbletea model of the preview command. Every size
// or setting change runs a fresh layout pass over the scene.
type previewModel struct {
	name  string
	base  scene.Container // container as loaded, for reset
	scene *scene.Scene
	debug bool

	frame *scene.Frame
	err   error
}

func newPreviewModel(name string, s *scene.Scene) previewModel {
	m := previewModel{name: name, base: s.Container, scene: s}
	m.reset()
	return m
}

// reset restores the loaded container. Unbounded dimensions start at the
// measured frame size so the first arrow press changes the layout.
func (m *previewModel) reset() {
	m.scene.Container = m.base
	m.relayout()
	if m.err != nil {
		return
	}
	c := &m.scene.Container
	if c.Width == 0 {
		c.Width = m.frame.Width
	}
	if c.Height == 0 {
		c.Height = m.frame.Height
	}
}

// relayout lays the scene out again. A failed pass keeps the last good
// frame on screen and shows the error.
func (m *previewModel) relayout() {
	f, _, err := m.scene.Layout()
	m.err = err
	if err == nil {
		m.frame = f
	}
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	c := &m.scene.Container
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h":
		c.Width = max(c.Width-1, 0)
	case "right", "l":
		c.Width++
	case "up", "k":
		c.Height = max(c.Height-1, 0)
	case "down", "j":
		c.Height++
	case "o":
		if o, _ := scene.ParseOrientation(c.Orientation); o == flow.Vertical {
			c.Orientation = flow.Horizontal.String()
		} else {
			c.Orientation = flow.Vertical.String()
		}
	case "d":
		m.debug = !m.debug
		return m, nil
	case "r":
		m.reset()
		return m, nil
	default:
		return m, nil
	}

	m.relayout()
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.name))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(m.status()))
	b.WriteString("\n\n")

	if m.frame != nil {
		opts := []sink.TextOption{sink.WithColor()}
		if m.debug {
			opts = append(opts, sink.WithTextDebug())
		}
		b.WriteString(sink.RenderText(m.frame, opts...))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(StyleError.Render(m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ width  ↑/↓ height  o orientation  d debug  r reset  q quit"))
	return b.String()
}

// status summarizes the container settings and the current frame.
func (m previewModel) status() string {
	c := m.scene.Container
	orientation := c.Orientation
	if o, err := scene.ParseOrientation(c.Orientation); err == nil {
		orientation = o.String()
	}
	s := fmt.Sprintf("%s · width %d %s · height %d %s",
		orientation, c.Width, modeLabel(c.WidthMode, c.Width), c.Height, modeLabel(c.HeightMode, c.Height))
	if m.frame != nil {
		s += fmt.Sprintf(" · %d lines", len(m.frame.Lines))
	}
	return s
}

// modeLabel names the size mode a container dimension resolves to.
func modeLabel(mode string, bound int) string {
	m, err := scene.ParseSizeMode(mode, bound)
	if err != nil {
		return "(" + mode + ")"
	}
	return "(" + m.String() + ")"
}
