package cli

import (
	"fmt"
	"math"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lnzlayouts/pkg/config"
	"github.com/matzehuels/lnzlayouts/pkg/errors"
	"github.com/matzehuels/lnzlayouts/pkg/geom"
	"github.com/matzehuels/lnzlayouts/pkg/layout"
	"github.com/matzehuels/lnzlayouts/pkg/scroll"
	"github.com/matzehuels/lnzlayouts/pkg/stack"
)

// Preview styles
var (
	previewFocusStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	previewCellStyle  = lipgloss.NewStyle().Foreground(colorCyan)
	previewFadedStyle = lipgloss.NewStyle().Foreground(colorDim)
	previewFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
)

// previewCommand creates the preview command, an interactive terminal view
// of a layout.
func (c *CLI) previewCommand() *cobra.Command {
	var flags sceneFlags

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Scroll a layout interactively in the terminal",
		Long: `Scroll a layout interactively in the terminal.

Arrow keys scroll, enter releases the scroll so snapping layouts settle, d
swipes the top card off a stack and tab switches to the next layout while
keeping the focused item.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, err := flags.load(cmd)
			if err != nil {
				return err
			}
			m := NewPreviewModel(scene)
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithAltScreen()).Run()
			return err
		},
	}

	flags.register(cmd, config.KindCarousel)
	flags.registerKind(cmd)

	return cmd
}

// =============================================================================
// PreviewModel - Interactive layout preview
// =============================================================================

// PreviewModel is the bubbletea model of the preview command. It drives a
// headless scroll view and draws the visible elements as a scaled strip.
type PreviewModel struct {
	Scene  config.Scene
	Scroll *scroll.View
	Attrs  []layout.Attributes
	Status string
	Width  int

	// Step is the scroll distance of one key press, in points.
	Step float64
}

// NewPreviewModel builds the scene and runs its first pass.
func NewPreviewModel(scene config.Scene) PreviewModel {
	v, _ := scene.Build(nil)
	return PreviewModel{
		Scene:  scene,
		Scroll: v,
		Attrs:  v.Pass(),
		Width:  60,
		Step:   scene.Layout.ItemWidth / 4,
	}
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.scroll(-m.Step, 0)
		case "right", "l":
			m.scroll(m.Step, 0)
		case "up", "k":
			m.scroll(0, -m.Step)
		case "down", "j":
			m.scroll(0, m.Step)
		case "enter", " ":
			to := m.Scroll.Fling(geom.Point{})
			m.Status = fmt.Sprintf("rests at %.1f, %.1f", to.X, to.Y)
		case "d":
			m.Status = m.swipeTop()
		case "tab":
			m.nextLayout()
		}
		m.Attrs = m.Scroll.Pass()
	case tea.WindowSizeMsg:
		m.Width = msg.Width - 4
		if m.Width < 20 {
			m.Width = 20
		}
	}
	return m, nil
}

// scroll moves along the layout's axis only.
func (m *PreviewModel) scroll(dx, dy float64) {
	if m.Scene.Kind == config.KindStack {
		dx = 0
	} else {
		dy = 0
	}
	if dx == 0 && dy == 0 {
		return
	}
	m.Scroll.ScrollBy(dx, dy)
	m.Status = ""
}

// swipeTop deletes the first visible card of a stack with a fast leftward
// swipe.
func (m *PreviewModel) swipeTop() string {
	s, ok := m.Scroll.Layout().(*stack.Stack)
	if !ok {
		return "swipe needs the stack layout"
	}
	visible := m.Scroll.VisibleItems()
	if len(visible) == 0 {
		return "nothing to swipe"
	}
	card := visible[0]
	width := s.FrameForItem(card).Width()
	swipe := []panSample{{translation: geom.Pt(-width*0.6, 0), velocity: geom.Pt(-600, 0)}}
	states, err := replayPan(m.Scroll, s, card, swipe, false)
	if err != nil {
		return errors.UserMessage(err)
	}
	return fmt.Sprintf("swipe on %d: %s", card, states[len(states)-1])
}

// nextLayout switches to the next layout kind. The focused item carries
// over between row layouts.
func (m *PreviewModel) nextLayout() {
	i := slices.Index(config.Kinds, m.Scene.Kind)
	next := config.Kinds[(i+1)%len(config.Kinds)]
	if next == config.KindStack || m.Scene.Kind == config.KindStack {
		m.Scroll.SetContentOffset(geom.Point{})
	}
	m.Scene.Kind = next
	m.Scroll.SetLayout(m.Scene.NewLayout(m.Scroll, nil))
	m.Status = "layout: " + string(next)
}

func (m PreviewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Preview " + string(m.Scene.Kind)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ scroll  ⏎ settle  d swipe  tab layout  q quit"))
	b.WriteString("\n\n")

	b.WriteString(previewFrameStyle.Render(m.strip()))
	b.WriteString("\n\n")

	focus := m.Scroll.FocusedIndex()
	off := m.Scroll.ContentOffset()
	line := fmt.Sprintf("  offset %.1f, %.1f", off.X, off.Y)
	if focus >= 0 {
		line += fmt.Sprintf("  focus %d", focus)
	}
	if m.Status != "" {
		line += "  " + m.Status
	}
	b.WriteString(StyleDim.Render(line))
	b.WriteString("\n")

	return b.String()
}

// strip draws the visible cells scaled to the model width: one row for the
// row layouts, one row per card for the stack.
func (m PreviewModel) strip() string {
	bounds := m.Scroll.Bounds()
	scale := float64(m.Width) / bounds.Width()
	focus := m.Scroll.FocusedIndex()

	var cells []layout.Attributes
	for _, a := range m.Attrs {
		if a.IsCell() && !a.Hidden {
			cells = append(cells, a)
		}
	}
	if len(cells) == 0 {
		return StyleDim.Render(strings.Repeat(" ", m.Width))
	}

	if m.Scene.Kind == config.KindStack {
		rows := make([]string, 0, len(cells))
		for _, a := range cells {
			rows = append(rows, m.segmentRow([]layout.Attributes{a}, bounds, scale, -1))
		}
		return strings.Join(rows, "\n")
	}
	slices.SortStableFunc(cells, func(a, b layout.Attributes) int { return a.ZIndex - b.ZIndex })
	return m.segmentRow(cells, bounds, scale, focus)
}

// segmentRow paints cells onto one row of m.Width columns. Later cells
// paint over earlier ones.
func (m PreviewModel) segmentRow(cells []layout.Attributes, bounds geom.Rect, scale float64, focus int) string {
	owner := make([]int, m.Width)
	for i := range owner {
		owner[i] = -1
	}
	byIndex := make(map[int]layout.Attributes, len(cells))
	for _, a := range cells {
		byIndex[a.Index] = a
		box := a.Transform.Bounds(a.Frame)
		from := int(math.Floor((box.MinX() - bounds.MinX()) * scale))
		to := int(math.Ceil((box.MaxX() - bounds.MinX()) * scale))
		for x := max(from, 0); x < min(to, m.Width); x++ {
			owner[x] = a.Index
		}
	}

	var b strings.Builder
	for x, idx := range owner {
		if idx < 0 {
			b.WriteByte(' ')
			continue
		}
		ch := string(rune('0' + idx%10))
		if x > 0 && owner[x-1] == idx {
			ch = "█"
		}
		a := byIndex[idx]
		switch {
		case idx == focus:
			b.WriteString(previewFocusStyle.Render(ch))
		case a.Alpha < 1:
			b.WriteString(previewFadedStyle.Render(ch))
		default:
			b.WriteString(previewCellStyle.Render(ch))
		}
	}
	return b.String()
}
