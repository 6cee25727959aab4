package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	m "exportscan.dev/pkg/exportscan/internal/model"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const (
	defaultPagerWidth  = 80
	defaultPagerHeight = 24
	// pagerChrome is the number of lines taken by the title and footer.
	pagerChrome = 3
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			Padding(0, 1)
	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// TUI implements UI using Bubble Tea, paging output taller than the terminal.
type TUI struct {
	output io.Writer
	run    func(model tea.Model) error
}

// NewTUI creates a new TUI writing to output.
func NewTUI(output io.Writer) *TUI {
	tui := &TUI{output: output}
	tui.run = func(model tea.Model) error {
		_, err := tea.NewProgram(model, tea.WithOutput(tui.output), tea.WithAltScreen()).Run()
		return err
	}

	return tui
}

// DisplayNames pages the name tables.
func (p *TUI) DisplayNames(ctx context.Context, reports []m.NamesReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return p.page("exports", renderNames(reports))
}

// DisplayCallables pages the callable tables.
func (p *TUI) DisplayCallables(ctx context.Context, reports []m.CallablesReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return p.page("callables", renderCallables(reports))
}

// DisplayAnalysis pages the analysis summaries.
func (p *TUI) DisplayAnalysis(ctx context.Context, reports []m.AnalysisReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return p.page("analysis", renderAnalysis(reports))
}

// DisplayDiff pages the unified diff.
func (p *TUI) DisplayDiff(ctx context.Context, report m.DiffReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return p.page(fmt.Sprintf("%s → %s", report.From, report.To), renderDiff(report))
}

// page prints content directly when it fits the terminal and runs the pager otherwise.
func (p *TUI) page(title, content string) error {
	width, height := p.size()

	model := newPagerModel(title, content, width, height)
	if !model.needsPagination() {
		_, err := fmt.Fprint(p.output, content)
		return err
	}

	if err := p.run(model); err != nil {
		return fmt.Errorf("run pager: %w", err)
	}

	return nil
}

func (p *TUI) size() (int, int) {
	if f, ok := p.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			return width, height
		}
	}

	return defaultPagerWidth, defaultPagerHeight
}

// pagerModel is the Bubble Tea model scrolling rendered output.
type pagerModel struct {
	viewport viewport.Model
	title    string
	lines    int
	height   int
	quitting bool
}

func newPagerModel(title, content string, width, height int) pagerModel {
	vp := viewport.New(width, max(height-pagerChrome, 1))
	vp.SetContent(content)

	return pagerModel{
		viewport: vp,
		title:    title,
		lines:    strings.Count(content, "\n") + 1,
		height:   height,
	}
}

// needsPagination returns true if the content is taller than the screen.
func (pm pagerModel) needsPagination() bool {
	return pm.height > 0 && pm.lines > pm.height
}

func (pm pagerModel) Init() tea.Cmd {
	return nil
}

func (pm pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			pm.quitting = true
			return pm, tea.Quit
		}
	case tea.WindowSizeMsg:
		pm.height = msg.Height
		pm.viewport.Width = msg.Width
		pm.viewport.Height = max(msg.Height-pagerChrome, 1)
	}

	var cmd tea.Cmd
	pm.viewport, cmd = pm.viewport.Update(msg)

	return pm, cmd
}

func (pm pagerModel) View() string {
	if pm.quitting {
		return ""
	}

	footer := footerStyle.Render(fmt.Sprintf("%3.f%% • ↑/↓ scroll • q quit", pm.viewport.ScrollPercent()*100))

	return titleStyle.Render(pm.title) + "\n" + pm.viewport.View() + "\n" + footer
}
