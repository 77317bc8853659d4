// Package ui renders the progress of a batch check in the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"cdecl/internal/driver"
)

// stageWeight is how far through its document a file is once a stage
// starts; a finished file counts as 1.
var stageWeight = map[driver.Stage]float64{
	driver.StageLoad:    0.1,
	driver.StageParse:   0.25,
	driver.StageCheck:   0.5,
	driver.StageExplain: 0.85,
}

var stageVerb = map[driver.Stage]string{
	driver.StageLoad:    "loading",
	driver.StageParse:   "parsing",
	driver.StageCheck:   "checking",
	driver.StageExplain: "explaining",
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	workingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	idleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// docState is what the view knows about one document.
type docState struct {
	path   string
	stage  driver.Stage
	status driver.Status
}

func (d docState) finished() bool {
	switch d.status {
	case driver.StatusDone, driver.StatusError, driver.StatusCached:
		return true
	}
	return false
}

func (d docState) fraction() float64 {
	if d.finished() {
		return 1
	}
	if d.status == driver.StatusQueued {
		return 0
	}
	return stageWeight[d.stage]
}

// label is the status column: a stage verb while working.
func (d docState) label() string {
	switch d.status {
	case driver.StatusWorking:
		return stageVerb[d.stage]
	case "":
		return string(driver.StatusQueued)
	}
	return string(d.status)
}

func (d docState) style() lipgloss.Style {
	switch d.status {
	case driver.StatusDone, driver.StatusCached:
		return okStyle
	case driver.StatusError:
		return errorStyle
	case driver.StatusWorking:
		return workingStyle
	}
	return idleStyle
}

type batchModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	docs    []docState
	byPath  map[string]int
	width   int
	done    bool
}

type eventMsg driver.Event
type closedMsg struct{}

// NewProgressModel returns a Bubble Tea model that follows the events of a
// batch check over files. It quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = workingStyle

	m := &batchModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		docs:    make([]docState, len(files)),
		byPath:  make(map[string]int, len(files)),
	}
	for i, f := range files {
		m.docs[i] = docState{path: f, status: driver.StatusQueued}
		m.byPath[f] = i
	}
	m.resize(80)
	return m
}

func (m *batchModel) resize(width int) {
	m.width = width
	m.bar.Width = max(width-4, 10)
}

func (m *batchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *batchModel) next() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return closedMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *batchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(driver.Event(msg)), m.next())
	case closedMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		// проверку не прерываем, только прячем вид
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.resize(msg.Width)
		}
	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

// apply records ev and moves the bar. Run-wide events and files the batch
// does not list are ignored.
func (m *batchModel) apply(ev driver.Event) tea.Cmd {
	i, ok := m.byPath[ev.File]
	if !ok || ev.Status == "" {
		return nil
	}
	m.docs[i].stage, m.docs[i].status = ev.Stage, ev.Status
	return m.bar.SetPercent(m.fraction())
}

func (m *batchModel) fraction() float64 {
	if len(m.docs) == 0 {
		return 1
	}
	var sum float64
	for _, d := range m.docs {
		sum += d.fraction()
	}
	return sum / float64(len(m.docs))
}

// counts returns finished documents and those of them that failed.
func (m *batchModel) counts() (finished, failed int) {
	for _, d := range m.docs {
		if d.finished() {
			finished++
		}
		if d.status == driver.StatusError {
			failed++
		}
	}
	return finished, failed
}

func (m *batchModel) View() string {
	if len(m.docs) == 0 {
		return ""
	}
	finished, failed := m.counts()
	lead := m.spinner.View()
	if m.done {
		lead = okStyle.Render("✓")
	}
	header := fmt.Sprintf("%s %s %d/%d", lead, titleStyle.Render(m.title), finished, len(m.docs))
	if failed > 0 {
		header += errorStyle.Render(fmt.Sprintf(" (%d with errors)", failed))
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")
	const labelWidth = 10
	pathWidth := max(m.width-labelWidth-4, 16)
	for _, d := range m.docs {
		fmt.Fprintf(&b, "  %s %s\n", d.style().Render(fmt.Sprintf("%-*s", labelWidth, d.label())), shortenPath(d.path, pathWidth))
	}
	b.WriteString("\n")
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	return b.String()
}

// shortenPath fits path into width screen columns, keeping its tail: the
// document name matters more than the directories above it.
func shortenPath(path string, width int) string {
	if width <= 0 || runewidth.StringWidth(path) <= width {
		return path
	}
	const ellipsis = "..."
	if width <= len(ellipsis) {
		return runewidth.Truncate(path, width, "")
	}
	// runewidth режет только хвост, поэтому переворачиваем руны
	r := []rune(path)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	tail := []rune(runewidth.Truncate(string(r), width-len(ellipsis), ""))
	for i, j := 0, len(tail)-1; i < j; i, j = i+1, j-1 {
		tail[i], tail[j] = tail[j], tail[i]
	}
	return ellipsis + string(tail)
}
