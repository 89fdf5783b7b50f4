package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/user/segcut/clip"
	"github.com/user/segcut/tui/components"
	"github.com/user/segcut/tui/styles"
)

const defaultWidth = 72

type batchStartMsg struct {
	total int
}

type jobStartMsg struct {
	job   clip.CuttingJob
	total int
}

type jobDoneMsg struct {
	outcome clip.CutOutcome
}

// batchDoneMsg is sent once the batch goroutine returns.
type batchDoneMsg struct {
	result *clip.BatchResult
	err    error
}

// waitForMsg returns a tea.Cmd that waits for the next message on the channel.
func waitForMsg(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

// channelObserver forwards batch events into the bubbletea program.
type channelObserver struct {
	ch chan<- tea.Msg
}

func (o channelObserver) OnBatchStart(inputPath string, total int) {
	o.ch <- batchStartMsg{total: total}
}

func (o channelObserver) OnJobStart(job clip.CuttingJob, total int) {
	o.ch <- jobStartMsg{job: job, total: total}
}

func (o channelObserver) OnJobDone(outcome clip.CutOutcome, total int) {
	o.ch <- jobDoneMsg{outcome: outcome}
}

func (o channelObserver) OnBatchDone(*clip.BatchResult) {}

type progressModel struct {
	inputPath string
	spinner   spinner.Model
	state     components.BatchProgressState
	lines     []string
	msgs      <-chan tea.Msg
	cancel    context.CancelFunc
	// start launches the batch once the program is running.
	start func()
	width int

	result *clip.BatchResult
	err    error
}

func newProgressModel(inputPath string, total int, msgs <-chan tea.Msg, cancel context.CancelFunc) progressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Amber)

	return progressModel{
		inputPath: inputPath,
		spinner:   s,
		state:     components.BatchProgressState{Total: total},
		msgs:      msgs,
		cancel:    cancel,
		width:     defaultWidth,
	}
}

func (m progressModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, waitForMsg(m.msgs)}
	if m.start != nil {
		start := m.start
		cmds = append(cmds, func() tea.Msg {
			start()
			return nil
		})
	}
	return tea.Batch(cmds...)
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = min(msg.Width, 100)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			if m.state.Done {
				return m, tea.Quit
			}
			if !m.state.Cancelling {
				m.state.Cancelling = true
				m.cancel()
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case batchStartMsg:
		m.state.Total = msg.total
		return m, waitForMsg(m.msgs)

	case jobStartMsg:
		m.state.Current = msg.job.Number
		m.state.CurrentFile = clip.OutputPath(msg.job.InputPath, msg.job.Number)
		return m, waitForMsg(m.msgs)

	case jobDoneMsg:
		switch msg.outcome.Status {
		case clip.StatusSucceeded:
			m.state.Completed++
		case clip.StatusFailed:
			m.state.Failed++
		}
		m.lines = append(m.lines, outcomeLine(msg.outcome))
		return m, waitForMsg(m.msgs)

	case batchDoneMsg:
		m.state.Done = true
		m.state.Current = 0
		m.result = msg.result
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m progressModel) View() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("segcut") + "  " + styles.SecondaryText.Render(filepath.Base(m.inputPath)) + "\n")
	b.WriteString(components.BatchProgress(m.state, m.spinner.View(), m.width) + "\n")
	for _, line := range m.lines {
		b.WriteString(line + "\n")
	}
	if !m.state.Done {
		b.WriteString(components.StatusBar("ctrl+c stop after current segment", fmt.Sprintf("%d/%d", m.state.Completed, m.state.Total), m.width) + "\n")
	}
	return b.String()
}

// outcomeLine renders one finished job.
func outcomeLine(o clip.CutOutcome) string {
	if o.Status == clip.StatusSucceeded {
		detail := fmt.Sprintf("(%s, %s)", o.Mode, humanize.Bytes(uint64(o.Size)))
		return styles.Success.Render("✓") + fmt.Sprintf(" Segment %d ", o.Job.Number) +
			styles.Path.Render(o.OutputPath) + " " + styles.Muted.Render(detail)
	}
	if o.Status == clip.StatusSkipped {
		return styles.Muted.Render(fmt.Sprintf("- Segment %d: stopped", o.Job.Number))
	}
	return styles.Error.Render("✗") + fmt.Sprintf(" Segment %d: ", o.Job.Number) + styles.Error.Render(o.Err.Error())
}

// BatchFunc runs a batch with the given observer attached.
type BatchFunc func(ctx context.Context, observer clip.Observer) (*clip.BatchResult, error)

// RunProgress runs fn while showing its progress. Pressing ctrl+c cancels ctx
// passed to fn; the batch then stops at the next segment boundary and the view
// stays until it has finished.
//
// The batch starts only once the program is up. If the program cannot run
// (no terminal), fn runs without the view and reports to fallback instead.
// If the program dies while the batch runs, the batch is left to finish.
func RunProgress(ctx context.Context, inputPath string, total int, fn BatchFunc, fallback clip.Observer, opts ...tea.ProgramOption) (*clip.BatchResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Room for every event the batch can send, so the batch never blocks on
	// a program that has already exited.
	ch := make(chan tea.Msg, 2*total+2)
	var once sync.Once
	started := false
	launch := func() {
		once.Do(func() {
			started = true
			go func() {
				res, err := fn(ctx, channelObserver{ch: ch})
				ch <- batchDoneMsg{result: res, err: err}
			}()
		})
	}

	m := newProgressModel(inputPath, total, ch, cancel)
	m.start = launch
	final, err := tea.NewProgram(m, opts...).Run()

	// Claim the launch so a late start command cannot run the batch twice.
	once.Do(func() {})
	if !started {
		if fallback == nil {
			fallback = clip.NopObserver{}
		}
		return fn(ctx, fallback)
	}
	if err == nil {
		if pm := final.(progressModel); pm.state.Done {
			return pm.result, pm.err
		}
	}
	return drain(ch)
}

// drain waits for the batch to finish after the program has exited.
func drain(ch <-chan tea.Msg) (*clip.BatchResult, error) {
	for msg := range ch {
		if done, ok := msg.(batchDoneMsg); ok {
			return done.result, done.err
		}
	}
	return nil, fmt.Errorf("batch ended without a result")
}
