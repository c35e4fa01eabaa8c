package progress

import (
	"fmt"
	"io"
	"sync"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"

	"github.com/raphi011/ghv/internal/ui/styles"
)

// progressUpdate is sent to update the progress bar
type progressUpdate struct {
	current int
	message string
}

// ProgressBar counts finished items out of a known total.
type ProgressBar struct {
	mu        sync.Mutex
	ind       indicator
	updateCh  chan progressUpdate
	isRunning bool
	total     int
	current   int
	message   string
}

type progressBarModel struct {
	progress progress.Model
	total    int
	current  int
	message  string
	updateCh chan progressUpdate
}

func (m progressBarModel) Init() tea.Cmd {
	return m.waitForUpdate()
}

func (m progressBarModel) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		update, ok := <-m.updateCh
		if !ok {
			return tea.Quit()
		}
		return update
	}
}

func (m progressBarModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressUpdate:
		m.current = msg.current
		m.message = msg.message
		return m, m.waitForUpdate()
	default:
		var cmd tea.Cmd
		m.progress, cmd = m.progress.Update(msg)
		return m, cmd
	}
}

func (m progressBarModel) View() tea.View {
	if m.message == "" {
		return tea.NewView("")
	}
	// [████████░░░░░░░░]  3/19 Loading READMEs
	bar := m.progress.ViewAs(fraction(m.current, m.total))
	return tea.NewView(fmt.Sprintf("%s %2d/%d %s", bar, m.current, m.total, m.message))
}

func fraction(current, total int) float64 {
	if total <= 0 {
		return 0
	}
	return min(float64(current)/float64(total), 1)
}

// NewProgressBar creates a progress bar writing to out.
func NewProgressBar(out io.Writer, total int, message string) *ProgressBar {
	return &ProgressBar{
		ind:     indicator{out: out},
		total:   total,
		message: message,
	}
}

// Start begins the display. It does nothing when out is not a terminal.
func (p *ProgressBar) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isRunning || !Enabled(p.ind.out) {
		return
	}

	prog := progress.New(
		progress.WithWidth(30),
		progress.WithoutPercentage(),
		progress.WithColors(styles.Primary, styles.Accent),
	)

	p.updateCh = make(chan progressUpdate, 10)
	p.ind.start(progressBarModel{
		progress: prog,
		total:    p.total,
		current:  p.current,
		message:  p.message,
		updateCh: p.updateCh,
	})
	p.isRunning = true
}

// Increment marks one more item as finished.
func (p *ProgressBar) Increment() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current++
	if !p.isRunning {
		return
	}

	// drop the update rather than block the caller
	select {
	case p.updateCh <- progressUpdate{current: p.current, message: p.message}:
	default:
	}
}

// Current returns the number of finished items.
func (p *ProgressBar) Current() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Stop stops the progress bar and clears the line.
func (p *ProgressBar) Stop() {
	p.mu.Lock()
	if !p.isRunning {
		p.mu.Unlock()
		return
	}
	p.isRunning = false
	close(p.updateCh)
	p.mu.Unlock()

	p.ind.stop()
}

// Total returns the total count for the progress bar.
func (p *ProgressBar) Total() int {
	return p.total
}
