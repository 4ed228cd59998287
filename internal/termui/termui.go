// Package termui renders stage headers and progress for the command line.
package termui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const barWidth = 32

// Progress prints numbered stage headers and per-stage progress. On a
// terminal it redraws a progress bar in place; otherwise it prints one
// summary line per stage. It implements content.Reporter.
type Progress struct {
	mu          sync.Mutex
	out         io.Writer
	interactive bool
	now         func() time.Time

	bar    progress.Model
	header lipgloss.Style
	muted  lipgloss.Style
	ok     lipgloss.Style

	stages  int
	index   int
	total   int
	done    int
	started time.Time
}

// Option configures a Progress.
type Option func(*Progress)

// WithInteractive overrides terminal detection.
func WithInteractive(v bool) Option {
	return func(p *Progress) { p.interactive = v }
}

// WithClock replaces the time source used for elapsed times.
func WithClock(now func() time.Time) Option {
	return func(p *Progress) { p.now = now }
}

// New returns a Progress for a run of the given number of stages.
func New(w io.Writer, stages int, opts ...Option) *Progress {
	p := &Progress{
		out:         w,
		stages:      stages,
		interactive: isTerminal(w),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}

	r := lipgloss.NewRenderer(w)
	if !p.interactive {
		r.SetColorProfile(termenv.Ascii)
	}
	p.header = r.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	p.muted = r.NewStyle().Foreground(lipgloss.Color("8"))
	p.ok = r.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	p.bar = progress.New(progress.WithDefaultGradient(), progress.WithWidth(barWidth))
	p.started = p.now()
	return p
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Stage prints the header of the next stage.
func (p *Progress) Stage(title string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.index++
	counter := fmt.Sprintf("[%d/%d]", p.index, p.stages)
	fmt.Fprintf(p.out, "%s %s\n", p.header.Render(counter), title)
}

// Start begins counting the items of stage.
func (p *Progress) Start(_ string, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total = total
	p.done = 0
	if p.interactive && total > 0 {
		p.draw("")
	}
}

// Advance records one finished item.
func (p *Progress) Advance(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	if p.interactive {
		p.draw(name)
	}
}

// Finish ends the current stage.
func (p *Progress) Finish(_ string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.interactive && p.total > 0 {
		fmt.Fprint(p.out, "\r\x1b[2K")
	}
	fmt.Fprintf(p.out, "      %s\n", p.muted.Render(fmt.Sprintf("%d/%d files", p.done, p.total)))
}

func (p *Progress) draw(name string) {
	pct := 0.0
	if p.total > 0 {
		pct = float64(p.done) / float64(p.total)
	}
	fmt.Fprintf(p.out, "\r\x1b[2K      %s %d/%d %s", p.bar.ViewAs(pct), p.done, p.total, p.muted.Render(name))
}

// Done prints the closing summary line.
func (p *Progress) Done(files int, written int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	elapsed := p.now().Sub(p.started).Round(time.Millisecond)
	fmt.Fprintf(p.out, "%s in %s (%d files, %s written)\n",
		p.ok.Render("Done"), elapsed, files, humanize.Bytes(uint64(max(written, 0))))
}
