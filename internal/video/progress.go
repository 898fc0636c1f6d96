package video

import (
	"fmt"
	"strings"
	"time"
)

// ProgressReporter receives per-frame progress from the pipeline.
type ProgressReporter interface {
	Advance()
	ReportError(err error)
	ReportComplete()
}

// ProgressBar renders an in-place terminal progress bar, throttled so
// per-frame updates don't flood the console.
type ProgressBar struct {
	total       int
	current     int
	startTime   time.Time
	lastUpdate  time.Time
	description string
}

func NewProgressBar(description string, total int) *ProgressBar {
	return &ProgressBar{
		total:       total,
		startTime:   time.Now(),
		description: description,
	}
}

func (p *ProgressBar) Advance() {
	p.current++

	if time.Since(p.lastUpdate) < 100*time.Millisecond && p.current < p.total {
		return
	}
	p.lastUpdate = time.Now()
	p.render()
}

func (p *ProgressBar) render() {
	total := p.total
	if total <= 0 {
		fmt.Printf("\r%s %d frames Elapsed: %v",
			p.description, p.current, time.Since(p.startTime).Round(time.Second))
		return
	}

	percentage := float64(p.current) / float64(total) * 100
	barWidth := 30
	completed := barWidth * p.current / total
	if completed > barWidth {
		completed = barWidth
	}
	bar := strings.Repeat("=", completed) + strings.Repeat("-", barWidth-completed)

	fmt.Printf("\r%s [%s] %.1f%% Elapsed: %v",
		p.description,
		bar,
		percentage,
		time.Since(p.startTime).Round(time.Second),
	)
}

func (p *ProgressBar) ReportError(err error) {
	fmt.Printf("\nError: %v\n", err)
}

func (p *ProgressBar) ReportComplete() {
	p.render()
	fmt.Println()
}
