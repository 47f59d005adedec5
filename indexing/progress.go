package indexing

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

// ProgressTracker reports indexing progress every reportInterval
// documents. Output goes to writer when set, otherwise to the logger.
// The total is unknown while streaming, so only counts and rates are shown.
type ProgressTracker struct {
	writer         io.Writer
	logger         *slog.Logger
	current        int
	reportInterval int
	lastReported   int
	startTime      time.Time
	started        bool
	mu             sync.Mutex
}

// NewProgressTracker creates a new progress tracker.
func NewProgressTracker(writer io.Writer, logger *slog.Logger, reportInterval int) *ProgressTracker {
	if reportInterval <= 0 {
		reportInterval = DefaultReportInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgressTracker{
		writer:         writer,
		logger:         logger,
		reportInterval: reportInterval,
	}
}

// Start begins tracking progress.
func (p *ProgressTracker) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.startTime = time.Now()
	p.started = true
	p.current = 0
	p.lastReported = 0
}

// Increment adds delta to the count and reports when an interval is crossed.
func (p *ProgressTracker) Increment(delta int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	p.current += delta
	if p.current-p.lastReported >= p.reportInterval {
		p.report()
		p.lastReported = p.current
	}
}

// Count returns the number of documents seen so far.
func (p *ProgressTracker) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Finish prints the final count and the elapsed time.
func (p *ProgressTracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	elapsed := time.Since(p.startTime)
	if p.writer != nil {
		fmt.Fprintf(p.writer, "Indexed %d documents in %s\n", p.current, elapsed.Round(time.Millisecond))
		return
	}
	p.logger.Info("indexing finished", "documents", p.current, "elapsed", elapsed.Round(time.Millisecond))
}

// Elapsed returns the time elapsed since Start was called.
func (p *ProgressTracker) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return 0
	}

	return time.Since(p.startTime)
}

// report prints the current progress. Must be called with lock held.
func (p *ProgressTracker) report() {
	elapsed := time.Since(p.startTime)
	rate := 0.0
	if s := elapsed.Seconds(); s > 0 {
		rate = float64(p.current) / s
	}

	if p.writer != nil {
		fmt.Fprintf(p.writer, "Indexed %d documents (%.1f docs/s)\n", p.current, rate)
		return
	}
	p.logger.Info("indexing progress", "documents", p.current, "rate", fmt.Sprintf("%.1f", rate))
}
