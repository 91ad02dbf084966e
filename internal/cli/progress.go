package cli

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/schollz/progressbar/v3"

	"github.com/Veraticus/picsort/internal/model"
)

// Progress reports a sorting run on the terminal. With a bar it shows one
// bar that names the latest image; in plain mode it prints one line per
// image, which suits logs and pipes.
type Progress struct {
	writer io.Writer
	bar    *progressbar.ProgressBar
	plain  bool
	mu     sync.Mutex
}

// NewProgress creates a progress reporter writing to w.
func NewProgress(w io.Writer, plain bool) *Progress {
	return &Progress{writer: w, plain: plain}
}

// OnStart sizes the bar for total images.
func (p *Progress) OnStart(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if total == 0 {
		p.printf("%s\n", FormatInfo("Nothing new to sort"))
		return
	}
	if p.plain {
		p.printf("Sorting %d images\n", total)
		return
	}

	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Sorting images...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(p.writer); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}

// OnResult advances the bar, or prints the image line in plain mode.
func (p *Progress) OnResult(result model.ClassificationResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	line := DescribeResult(result)
	if p.bar == nil {
		p.printf("%s\n", line)
		return
	}

	p.bar.Describe(line)
	if err := p.bar.Add(1); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
}

// OnSkip prints skipped files in plain mode only.
func (p *Progress) OnSkip(name, reason string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.plain {
		p.printf("%s\n", MutedStyle.Render(fmt.Sprintf("%s %s (%s)", SkipIcon, name, reason)))
	}
}

// OnFinish closes the bar if the run stopped early.
func (p *Progress) OnFinish(model.Run) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bar != nil && !p.bar.IsFinished() {
		if err := p.bar.Exit(); err != nil {
			slog.Warn("Failed to close progress bar", "error", err)
		}
		p.printf("\n")
	}
	p.bar = nil
}

func (p *Progress) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(p.writer, format, args...); err != nil {
		slog.Warn("Failed to write progress", "error", err)
	}
}

// DescribeResult renders one image outcome as a single line.
func DescribeResult(result model.ClassificationResult) string {
	var line string
	switch result.Outcome {
	case model.OutcomeMatched:
		line = fmt.Sprintf("%s → %s", result.ImageName, result.CategoryLabel())
	case model.OutcomeErrored:
		line = fmt.Sprintf("%s → %s (%s)", result.ImageName, model.FailedFolder, result.Error)
	default:
		line = fmt.Sprintf("%s → %s (answer %q)", result.ImageName, model.FailedFolder, result.Answer)
	}
	return FormatOutcome(result.Outcome, line)
}
