package dutug

import (
	"context"
	"io"
	"time"

	"github.com/filetug/dutug/pkg/scanner"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var spinnerFrames = []rune("⠁⠂⠄⡀⢀⠠⠐⠈")

var spinnerInterval = 80 * time.Millisecond

var isTerminal = term.IsTerminal

// isTerminalWriter reports whether w is a file attached to a terminal.
func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && isTerminal(int(f.Fd()))
}

// Progress is a one-line scan spinner for a plain terminal, shown before
// the UI starts.
type Progress struct {
	w        io.Writer
	rootPath string
	stats    func() scanner.Stats
	printer  *message.Printer
	frame    int
}

func NewProgress(w io.Writer, rootPath string, stats func() scanner.Stats) *Progress {
	return &Progress{
		w:        w,
		rootPath: rootPath,
		stats:    stats,
		printer:  message.NewPrinter(language.English),
	}
}

// Run redraws the line until ctx is done, then clears it.
func (p *Progress) Run(ctx context.Context) error {
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()
	for {
		_, _ = io.WriteString(p.w, "\r"+p.line()+"\x1b[K")
		p.frame++
		select {
		case <-ctx.Done():
			_, _ = io.WriteString(p.w, "\r\x1b[K")
			return nil
		case <-ticker.C:
		}
	}
}

func (p *Progress) line() string {
	stats := p.stats()
	frame := spinnerFrames[p.frame%len(spinnerFrames)]
	return p.printer.Sprintf("%c Scanning %s  %d files  %d dirs  %s",
		frame, p.rootPath, stats.Files, stats.Dirs, GetSizeText(stats.Bytes))
}

// ScanWithProgress scans rootPath while a Progress spinner writes to w.
// Nothing is written when w is not a terminal.
func ScanWithProgress(ctx context.Context, w io.Writer, rootPath string, cfg scanner.Config, o ...scanner.Option) (*scanner.Result, error) {
	s := scanner.New(cfg, o...)
	if !isTerminalWriter(w) {
		return s.Scan(ctx, rootPath)
	}
	g, gctx := errgroup.WithContext(ctx)
	spinCtx, stopSpinner := context.WithCancel(gctx)
	defer stopSpinner()

	var result *scanner.Result
	g.Go(func() (err error) {
		defer stopSpinner()
		result, err = s.Scan(gctx, rootPath)
		return err
	})
	g.Go(func() error {
		return NewProgress(w, rootPath, s.Stats).Run(spinCtx)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
