package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/phyten/taglight/internal/document"
	"github.com/phyten/taglight/internal/highlight"
	"github.com/phyten/taglight/internal/paint"
)

const stdinName = "-"

type source struct {
	Name string
	URI  string
	Text string
}

// loadSources reads the named files in parallel, keeping argument order. No
// arguments, or "-", reads standard input.
func (a *app) loadSources(ctx context.Context, args []string) ([]source, error) {
	if len(args) == 0 {
		args = []string{stdinName}
	}
	out := make([]source, len(args))
	jobs := a.jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	stdinAt := -1
	for i, name := range args {
		if name != stdinName {
			continue
		}
		if stdinAt >= 0 {
			return nil, fmt.Errorf("standard input given more than once")
		}
		stdinAt = i
	}
	if stdinAt >= 0 {
		data, err := io.ReadAll(a.env.stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		out[stdinAt] = source{Name: "<stdin>", URI: "untitled:stdin", Text: string(data)}
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(args)))
	for i, name := range args {
		if i == stdinAt {
			continue
		}
		i, name := i, name
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			data, err := os.ReadFile(name)
			if err != nil {
				return err
			}
			abs, err := filepath.Abs(name)
			if err != nil {
				return err
			}
			out[i] = source{Name: name, URI: "file://" + filepath.ToSlash(abs), Text: string(data)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

type highlighted struct {
	source
	Surface *paint.Surface
}

// highlightSources runs one engine over every source. Sources whose URI
// scheme is not configured are kept undecorated.
func (a *app) highlightSources(sources []source) ([]highlighted, error) {
	engine, err := highlight.New(highlight.Options{
		Host:     paint.NewHost(),
		Settings: a.highlight,
		Logger:   a.logger,
	})
	if err != nil {
		return nil, err
	}
	out := make([]highlighted, len(sources))
	for i, src := range sources {
		surface := paint.NewSurface(document.New(src.URI, src.Text))
		if a.highlight.AcceptsURI(src.URI) {
			engine.Highlight(surface)
		} else {
			a.logger.Debug("scheme not highlighted", zap.String("uri", src.URI))
		}
		out[i] = highlighted{source: src, Surface: surface}
	}
	return out, nil
}
