package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/phyten/taglight/internal/highlight"
	"github.com/phyten/taglight/internal/paint"
	"github.com/phyten/taglight/internal/web"
)

const defaultAddr = "127.0.0.1:7457"

func newServeCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a live highlighting preview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.setup(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			addr, _ := cmd.Flags().GetString("addr")
			open, _ := cmd.Flags().GetBool("open")
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, cmd, addr, open)
		},
	}
	cmd.Flags().String("addr", defaultAddr, "listen address")
	cmd.Flags().Bool("open", false, "open the preview in a browser")
	return cmd
}

// serve runs the preview until ctx is cancelled. Every request shares one
// engine behind a scheduler that honours highlight_delay.
func (a *app) serve(ctx context.Context, cmd *cobra.Command, addr string, open bool) error {
	engine, err := highlight.New(highlight.Options{
		Host:     paint.NewHost(),
		Settings: a.highlight,
		Logger:   a.logger,
	})
	if err != nil {
		return err
	}
	scheduler := highlight.NewScheduler(engine)
	defer scheduler.Stop()

	preview := web.NewServer(scheduler, web.Options{Dark: a.dark, Gutter: a.ui.Gutter, Logger: a.logger})
	mux := http.NewServeMux()
	preview.Register(mux)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	url := "http://" + ln.Addr().String() + "/"
	fmt.Fprintf(cmd.OutOrStdout(), "serving preview on %s\n", url)
	if open {
		if err := browser.OpenURL(url); err != nil {
			a.logger.Warn("failed to open browser", zap.Error(err))
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
