// SPDX-License-Identifier: MIT

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

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvdecomp/cache"
	"github.com/katalvlaran/lvdecomp/server"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the decomposition API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return a.serve(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")

	return cmd
}

func (a *app) serve(ctx context.Context) error {
	store := cache.Open(a.cfg.Cache)
	if a.cfg.Cache.Addr != "" {
		a.log.Info().Str("addr", a.cfg.Cache.Addr).Dur("ttl", a.cfg.Cache.TTL).Msg("redis result cache enabled")
	}
	ln, err := net.Listen("tcp", a.cfg.Server.Addr)
	if err != nil {
		_ = store.Close()
		return fmt.Errorf("failed to listen on %s: %w", a.cfg.Server.Addr, err)
	}
	if a.listening != nil {
		a.listening(ln.Addr())
	}
	srv := server.New(a.cfg.Server, a.cfg.Engine(a.log), store, a.log)

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		_ = store.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
