// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command originctl runs the robot-piloting protocol server.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"code.hybscloud.com/originctl/internal/config"
	"code.hybscloud.com/originctl/internal/logging"
	"code.hybscloud.com/originctl/session"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "originctl",
		Short:         "originctl pilots robot clients to the grid origin",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd())
	return root
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "accept connections and run the protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			log, err := logging.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return serve(ctx, cfg, log)
		},
	}
	cmd.Flags().String("addr", "", "listen address, host:port (default :9000)")
	cmd.Flags().Duration("normal-timeout", 0, "read deadline outside a recharge interlude (default 1s)")
	cmd.Flags().Duration("recharge-timeout", 0, "read deadline during a recharge interlude (default 5s)")
	cmd.Flags().String("log-level", "", "minimum log level: debug, info, warn, error (default info)")
	cmd.Flags().String("config", "", "path to a config file")
	return cmd
}

// serve runs the accept loop until ctx is cancelled, supervising every
// connection's session with an errgroup so a panic-free session failure
// never takes the listener down with it.
func serve(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return errors.Wrapf(err, "serve: listen on %s", cfg.Addr)
	}
	log.Info("listening", zap.String("addr", ln.Addr().String()))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-ctx.Done()
		return ln.Close()
	})

	timeouts := session.Timeouts{Normal: cfg.NormalTimeout, Recharge: cfg.RechargeTimeout}
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			log.Warn("accept failed", zap.Error(err))
			continue
		}

		g.Go(func() error {
			defer func() { _ = conn.Close() }()
			connLog := log.With(zap.String("remote_addr", conn.RemoteAddr().String()))
			if err := session.Handle(conn, connLog, timeouts); err != nil {
				connLog.Debug("session ended", zap.Error(err))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}
