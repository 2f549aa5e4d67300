package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/branched-services/go-ensresolve/internal/api"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const optionNameAddr = "addr"

func (c *command) initServeCmd() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve lookups over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return c.serve(ctx, nil)
		},
	}
	cmd.Flags().String(optionNameAddr, "", "listen address (default :8080)")
	_ = c.config.BindPFlag("http.addr", cmd.Flags().Lookup(optionNameAddr))
	c.root.AddCommand(cmd)
}

// serve runs the API until ctx is done. A non-nil ready receives the bound
// listen address.
func (c *command) serve(ctx context.Context, ready chan<- string) error {
	s, err := c.newSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	registry.MustRegister(s.resolver.Metrics()...)

	gin.SetMode(gin.ReleaseMode)
	router, err := api.NewRouter(api.RouterConfig{
		Service:        s.resolver,
		CallTimeout:    s.cfg.CallTimeout,
		RateLimitRPS:   s.cfg.HTTP.RateLimitRPS,
		RateLimitBurst: s.cfg.HTTP.RateLimitBurst,
		CORSOrigins:    s.cfg.HTTP.CORSOrigins,
		Registry:       registry,
		Logger:         s.logger,
	})
	if err != nil {
		return err
	}

	lis, err := net.Listen("tcp", s.cfg.HTTP.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.HTTP.Addr, err)
	}
	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("api listening",
		zap.String("addr", lis.Addr().String()),
		zap.String("rpc", s.cfg.RPCURL),
		zap.Stringer("universal_resolver", s.resolver.UniversalResolver()),
	)
	if ready != nil {
		ready <- lis.Addr().String()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down api")
		shutCtx, cancel := context.WithTimeout(context.Background(), s.cfg.HTTP.ShutdownGrace)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})
	return g.Wait()
}
