package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/quarryworks/lode/internal/cli"
	httpAdapter "github.com/quarryworks/lode/pkg/adapters/http"
	"github.com/quarryworks/lode/pkg/adapters/memory"
	"github.com/quarryworks/lode/pkg/observability"
	"github.com/quarryworks/lode/pkg/ports"
	"github.com/quarryworks/lode/pkg/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the excavation session server",
	Long:  `Exposes excavation sessions over a JSON API. Each session gets its own simulated world, seeded from the fixture template. Prometheus metrics are served on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")
		fixturePath, _ := cmd.Flags().GetString("fixture")
		debug, _ := cmd.Flags().GetBool("debug")

		logger := cli.CreateLogger(debug)

		var fixture *cli.Fixture
		if fixturePath != "" {
			var err error
			fixture, err = cli.LoadFixture(fixturePath)
			if err != nil {
				return err
			}
		}

		manager := session.NewManager(getStore(cmd), session.WithLogger(logger))
		metrics := observability.NewMetrics(prometheus.DefaultRegisterer)

		pool := &worldPool{fixture: fixture, rigs: make(map[string]*memory.SimRig)}

		r := chi.NewRouter()
		r.Handle("/metrics", promhttp.Handler())
		r.Mount("/", httpAdapter.NewHandler(manager, pool.Rig,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithHooks(metrics.Hooks())))

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: r,
		}

		serverErrors := make(chan error, 1)
		go func() {
			fmt.Printf("Starting lode server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("lode server stopped gracefully")
		}
		return nil
	},
}

// worldPool hands each session its own simulated world, seeded from the
// fixture template.
type worldPool struct {
	mu      sync.Mutex
	fixture *cli.Fixture
	rigs    map[string]*memory.SimRig
}

func (p *worldPool) Rig(sessionID string) ports.Rig {
	p.mu.Lock()
	defer p.mu.Unlock()

	rig, ok := p.rigs[sessionID]
	if !ok {
		if p.fixture != nil {
			rig = p.fixture.BuildRig()
		} else {
			rig = memory.NewSimRig()
		}
		p.rigs[sessionID] = rig
	}
	return rig
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().StringP("fixture", "f", "", "World fixture template for new sessions")
}
