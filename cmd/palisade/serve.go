package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/aretw0/palisade"
	"github.com/aretw0/palisade/internal/cli"
	httpAdapter "github.com/aretw0/palisade/pkg/adapters/http"
	"github.com/aretw0/palisade/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/palisade/pkg/adapters/redis"
	"github.com/aretw0/palisade/pkg/domain"
	"github.com/aretw0/palisade/pkg/observability"
	"github.com/aretw0/palisade/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gate HTTP server",
	Long: `Exposes the validation gate as a JSON API: trigger checks, list
transitions, and inspect recent outcomes. Metrics are served on /metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")
		file, _ := cmd.Flags().GetString("file")
		debug, _ := cmd.Flags().GetBool("debug")
		port, _ := cmd.Flags().GetString("port")
		mode, _ := cmd.Flags().GetString("mode")
		redisAddr, _ := cmd.Flags().GetString("redis")
		validators, _ := cmd.Flags().GetStringArray("validator")

		logger := cli.CreateLogger(debug)

		loader, err := cli.BuildLoader(dir, file)
		if err != nil {
			fmt.Printf("Error loading definitions: %v\n", err)
			os.Exit(1)
		}

		provider, err := cli.BuildProvider(mode, validators)
		if err != nil {
			fmt.Printf("Error building validators: %v\n", err)
			os.Exit(1)
		}

		var store ports.OutcomeStore
		if redisAddr != "" {
			redisStore := redisAdapter.New(redisAddr, "", 0)
			defer redisStore.Close()
			store = redisStore
		} else {
			store = memory.NewStore()
		}

		registry := prometheus.NewRegistry()

		gateOpts := []palisade.Option{
			palisade.WithLogger(logger),
			palisade.WithOutcomeStore(store),
			palisade.WithMetrics(observability.New(registry)),
		}
		if debug {
			gateOpts = append(gateOpts, palisade.WithLifecycleHooks(cli.CreateDebugHooks(logger)))
		}

		gate, err := palisade.New(provider, gateOpts...)
		if err != nil {
			fmt.Printf("Error initializing gate: %v\n", err)
			os.Exit(1)
		}

		handler := httpAdapter.NewHandler(gate, loader, registry,
			httpAdapter.WithOutcomeStore(store),
			httpAdapter.WithLogger(logger),
		)

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Palisade Server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Palisade Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("mode", domain.ModeWorkflow, "Validation mode the simulated validators register under")
	serveCmd.Flags().String("redis", "", "Redis address for the outcome audit store (in-memory when empty)")
	serveCmd.Flags().StringArray("validator", nil, "Simulated validator result: name=Result or name=Result:rounds (repeatable)")
}
