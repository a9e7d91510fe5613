package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/fitplan/internal/fakebackend"
)

var devserverCmd = &cobra.Command{
	Use:   "devserver",
	Short: "Run a local fake backend for development",
	Long: `Serve the FitPlan REST API from memory with generated plans.

Point the client at it with --api http://localhost:5002/api. Data is lost
when the server stops.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		seed, _ := cmd.Flags().GetInt64("seed")

		backend := fakebackend.New(seed)
		server := &http.Server{
			Addr:         addr,
			Handler:      backend.Router(),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  120 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			log.WithField("addr", addr).Info("fake backend listening")
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()
		fmt.Printf("Fake backend listening on %s (Ctrl+C to stop)\n", addr)

		select {
		case err := <-errCh:
			return fmt.Errorf("listen: %w", err)
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		log.Info("fake backend stopped")
		return nil
	},
}

func init() {
	devserverCmd.Flags().String("addr", ":5002", "Listen address")
	devserverCmd.Flags().Int64("seed", 1, "Seed for generated plans")
}
