package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/fitplan/internal/api"
	"github.com/abhisek/fitplan/internal/app"
	"github.com/abhisek/fitplan/internal/catalog"
	"github.com/abhisek/fitplan/internal/export"
	"github.com/abhisek/fitplan/internal/store"
	"github.com/abhisek/fitplan/internal/submission"
)

// deps are the collaborators shared by the TUI and the CLI subcommands.
type deps struct {
	store     *store.Store
	sessions  *store.SessionStore
	client    *api.Client
	catalog   *catalog.Service
	submitter *submission.Submitter
}

// openDeps opens the store and builds the API client around it. Callers
// must Close the result.
func openDeps() (*deps, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	client, err := api.New(cfg.API.BaseURL, cfg.API.Timeout, api.WithRecorder(st.EventRepo()))
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("create API client: %w", err)
	}

	sessions := st.Sessions()
	log.WithFields(log.Fields{"db": dbPath, "api": client.BaseURL()}).Debug("dependencies ready")
	return &deps{
		store:    st,
		sessions: sessions,
		client:   client,
		catalog: catalog.NewService(client, sessions, catalog.Config{
			SizeMB: cfg.Cache.SizeMB,
			TTL:    cfg.Cache.TTL,
		}),
		submitter: submission.New(client, sessions),
	}, nil
}

func (d *deps) Close() {
	if err := d.store.Close(); err != nil {
		log.WithError(err).Warn("close store")
	}
}

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := openDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	exportDir, err := os.Getwd()
	if err != nil {
		exportDir = "."
	}

	return app.Run(cmd.Context(), app.Options{
		Config:    cfg,
		Sessions:  d.sessions,
		Plans:     d.client,
		Catalog:   d.catalog,
		Submitter: d.submitter,
		Export:    export.SavePlanXLSX,
		ExportDir: exportDir,
	})
}
