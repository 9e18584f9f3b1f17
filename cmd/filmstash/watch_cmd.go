package main

import (
	"fmt"
	"path/filepath"

	"github.com/filmstash/filmstash/internal/logging"
	"github.com/filmstash/filmstash/internal/resolver"
	"github.com/filmstash/filmstash/internal/watcher"
	"github.com/spf13/cobra"
)

// ingestHandler catalogs files the watcher reports. The file path doubles
// as the stable file identity, so re-seeing the same path stays a no-op.
type ingestHandler struct {
	resolver *resolver.Resolver
	log      *logging.Logger
}

func (h *ingestHandler) HandleMediaFile(path string) error {
	title, err := h.resolver.OnFileUploaded(filepath.Base(path), path)
	if err != nil {
		return err
	}
	h.log.Info("watch", "file cataloged", logging.F("path", path), logging.F("title", title))
	return nil
}

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch ingest directories and catalog arriving media files",
		Long: `Watch the configured ingest directories. Media files appearing there
are normalized and added to the catalog automatically.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if len(cfg.Watch.Dirs) == 0 {
				return fmt.Errorf("no watch directories configured; set [watch] dirs in the config file")
			}

			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Close()

			res, cleanup, err := buildResolver(cfg, log)
			if err != nil {
				return err
			}
			defer cleanup()

			w, err := watcher.New(&ingestHandler{resolver: res, log: log}, cfg.Watch.Extensions, log)
			if err != nil {
				return err
			}
			defer w.Close()

			if err := w.Watch(cfg.Watch.Dirs); err != nil {
				return err
			}

			fmt.Println("Watching for new media files. Press Ctrl+C to stop.")
			return w.Start()
		},
	}
}
