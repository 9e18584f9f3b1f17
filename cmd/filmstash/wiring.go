package main

import (
	"fmt"

	"github.com/filmstash/filmstash/internal/activity"
	"github.com/filmstash/filmstash/internal/catalog"
	"github.com/filmstash/filmstash/internal/config"
	"github.com/filmstash/filmstash/internal/logging"
	"github.com/filmstash/filmstash/internal/naming"
	"github.com/filmstash/filmstash/internal/resolver"
)

// openStore builds the catalog store for the configured backend.
func openStore(cfg *config.Config) (*catalog.Store, error) {
	path, err := cfg.CatalogPath()
	if err != nil {
		return nil, err
	}

	var blob catalog.BlobStore
	switch cfg.Catalog.Backend {
	case "badger":
		blob, err = catalog.NewBadgerStore(path)
	case "", "file":
		blob, err = catalog.NewFileStore(path)
	default:
		return nil, fmt.Errorf("unknown catalog backend %q", cfg.Catalog.Backend)
	}
	if err != nil {
		return nil, err
	}

	return catalog.NewStore(blob), nil
}

// buildResolver wires store, extractor, and activity log into a Resolver.
// The returned cleanup function closes everything the resolver holds open.
func buildResolver(cfg *config.Config, log *logging.Logger) (*resolver.Resolver, func(), error) {
	store, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	var act *activity.Logger
	if cfg.Activity.Enabled {
		dataDir, err := config.DataDir()
		if err == nil {
			act, err = activity.NewLogger(dataDir)
		}
		if err != nil {
			log.Warn("main", "activity log disabled", logging.F("error", err))
		} else if cfg.Activity.RetentionDays > 0 {
			act.PruneOld(cfg.Activity.RetentionDays)
		}
	}

	extractor := naming.NewExtractor(naming.NewRulesGuesser(), log)
	thresholds := resolver.Thresholds{
		Search:         cfg.Matching.SearchThreshold,
		DeleteTitle:    cfg.Matching.DeleteTitleThreshold,
		DeleteFilename: cfg.Matching.DeleteFilenameThreshold,
	}

	res := resolver.New(store, extractor, thresholds, log, act)

	cleanup := func() {
		store.Close()
		if act != nil {
			act.Close()
		}
	}
	return res, cleanup, nil
}
