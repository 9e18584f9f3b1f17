package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/filmstash/filmstash/internal/resolver"
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy-search the catalog",
		Long: `Search catalog titles with token-set fuzzy matching. Word order and
typos are tolerated; "season 1 episode 2" phrases are canonicalized to
S01E02 before matching.

Examples:
  filmstash search "leo 2023"
  filmstash search "money heist season 1 episode 3"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
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

			query := strings.Join(args, " ")
			files, err := res.OnSearchQuery(query)
			if errors.Is(err, resolver.ErrNotFound) {
				fmt.Println("No matching entry found.")
				return nil
			}
			if err != nil {
				return err
			}

			for _, f := range files {
				fmt.Printf("%s\t%s\n", f.FileID, f.FileName)
			}
			return nil
		},
	}
}
