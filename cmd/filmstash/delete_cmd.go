package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <query>",
		Short: "Delete catalog files matching a title or filename",
		Long: `Delete files from the catalog. First entries whose titles fuzzy-match
the query are inspected and files literally referencing the query are
removed; if that removes nothing, filenames across the whole catalog are
fuzzy-matched directly.`,
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

			result, err := res.OnDeleteQuery(strings.Join(args, " "))
			if err != nil {
				return err
			}

			fmt.Println(result.Description)
			return nil
		},
	}
}
