package main

import (
	"fmt"
	"strings"

	"github.com/filmstash/filmstash/internal/activity"
	"github.com/filmstash/filmstash/internal/config"
	"github.com/spf13/cobra"
)

func newActivityCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show recent catalog activity",
		Long:  `List recent searches, uploads, and deletions, newest first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, err := config.DataDir()
			if err != nil {
				return err
			}

			logger, err := activity.NewLogger(dataDir)
			if err != nil {
				return err
			}
			defer logger.Close()

			entries, err := logger.Recent(limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No recorded activity.")
				return nil
			}

			for _, e := range entries {
				switch e.Action {
				case activity.ActionSearch:
					matched := "NOT FOUND"
					if len(e.Matched) > 0 {
						matched = strings.Join(e.Matched, ", ")
					}
					fmt.Printf("%s  search  %q -> %s\n", e.Timestamp.Format("2006-01-02 15:04:05"), e.Query, matched)
				case activity.ActionUpload:
					fmt.Printf("%s  upload  %q (file_id=%s)\n", e.Timestamp.Format("2006-01-02 15:04:05"), e.Title, e.FileID)
				case activity.ActionDelete:
					fmt.Printf("%s  delete  %q deleted=%v\n", e.Timestamp.Format("2006-01-02 15:04:05"), e.Query, e.Deleted)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "maximum entries to show")

	return cmd
}
