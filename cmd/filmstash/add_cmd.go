package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAddCmd() *cobra.Command {
	var (
		fileID string
		title  string
	)

	cmd := &cobra.Command{
		Use:   "add <filename>",
		Short: "Catalog a media file under its canonical title",
		Long: `Add a media file to the catalog. The filename is normalized and its
title, year, and season/episode are extracted to form the canonical key.

Examples:
  filmstash add "Kung.Fu.Panda.3.2016.1080p.mkv" --file-id F123
  filmstash add "weird-name.mkv" --file-id F124 --title "some movie 2020"`,
		Args: cobra.ExactArgs(1),
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

			fileName := args[0]
			if fileID == "" {
				fileID = fileName
			}

			var key string
			if title != "" {
				key, err = res.AddWithTitle(title, fileName, fileID)
			} else {
				key, err = res.OnFileUploaded(fileName, fileID)
			}
			if err != nil {
				return err
			}

			fmt.Printf("Cataloged under %q\n", key)
			return nil
		},
	}

	cmd.Flags().StringVar(&fileID, "file-id", "", "stable file identity (defaults to the filename)")
	cmd.Flags().StringVar(&title, "title", "", "explicit catalog title, bypassing extraction")

	return cmd
}
