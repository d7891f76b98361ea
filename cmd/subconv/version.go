package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/orris-inc/subconv/internal/fetch"
	"github.com/orris-inc/subconv/internal/shared/version"
)

// newVersionCommand builds the "version" subcommand. With --check it fetches
// releaseCheckURL (a plain-text file containing the latest tag) and reports
// whether a newer release is available, using the teacher's semver helpers.
func newVersionCommand() *cobra.Command {
	var check bool
	var checkURL string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the subconv version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(version.Current)
			if !check {
				return nil
			}

			fetcher := &fetch.HTTPFetcher{Client: &http.Client{Timeout: 5 * time.Second}}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			latest, err := fetcher.Fetch(ctx, checkURL)
			if err != nil {
				return fmt.Errorf("check latest version: %w", err)
			}
			latest = strings.TrimSpace(latest)

			if version.HasNewerVersion(version.Current, latest) {
				fmt.Printf("a newer version is available: %s\n", latest)
			} else {
				fmt.Println("up to date")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "check for a newer release")
	cmd.Flags().StringVar(&checkURL, "check-url", "https://raw.githubusercontent.com/orris-inc/subconv/main/VERSION", "URL to fetch the latest version tag from")
	return cmd
}
