package main

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var errNoSources = errors.New("no library sources configured")

func newIndexCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Scan the configured library sources into the search index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, svc, _, cleanup, err := setup(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if len(cfg.Library.Sources) == 0 {
				return fmt.Errorf("%w: add [library] sources to the config", errNoSources)
			}

			stats, err := svc.Library.Scan(cmd.Context(), cfg.Library.Sources, force)
			if err != nil {
				return fmt.Errorf("scan library: %w", err)
			}
			total, err := svc.Library.TrackCount(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s files scanned: %s added, %s updated, %s removed, %s unreadable\n",
				humanize.Comma(int64(stats.Scanned)), humanize.Comma(int64(stats.Added)),
				humanize.Comma(int64(stats.Updated)), humanize.Comma(int64(stats.Removed)),
				humanize.Comma(int64(stats.Skipped)))
			fmt.Fprintf(cmd.OutOrStdout(), "%s tracks indexed\n", humanize.Comma(int64(total)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "re-read tags of unchanged files")
	return cmd
}
