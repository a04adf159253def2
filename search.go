package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/llehouerou/wavesearch/internal/globalsearch"
	"github.com/llehouerou/wavesearch/internal/ui/searchview"
)

var errQueryTooShort = errors.New("query too short")

func newSearchCommand() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Run one query and print the merged results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, svc, logger, cleanup, err := setup(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			sched := globalsearch.NewTimerScheduler()
			defer sched.Stop()

			search, err := globalsearch.New(svc.Engine,
				globalsearch.WithScheduler(sched),
				globalsearch.WithSettings(cfg.SearchSettings()),
				globalsearch.WithLogger(logger),
			)
			if err != nil {
				return err
			}
			if err := svc.RegisterProviders(cfg); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			if err := runQuery(ctx, search, svc.Engine.Events(), sched.C, args[0]); err != nil {
				return err
			}
			printResults(os.Stdout, search.Active())
			return nil
		},
	}

	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 10*time.Second, "give up waiting for providers after this long")
	return cmd
}

// runQuery starts a session and pumps engine events and cutovers until
// every enabled provider has answered and staging has been promoted.
func runQuery(
	ctx context.Context,
	search *globalsearch.Search,
	events <-chan globalsearch.Event,
	cutovers <-chan globalsearch.CutoverDue,
	query string,
) error {
	// Drain provider registrations first so the expected batch count is right.
	drainPending(search, events)

	expected := 0
	for _, p := range search.Providers() {
		if search.IsProviderEnabled(p.ID) {
			expected++
		}
	}

	id, ok := search.TextEdited(query)
	if !ok {
		return fmt.Errorf("%w: need at least %d characters", errQueryTooShort, search.Settings().MinQueryLength)
	}

	batches := 0
	promoted := false
	for batches < expected || !promoted {
		select {
		case <-ctx.Done():
			if promoted {
				return nil
			}
			return ctx.Err()
		case ev := <-events:
			if r, ok := ev.(globalsearch.ResultsAvailable); ok && r.Session == id {
				batches++
			}
			search.Dispatch(ev)
		case due := <-cutovers:
			if search.Cutover(due) {
				promoted = true
			}
		}
	}
	return nil
}

func drainPending(search *globalsearch.Search, events <-chan globalsearch.Event) {
	for {
		select {
		case ev := <-events:
			search.Dispatch(ev)
		default:
			return
		}
	}
}

func printResults(w io.Writer, buf *globalsearch.Buffer) {
	if buf.Len() == 0 {
		fmt.Fprintln(w, "No results")
		return
	}
	for _, rec := range buf.Rows() {
		r := rec.Primary()
		line := fmt.Sprintf("%-6s %-12s %s", r.Type, r.ProviderID, searchview.Describe(r))
		if n := len(rec.Alternatives); n > 1 {
			line += fmt.Sprintf("  (+%d)", n-1)
		}
		fmt.Fprintln(w, line)
	}
}
