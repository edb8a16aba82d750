package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"triage-cli/internal/store"
)

func newEventsCmd(app *App) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show recent drop history",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := app.storeDir()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()

			log, err := store.Store{Dir: dir}.OpenEventLog(ctx)
			if err != nil {
				return err
			}
			defer log.Close()

			events, err := log.Recent(ctx, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, ev := range events {
				fmt.Fprintf(out, "%s  %s  %s → %s  (%s)\n",
					ev.TS.Local().Format("2006-01-02 15:04"),
					ev.ItemID, ev.FromList, ev.ToList, ev.SlotKey)
			}
			if len(events) == 0 {
				fmt.Fprintln(out, "no drops recorded yet")
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "max events to show")
	return cmd
}
