package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"triage-cli/internal/model"
	"triage-cli/internal/mutate"
	"triage-cli/internal/store"
)

func (a *App) loadBoard() (store.Store, *store.Board, error) {
	dir, err := a.storeDir()
	if err != nil {
		return store.Store{}, nil, err
	}
	s := store.Store{Dir: dir}
	b, err := s.Load()
	return s, b, err
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the board",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, b, err := app.loadBoard()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, l := range b.Lists {
				items := model.ItemsInList(b.Items, l.ID)
				model.SortItemsByOrder(items)
				fmt.Fprintf(out, "%s %s (%d)\n", l.Icon, l.Name, len(items))
				for _, it := range items {
					line := "  " + it.ID + "  " + it.Title
					if it.ScheduledAt != nil {
						line += "  @" + *it.ScheduledAt
						if it.TimeSlot != model.TimeSlotNone {
							line += " " + string(it.TimeSlot)
						}
					}
					fmt.Fprintln(out, line)
				}
			}
			return nil
		},
	}
}

func newAddCmd(app *App) *cobra.Command {
	var listID, desc string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add an item",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, b, err := app.loadBoard()
			if err != nil {
				return err
			}
			it, err := store.AddItem(b, listID, strings.Join(args, " "), desc, time.Now().UTC())
			if err != nil {
				return err
			}
			if err := s.Save(b); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), it.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&listID, "list", store.ListInbox, "target list id")
	cmd.Flags().StringVar(&desc, "desc", "", "markdown description")
	return cmd
}

func newMoveCmd(app *App) *cobra.Command {
	var before, at string
	var slot string
	cmd := &cobra.Command{
		Use:   "move <item-id> <list-id>",
		Short: "Move an item to a list, optionally before another item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, b, err := app.loadBoard()
			if err != nil {
				return err
			}
			itemID, targetList := args[0], args[1]
			it, ok := model.FindItem(b.Items, itemID)
			if !ok {
				return fmt.Errorf("no item %q", itemID)
			}
			if _, ok := model.FindList(b.Lists, targetList); !ok {
				return fmt.Errorf("no list %q", targetList)
			}

			var patch *model.ItemPatch
			if at != "" {
				if _, err := time.Parse("15:04", at); err != nil {
					return fmt.Errorf("--at wants HH:MM, got %q", at)
				}
				ts := model.TimeSlot(slot)
				if !model.ValidTimeSlot(ts) {
					return fmt.Errorf("unknown time slot %q", slot)
				}
				patch = &model.ItemPatch{ScheduledAt: &at, TimeSlot: &ts}
			}
			needsSchedule := store.RequiresSchedule(targetList) &&
				it.ListID != targetList && it.ScheduledAt == nil
			if needsSchedule && patch == nil {
				return fmt.Errorf("moving into %s needs --at HH:MM", targetList)
			}

			dst := model.SlotEnd(targetList)
			if before != "" {
				dst = model.SlotBefore(before)
			}
			req := mutate.DropRequest{
				ItemID:       itemID,
				SourceListID: it.ListID,
				TargetListID: targetList,
				Slot:         dst,
			}
			next, err := mutate.ApplyDrop(b.Items, req, patch, time.Now().UTC())
			if err != nil {
				return err
			}
			b.Items = next
			return s.Save(b)
		},
	}
	cmd.Flags().StringVar(&before, "before", "", "insert before this item id")
	cmd.Flags().StringVar(&at, "at", "", "schedule time HH:MM (required when moving into today)")
	cmd.Flags().StringVar(&slot, "slot", string(model.TimeSlotMorning), "time slot: morning, afternoon or evening")
	return cmd
}
