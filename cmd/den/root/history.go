package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"focusden/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, cleanup, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if limit <= 0 {
				limit = app.cfg.HistoryLimit
			}
			items, err := app.svc.History(ctx, app.userID, limit)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconTimer, "Session history"))
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No sessions yet."))
				return nil
			}

			for _, item := range items {
				s := item.Session
				line := fmt.Sprintf("%s  %2d min  %s",
					s.StartedAt.Local().Format("2006-01-02 15:04"),
					s.DurationMinutes,
					ui.StatusText(s.Status))
				if item.TaskName != nil {
					room := ""
					if item.Room != nil {
						room = ui.RoomIcon(*item.Room) + " "
					}
					line += "  " + room + *item.TaskName
				}
				if s.RewardXP != nil {
					line += "  " + ui.Muted.Render(fmt.Sprintf("(+%d xp, +%d gold)", *s.RewardXP, valueOrZero(s.RewardGold)))
				}
				if item.CosmeticName != nil {
					line += "  " + ui.IconDrop + " " + ui.Title.Render(*item.CosmeticName)
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Max sessions to show (default from env, cap 50)")

	return cmd
}

func valueOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
