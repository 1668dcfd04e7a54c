package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"focusden/internal/engine"
	"focusden/internal/tui"
	"focusden/internal/ui"
)

func newStartCmd() *cobra.Command {
	var taskID int64
	var watch bool

	cmd := &cobra.Command{
		Use:   "start <minutes>",
		Short: "Start a focus session (25, 50 or 90 minutes)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("duration in minutes is required")
			}
			if _, err := strconv.Atoi(args[0]); err != nil {
				return errors.New("duration must be an integer")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, cleanup, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			minutes, _ := strconv.Atoi(args[0])
			in := engine.StartInput{DurationMinutes: minutes}
			if taskID > 0 {
				in.TaskID = &taskID
			}

			session, err := app.svc.Start(ctx, app.userID, in)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				ui.Good.Render(ui.IconFocus+" Session started"),
				ui.Muted.Render(session.ID),
				ui.Muted.Render(fmt.Sprintf("(%d min)", session.DurationMinutes)))

			if watch {
				return tui.RunTimer(ctx, app.svc, app.userID, session, cmd.OutOrStdout())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Run %s to watch the countdown.\n",
				ui.Muted.Render("💡"), ui.Key.Render("den timer"))
			return nil
		},
	}

	cmd.Flags().Int64VarP(&taskID, "task", "t", 0, "Task template ID to attach")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Open the countdown timer")

	return cmd
}
