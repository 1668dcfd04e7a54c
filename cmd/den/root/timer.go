package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"focusden/internal/tui"
)

func newTimerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Open the countdown for the active session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, cleanup, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			active, err := app.svc.Active(ctx, app.userID)
			if err != nil {
				return err
			}
			if active == nil {
				return fmt.Errorf("no active session; start one with `den start 25`")
			}

			return tui.RunTimer(ctx, app.svc, app.userID, active, cmd.OutOrStdout())
		},
	}

	return cmd
}
