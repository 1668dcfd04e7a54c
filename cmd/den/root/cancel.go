package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"focusden/internal/ui"
)

func newCancelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel [session_id]",
		Short: "Cancel a session (no rewards)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, cleanup, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			sessionID, err := resolveSessionID(ctx, app, args)
			if err != nil {
				return err
			}

			session, err := app.svc.Cancel(ctx, app.userID, sessionID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
				ui.Warn.Render(ui.IconCancel+" Session cancelled"),
				ui.Muted.Render(session.ID))
			return nil
		},
	}

	return cmd
}
