package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"focusden/internal/tui"
	"focusden/internal/ui"
)

func newDoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done [session_id]",
		Short: "Complete a session and collect rewards",
		Long: `Complete a focus session and collect its rewards.

With no argument the active session is completed. The engine does not
care how late this is called; a session left running stays claimable.`,
		Args: cobra.MaximumNArgs(1),
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

			summary, err := app.svc.Complete(ctx, app.userID, sessionID)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconTrophy, "Session complete!"))
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderReward(summary))
			return nil
		},
	}

	return cmd
}

func resolveSessionID(ctx context.Context, app *appEnv, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	active, err := app.svc.Active(ctx, app.userID)
	if err != nil {
		return "", err
	}
	if active == nil {
		return "", fmt.Errorf("no active session; pass a session id")
	}
	return active.ID, nil
}
