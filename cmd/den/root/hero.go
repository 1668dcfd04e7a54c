package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"focusden/internal/ui"
)

func newHeroCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "hero",
		Short: "Show or rename the hero",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, cleanup, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if !cmd.Flags().Changed("name") {
				p, err := app.svc.Profile(ctx, app.userID)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconSparkle, p.Hero.Name))
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Level", p.Hero.Level))
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Streak", fmt.Sprintf("%d (best %d)", p.Hero.StreakCount, p.Hero.LongestStreak)))
				return nil
			}

			p, err := app.svc.RenameHero(ctx, app.userID, name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s now answers to %s\n",
				ui.Good.Render(ui.IconDone),
				ui.Title.Render(p.Hero.Name))
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Rename the hero")

	return cmd
}
