package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"focusden/internal/engine"
	"focusden/internal/ui"
)

func newInventoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inventory",
		Aliases: []string{"inv"},
		Short:   "List unlocked cosmetics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, cleanup, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			owned, err := app.svc.Inventory(ctx, app.userID)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconDrop, "Inventory"))
			if len(owned) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Nothing yet. Complete sessions for a chance at drops."))
				return nil
			}
			for _, o := range owned {
				printOwned(cmd, o)
			}
			return nil
		},
	}

	return cmd
}

func printOwned(cmd *cobra.Command, o engine.OwnedCosmetic) {
	mark := " "
	if o.Equipped {
		mark = ui.Good.Render("*")
	}
	line := fmt.Sprintf("%s %-18s %-9s %s  %s",
		mark,
		o.Item.Name,
		o.Item.Type,
		ui.RarityText(o.Item.Rarity),
		ui.Muted.Render(o.Item.ID))
	fmt.Fprintln(cmd.OutOrStdout(), line)
	if o.Item.Description != nil {
		fmt.Fprintln(cmd.OutOrStdout(), "  "+ui.Muted.Render(*o.Item.Description))
	}
}
