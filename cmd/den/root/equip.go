package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"focusden/internal/ui"
)

func newEquipCmd() *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:   "equip <cosmetic_id>",
		Short: "Equip an owned cosmetic (or clear its slot)",
		Long: `Equip an owned cosmetic on the hero.

The slot (hat, outfit or accessory) comes from the item itself, and a
newly equipped item replaces whatever was in that slot. Use --remove to
clear the item's slot instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, cleanup, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := app.svc.Equip(ctx, app.userID, args[0], remove)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if remove {
				fmt.Fprintln(out, ui.Warn.Render(ui.IconCancel+" Slot cleared"))
			} else {
				fmt.Fprintln(out, ui.Good.Render(ui.IconSparkle+" Equipped"))
			}
			printSlot(cmd, "hat", res.Profile.Equipped.Hat)
			printSlot(cmd, "outfit", res.Profile.Equipped.Outfit)
			printSlot(cmd, "accessory", res.Profile.Equipped.Accessory)
			return nil
		},
	}

	cmd.Flags().BoolVar(&remove, "remove", false, "Clear the item's slot instead of equipping")

	return cmd
}
