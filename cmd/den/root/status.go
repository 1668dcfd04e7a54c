package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"focusden/internal/engine"
	"focusden/internal/storage"
	"focusden/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show hero stats and world progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, cleanup, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p, err := app.svc.Profile(ctx, app.userID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, p.Hero.Name))
			fmt.Fprintln(out, ui.LabelValue("Level", fmt.Sprintf("%d (%d/%d xp)", p.Hero.Level, p.Hero.XP, engine.XPThreshold(p.Hero.Level))))
			fmt.Fprintln(out, ui.LabelValue("Gold", fmt.Sprintf("%s %d", ui.IconGold, p.Hero.Gold)))
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%s %d (best %d)", ui.IconFlame, p.Hero.StreakCount, p.Hero.LongestStreak)))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(ui.IconWorld+" World"))
			fmt.Fprintf(out, "- %s study: lvl %d\n", ui.RoomIcon("study"), p.World.StudyRoomLevel)
			fmt.Fprintf(out, "- %s build: lvl %d\n", ui.RoomIcon("build"), p.World.BuildRoomLevel)
			fmt.Fprintf(out, "- %s training: lvl %d\n", ui.RoomIcon("training"), p.World.TrainingRoomLevel)
			fmt.Fprintf(out, "- %s plaza: lvl %d\n", ui.RoomIcon("plaza"), p.World.PlazaLevel)
			fmt.Fprintf(out, "- sessions: %d attempted, %d completed\n", p.World.TotalSessions, p.World.SuccessfulSessions)
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("🧢 Equipped"))
			printSlot(cmd, "hat", p.Equipped.Hat)
			printSlot(cmd, "outfit", p.Equipped.Outfit)
			printSlot(cmd, "accessory", p.Equipped.Accessory)

			active, err := app.svc.Active(ctx, app.userID)
			if err != nil {
				return err
			}
			if active != nil {
				fmt.Fprintln(out, "")
				fmt.Fprintf(out, "%s %s %s\n",
					ui.Warn.Render(ui.IconTimer+" Active session"),
					ui.Muted.Render(active.ID),
					ui.Muted.Render(fmt.Sprintf("(%d min, started %s)", active.DurationMinutes, active.StartedAt.Local().Format("15:04"))))
			}
			return nil
		},
	}

	return cmd
}

func printSlot(cmd *cobra.Command, slot string, item *storage.CosmeticItem) {
	if item == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "- %s: %s\n", slot, ui.Muted.Render("empty"))
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "- %s: %s (%s)\n", slot, item.Name, ui.RarityText(item.Rarity))
}
