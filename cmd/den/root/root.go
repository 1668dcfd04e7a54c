package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"focusden/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "den",
	Short:         "FocusDen — gamified focus sessions from your terminal",
	Long:          "FocusDen is a local-first focus tracker: run timed sessions, earn XP, gold and streaks, unlock cosmetics and upgrade your den.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newStartCmd(),
		newDoneCmd(),
		newCancelCmd(),
		newTimerCmd(),
		newHistoryCmd(),
		newStatusCmd(),
		newTaskCmd(),
		newInventoryCmd(),
		newEquipCmd(),
		newHeroCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
