package root

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"focusden/internal/engine"
	"focusden/internal/storage"
	"focusden/internal/ui"
)

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage task presets",
	}

	cmd.AddCommand(newTaskListCmd())
	cmd.AddCommand(newTaskAddCmd())
	cmd.AddCommand(newTaskUpdateCmd())
	cmd.AddCommand(newTaskRmCmd())

	return cmd
}

func newTaskListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List task presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, cleanup, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			tasks, err := app.svc.Tasks(ctx, app.userID)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconFocus, "Task presets"))
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No presets yet. Add one with `den task add`."))
				return nil
			}
			for _, t := range tasks {
				printTask(cmd, t)
			}
			return nil
		},
	}
}

func newTaskAddCmd() *cobra.Command {
	var (
		room     string
		category string
		duration int
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a task preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, cleanup, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			task, err := app.svc.CreateTask(ctx, app.userID, engine.TaskInput{
				Name:            args[0],
				Category:        category,
				Room:            room,
				DefaultDuration: duration,
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" Preset added"))
			printTask(cmd, *task)
			return nil
		},
	}

	cmd.Flags().StringVarP(&room, "room", "r", "", "Room the task belongs to (study, build, training, plaza)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Free-form category label")
	cmd.Flags().IntVarP(&duration, "duration", "d", 25, "Default duration in minutes")

	return cmd
}

func newTaskUpdateCmd() *cobra.Command {
	var (
		name     string
		room     string
		category string
		duration int
	)

	cmd := &cobra.Command{
		Use:   "update <task_id>",
		Short: "Update a task preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, cleanup, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			taskID, err := parseTaskID(args[0])
			if err != nil {
				return err
			}

			// Unset flags fall back to the current values so a partial
			// update does not blank the rest of the preset.
			current, err := findTask(ctx, app, taskID)
			if err != nil {
				return err
			}
			in := engine.TaskInput{
				Name:            current.Name,
				Room:            current.Room,
				DefaultDuration: current.DefaultDuration,
			}
			if current.Category != nil {
				in.Category = *current.Category
			}
			if cmd.Flags().Changed("name") {
				in.Name = name
			}
			if cmd.Flags().Changed("room") {
				in.Room = room
			}
			if cmd.Flags().Changed("category") {
				in.Category = category
			}
			if cmd.Flags().Changed("duration") {
				in.DefaultDuration = duration
			}

			task, err := app.svc.UpdateTask(ctx, app.userID, taskID, in)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" Preset updated"))
			printTask(cmd, *task)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVarP(&room, "room", "r", "", "New room (study, build, training, plaza)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "New category label")
	cmd.Flags().IntVarP(&duration, "duration", "d", 0, "New default duration in minutes")

	return cmd
}

func newTaskRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <task_id>",
		Short: "Remove a task preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, cleanup, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			taskID, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			if err := app.svc.DeleteTask(ctx, app.userID, taskID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s task %d removed\n", ui.Warn.Render(ui.IconCancel), taskID)
			return nil
		},
	}
}

func parseTaskID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}

func findTask(ctx context.Context, app *appEnv, taskID int64) (*storage.TaskTemplate, error) {
	tasks, err := app.svc.Tasks(ctx, app.userID)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].ID == taskID {
			return &tasks[i], nil
		}
	}
	return nil, fmt.Errorf("task %d not found", taskID)
}

func printTask(cmd *cobra.Command, t storage.TaskTemplate) {
	line := fmt.Sprintf("%3d  %s %s  %s",
		t.ID,
		ui.RoomIcon(t.Room),
		t.Name,
		ui.Muted.Render(fmt.Sprintf("%d min", t.DefaultDuration)))
	if t.Category != nil {
		line += "  " + ui.Muted.Render("#"+*t.Category)
	}
	fmt.Fprintln(cmd.OutOrStdout(), line)
}
