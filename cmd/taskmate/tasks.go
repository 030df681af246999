package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var addPriority string

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)

	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "Task priority (required)")
	_ = addCmd.MarkFlagRequired("priority")
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(!verbose)
		if err != nil {
			return err
		}
		defer a.Close()

		tasks := a.engine.List()
		w := cmd.OutOrStdout()
		if jsonOutput {
			out := make([]TaskOutput, len(tasks))
			for i, t := range tasks {
				out[i] = taskOutput(i, t)
			}
			return outputJSON(w, out)
		}

		if len(tasks) == 0 {
			fmt.Fprintln(w, "No tasks yet. Add one with 'taskmate add'.")
			return nil
		}
		for i, t := range tasks {
			printTaskLine(w, i, t)
		}
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add <description>",
	Short: "Add a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(!verbose)
		if err != nil {
			return err
		}
		defer a.Close()

		t, index, err := a.engine.Add(args[0], addPriority)
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), taskOutput(index, t))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added task %d: %s\n", index+1, t)
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:     "remove <number>",
	Aliases: []string{"rm"},
	Short:   "Remove the task at the given list number",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseNumber(args[0])
		if err != nil {
			return err
		}

		a, err := openApp(!verbose)
		if err != nil {
			return err
		}
		defer a.Close()

		t, err := a.engine.Remove(index)
		if err != nil {
			return err
		}
		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), taskOutput(index, t))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed task %d: %s\n", index+1, t)
		return nil
	},
}
