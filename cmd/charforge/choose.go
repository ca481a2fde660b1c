package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/charforge/charforge/internal/domain/shared"
)

var chooseCmd = &cobra.Command{
	Use:   "choose <id> [kind selections...]",
	Short: "Show or resolve the next pending choice",
	Long: "With only an id, shows the next pending choice and its options.\n" +
		"With a kind and selections, resolves that choice.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := buildService()
		if err != nil {
			return err
		}

		if len(args) == 1 {
			next, err := svc.NextChoice(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if next == nil {
				fmt.Println("No pending choices")
				return nil
			}
			fmt.Printf("Next: %s (pick %d)\n", next.Kind, next.Choose)
			if len(next.From) > 0 {
				fmt.Printf("Options: %s\n", strings.Join(next.From, ", "))
			}
			return nil
		}

		if len(args) < 3 {
			return fmt.Errorf("resolving needs a kind and at least one selection")
		}

		kind := shared.ChoiceKind(args[1])
		next, err := svc.ResolveChoice(cmd.Context(), args[0], kind, args[2:])
		if err != nil {
			return err
		}

		fmt.Printf("Resolved %s\n", kind)
		if next != nil {
			fmt.Printf("Next: %s (pick %d)\n", next.Kind, next.Choose)
		} else {
			fmt.Println("No pending choices")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chooseCmd)
}
