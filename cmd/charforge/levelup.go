package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var levelTo int

var levelupCmd = &cobra.Command{
	Use:   "levelup <id>",
	Short: "Raise (or set) a character's level",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := buildService()
		if err != nil {
			return err
		}

		target := levelTo
		if target == 0 {
			ch, err := svc.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			target = ch.Level + 1
		}

		ch, err := svc.SetLevel(cmd.Context(), args[0], target)
		if err != nil {
			return err
		}

		fmt.Printf("%s is now level %d\n", ch.Name, ch.Level)
		for _, pc := range ch.PendingChoices {
			fmt.Printf("  pending: %s (pick %d)\n", pc.Kind, pc.Choose)
		}
		return nil
	},
}

func init() {
	levelupCmd.Flags().IntVar(&levelTo, "to", 0, "target level (default: current + 1)")
	rootCmd.AddCommand(levelupCmd)
}
