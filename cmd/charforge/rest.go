package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var restLong bool

var restCmd = &cobra.Command{
	Use:   "rest <id>",
	Short: "Take a short or long rest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := buildService()
		if err != nil {
			return err
		}

		if restLong {
			ch, err := svc.LongRest(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s took a long rest (HP %d/%d)\n", ch.Name, ch.HP, ch.MaxHP)
			return nil
		}

		ch, err := svc.ShortRest(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s took a short rest\n", ch.Name)
		return nil
	},
}

func init() {
	restCmd.Flags().BoolVar(&restLong, "long", false, "take a long rest")
	rootCmd.AddCommand(restCmd)
}
