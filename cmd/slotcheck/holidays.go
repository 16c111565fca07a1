package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHolidaysCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "holidays",
		Short: "Print the active holiday table",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.load()
			if err != nil {
				return err
			}
			for _, h := range e.validator.Holidays {
				fmt.Fprintf(cmd.OutOrStdout(), "%02d-%02d\t%s\n", int(h.Month), h.Day, h.Name)
			}
			return nil
		},
	}
}
