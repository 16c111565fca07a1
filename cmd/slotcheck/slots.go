package main

import (
	"fmt"
	"text/tabwriter"

	"schoolhealth/services/appointment"

	"github.com/spf13/cobra"
)

func newSlotsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "slots <date>",
		Short: "List the offered slots of a day with their status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.load()
			if err != nil {
				return err
			}
			statuses, err := e.validator.SlotsForDate(args[0], appointment.DefaultSlots, e.now)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, st := range statuses {
				if st.Result.Valid() {
					fmt.Fprintf(tw, "%s\tavailable\t\n", st.Slot)
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", st.Slot, st.Result.Violation, e.catalog.Render(st.Result))
			}
			return tw.Flush()
		},
	}
}
