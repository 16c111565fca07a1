package main

import (
	"errors"
	"fmt"
	"time"

	"schoolhealth/services/appointment"

	"github.com/spf13/cobra"
)

func newValidateCmd(opts *options) *cobra.Command {
	var date, slot string

	c := &cobra.Command{
		Use:   "validate [dateTime]",
		Short: "Validate a date-time, or a --date and --slot pair",
		Example: `  slotcheck validate 2024-06-11T09:00:00+07:00
  slotcheck validate --date 2024-06-11 --slot 09:00`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.load()
			if err != nil {
				return err
			}

			var (
				r  appointment.Result
				at time.Time
			)
			switch {
			case len(args) == 1 && (date != "" || slot != ""):
				return errors.New("pass either a dateTime argument or --date with --slot")
			case len(args) == 1:
				r, at, err = e.validator.ValidateISO(args[0], e.now)
			case date != "" && slot != "":
				r, at, err = e.validator.ValidateSlot(date, appointment.Slot(slot), appointment.DefaultSlots, e.now)
			default:
				return errors.New("a dateTime argument or --date with --slot is required")
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if r.Valid() {
				fmt.Fprintf(out, "%s\tvalid\n", at.Format(time.RFC3339))
				return nil
			}
			fmt.Fprintf(out, "%s\t%s\t%s\n", at.Format(time.RFC3339), r.Violation, e.catalog.Render(r))
			return errRejected
		},
	}
	c.Flags().StringVar(&date, "date", "", "day in YYYY-MM-DD form")
	c.Flags().StringVar(&slot, "slot", "", "offered slot in HH:MM form")
	return c
}
