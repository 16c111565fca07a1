package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"schoolhealth/config"
	"schoolhealth/services/appointment"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

// errRejected makes the process exit non-zero when a candidate fails validation.
var errRejected = errors.New("appointment time rejected")

type options struct {
	now    string
	locale string
}

// env bundles what every subcommand needs.
type env struct {
	validator *appointment.Validator
	catalog   appointment.Catalog
	now       time.Time
}

func (o *options) load() (*env, error) {
	cfg, err := config.Load(viper.New())
	if err != nil {
		return nil, err
	}
	v, err := appointment.NewValidatorFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	now := time.Now().In(v.Rules.Location)
	if o.now != "" {
		if now, err = appointment.ParseCandidate(o.now, v.Rules.Location); err != nil {
			return nil, fmt.Errorf("--now: %w", err)
		}
	}

	locale := o.locale
	if locale == "" {
		locale = cfg.ScheduleLocale
	}
	return &env{validator: v, catalog: appointment.Messages(locale).ForRules(v.Rules), now: now}, nil
}

func NewRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "slotcheck",
		Short:         "Check school nurse appointment times against the booking window",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.now, "now", "", "reference time (RFC3339 or YYYY-MM-DDTHH:MM); defaults to the current time")
	root.PersistentFlags().StringVar(&opts.locale, "locale", "", "message locale (vi or en); defaults to SCHEDULE_LOCALE")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newValidateCmd(opts))
	root.AddCommand(newSlotsCmd(opts))
	root.AddCommand(newHolidaysCmd(opts))

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		if !errors.Is(err, errRejected) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
