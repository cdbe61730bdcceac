package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/bnema/coffeetable/internal/adapters/render/tables"
	"github.com/bnema/coffeetable/internal/application"
	"github.com/bnema/coffeetable/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newSeatCmd(app *app, cfg *viper.Viper) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "seat",
		Short: "Distribute the roster over tables and record the round",
		Long:  "Seat shuffles the roster, seats each person where they know the fewest table mates and appends the arrangement to the history unless --dry-run or --test is set.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := app.service.Seat(cmd.Context(), application.SeatCommand{
				MaxPerTable: app.cfg.MaxPerTable,
				Weighting:   app.weighting,
				DryRun:      app.cfg.DryRun,
				Retry:       app.cfg.Retry,
			})
			if err != nil {
				return err
			}

			return writeSeatOutput(cmd, app, result, asJSON)
		},
	}

	flags := cmd.Flags()
	flags.Float64("max", config.DefaultMaxPerTable, "maximum number of people per table")
	flags.Bool("dry-run", false, "print the distribution without storing it")
	flags.Bool("retry", false, "replace the latest stored round instead of adding one")
	flags.Uint64("seed", 0, "seed the shuffle for a reproducible distribution")
	flags.BoolVar(&asJSON, "json", false, "print the result as JSON")

	bindFlags(cfg, flags, map[string]string{
		config.KeyMaxPerTable: "max",
		config.KeyDryRun:      "dry-run",
		config.KeyRetry:       "retry",
		config.KeySeed:        "seed",
	})

	return cmd
}

func writeSeatOutput(cmd *cobra.Command, app *app, result application.SeatResult, asJSON bool) error {
	notice := ""
	if !result.Saved {
		notice = fmt.Sprintf("Dry-run mode; not storing distribution in %s.", app.historyPath)
	}

	if asJSON {
		if notice != "" {
			if _, err := fmt.Fprintln(cmd.ErrOrStderr(), notice); err != nil {
				return err
			}
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	rendered, err := app.renderArrangement(result.Arrangement, tables.RenderOptions{
		Participants: result.Participants,
		RepeatCost:   result.RepeatCost,
		Notice:       notice,
	})
	if err != nil {
		return fmt.Errorf("render arrangement: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
