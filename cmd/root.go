package cmd

import (
	"fmt"

	"github.com/bnema/coffeetable/internal/config"
	"github.com/bnema/coffeetable/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const skipWireAnnotation = "coffeetable/skip-wire"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	cfg := viper.New()
	state := &app{}

	rootCmd := &cobra.Command{
		Use:           "coffeetable",
		Short:         "Seat participants at small tables while avoiding repeat pairings",
		Long:          "coffeetable spreads a roster over tables of bounded size, weighting recent pairings from the seating history so people meet someone new each round.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[skipWireAnnotation] != "" {
				return nil
			}

			loaded, err := config.Load(cfg)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			return state.wire(loaded, newLogger(cmd, loaded.Verbose))
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			state.close()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "path to a coffeetable.toml config file")
	flags.BoolP("verbose", "v", false, "enable debug logging on stderr")
	flags.String("history", config.DefaultHistoryPath, "history file storing the most recent rounds")
	flags.String("participants", config.DefaultParticipantsPath, "roster file (.txt, .toml, .yaml)")
	flags.Bool("test", false, "use the fixtures under test/ and never store the result")
	flags.String("weighting", domain.WeightingHarmonic, "recency weighting: harmonic or exponential")
	flags.String("backend", config.BackendJSON, "history backend: json or sqlite")

	bindFlags(cfg, flags, map[string]string{
		config.KeyConfigFile:       "config",
		config.KeyVerbose:          "verbose",
		config.KeyHistoryPath:      "history",
		config.KeyParticipantsPath: "participants",
		config.KeyTestMode:         "test",
		config.KeyWeighting:        "weighting",
		config.KeyHistoryBackend:   "backend",
	})

	rootCmd.AddCommand(
		newVersionCmd(),
		newSeatCmd(state, cfg),
		newHistoryCmd(state),
		newPairsCmd(state),
	)

	return rootCmd
}

func bindFlags(cfg *viper.Viper, flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		// Lookup only fails on a typo in the table above.
		if err := cfg.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind flag %q: %v", name, err))
		}
	}
}

// newLogger writes console-encoded entries to the command's stderr so they
// never mix with rendered output.
func newLogger(cmd *cobra.Command, verbose bool) *zap.Logger {
	level := zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(zapcore.AddSync(cmd.ErrOrStderr())),
		level,
	)

	return zap.New(core)
}
