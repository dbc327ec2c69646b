package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/segyhp/loan-penalty/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "penaltycalc",
	Short: "Late payment penalty calculator",
	Long: `Computes late payment penalties for a loan and prints the receipt views.

Penalties start at midnight of the day after the due date and accrue a flat
amount for every complete block of time (5 hours by default) until payment.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		cfg = c

		if err := config.InitLogger(cfg); err != nil {
			return eris.Wrap(err, "init logger")
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
