package main

import (
	"fmt"
	"os"
	"time"

	"github.com/drakos74/free-spline/internal/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	debug      bool
	storageDir string
)

var rootCmd = &cobra.Command{
	Use:   "spline",
	Short: "Constrained B-spline surface fitting",
	Long: `spline fits bicubic B-spline surfaces to sampled wing patches, either by interpolation
or by a constrained least squares fit that keeps the leading and trailing edges of the
upper and lower surfaces together. Fitted surfaces are stored and can be evaluated,
intersected with rays or served over http.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		if debug {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
		storage.DefaultDir = storageDir
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&storageDir, "storage", storage.DefaultDir, "Directory of the stored surfaces and reports")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
