// Command volei prints standings and the schedule of a tournament document
// and validates documents before they are imported.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"volei-app/internal/logging"
	"volei-app/internal/model"
	"volei-app/internal/source"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	logger   *zap.Logger
	dataFile string
	dataURL  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:           "volei",
	Short:         "Standings and schedule of a volleyball tournament",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(logLevel, "dev")
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dataFile, "file", "f", "dados.json", "tournament document to read")
	rootCmd.PersistentFlags().StringVar(&dataURL, "url", "", "fetch the tournament document from this URL instead of --file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(standingsCmd, datesCmd, scheduleCmd, checkCmd, hashPasswordCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadTournament(ctx context.Context) (model.Tournament, error) {
	if dataURL != "" {
		ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		return source.Fetch(ctx, &http.Client{}, dataURL)
	}
	return source.LoadFile(dataFile)
}
