package commands

import (
	"context"
	"fmt"
	"fuelscraper/internal/components/telemetry"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath *string
	verbose    *bool
	outputDir  *string
	dumpHttp   *string
)

var cfg Config

var rootCmd = &cobra.Command{
	Use:   "fuelscraper",
	Short: "fuelscraper scrapes gasbuddy fuel prices and sorts, graphs and prices fill ups from them.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		if cmd.Flags().Changed("verbose") {
			cfg.Verbose = *verbose
		}
		if *dumpHttp != "" {
			cfg.DumpHttp = *dumpHttp
		}
		telemetry.InitSlog(cfg.Verbose)
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "fuelscraper.json5", "The config file to read.")
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output.")
	outputDir = rootCmd.PersistentFlags().String("output-dir", ".", "The directory files are written to.")
	dumpHttp = rootCmd.PersistentFlags().String("dump-http", "", "Write every http exchange to files in this directory.")
}

func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	return err
}
