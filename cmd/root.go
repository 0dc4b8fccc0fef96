package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/surge-downloader/magnet/internal/config"
	"github.com/surge-downloader/magnet/internal/utils"
)

// Version information - set via ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// globalSettings is loaded once per invocation by initializeGlobalState
var globalSettings = config.DefaultSettings()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "magnet",
	Short: "Decode, encode and check magnet URIs",
	Long: `magnet parses magnet URIs into their parts and builds them back.

It understands hex and legacy base32 info hashes, v2 (btmh) hashes, BEP 46 public keys,
BEP 53 select-only ranges and repeated parameters.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeGlobalState(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if err := utils.CloseDebug(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: closing debug log: %v\n", err)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("format", "f", "", "Output format: pretty, json or uri (default from settings)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().Bool("debug", false, "Write a debug log to the logs directory")
	rootCmd.SetVersionTemplate("magnet version {{.Version}}\n")
}

// initializeGlobalState loads settings and applies command line overrides
func initializeGlobalState(cmd *cobra.Command) error {
	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v, using defaults\n", err)
		settings = config.DefaultSettings()
	}

	if format, _ := cmd.Flags().GetString("format"); format != "" {
		settings.Output.Format = format
	}
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor || os.Getenv("NO_COLOR") != "" {
		settings.Output.Color = false
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		settings.General.Debug = true
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	if settings.General.Debug {
		if err := config.EnsureDirs(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
		}
		utils.ConfigureDebug(config.GetLogsDir())
		utils.Debug("magnet %s (built %s): %s %v", Version, BuildTime, cmd.Name(), cmd.Flags().Args())
	} else {
		utils.ConfigureDebug("")
	}

	globalSettings = settings
	return nil
}
