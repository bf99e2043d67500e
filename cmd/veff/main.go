// Package main provides the veff command-line tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	_ "github.com/inodb/veff/internal/mmsplice"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "veff",
		Short: "Score genomic variants against splicing effect models",
		Long: `veff scores variants from a VCF file against pretrained splicing
effect models and merges the resulting per-model tables on variant identity.`,
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cfgFile)
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ~/.veff.yaml)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	viper.BindPFlag("verbose", cmd.PersistentFlags().Lookup("verbose"))

	cmd.AddCommand(newScoreCmd())
	cmd.AddCommand(newMergeCmd())
	cmd.AddCommand(newModelsCmd())
	cmd.AddCommand(newDownloadCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// initConfig reads the config file (~/.veff.yaml by default) and
// environment variables prefixed with VEFF_.
func initConfig(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigName(".veff")
			viper.SetConfigType("yaml")
		}
	}

	viper.SetDefault("assembly", "GRCh38")
	viper.SetEnvPrefix("VEFF")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Only an explicitly requested config file is required to exist.
		if cfgFile != "" {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// newLogger builds the CLI logger: development output when verbose,
// silent otherwise (library defaults stay no-op).
func newLogger() *zap.Logger {
	if viper.GetBool("verbose") {
		l, err := zap.NewDevelopment()
		if err == nil {
			return l
		}
	}
	return zap.NewNop()
}
