// Package cmd implements CLI commands using cobra framework.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"firestige.xyz/strix/internal/config"
	"firestige.xyz/strix/internal/log"
)

var (
	// Global flags
	configFile   string
	outputFormat string

	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "strix",
	Short: "Strix - pcapng capture file inspector",
	Long: `Strix reads pcapng capture files and prints what is inside them.

It walks the file block by block (section headers, interface descriptions,
enhanced packets), decoding each block's option list, and reports the result
as text or YAML.

Commands:
  info        show the section header (hardware, OS, writing application)
  interfaces  list capture interfaces with their link types and options
  packets     summarize captured packets, optionally through a BPF filter`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return err
		}
		if err := log.Init(cfg.Log); err != nil {
			return err
		}
		if outputFormat == "" {
			outputFormat = cfg.Output.Format
		}
		if outputFormat != "text" && outputFormat != "yaml" {
			return fmt.Errorf("unsupported output format: %s (must be text or yaml)", outputFormat)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "",
		"config file path")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "",
		"output format (text|yaml)")

	// Add subcommands
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(interfacesCmd)
	rootCmd.AddCommand(packetsCmd)
}
