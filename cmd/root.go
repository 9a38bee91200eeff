// Package cmd implements CLI commands using cobra framework.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LineVall/linevall-frameworks-libs-net/internal/config"
	"github.com/LineVall/linevall-frameworks-libs-net/internal/log"
)

var (
	// Global flags
	configFile   string
	outputFormat string
	noColor      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "netsum",
	Short: "netsum - Internet checksum verification for packet captures",
	Long: `netsum reads pcap capture files and verifies the RFC 1071 Internet
checksums of IPv4 headers and TCP, UDP, ICMP and ICMPv6 segments,
including the IPv4/IPv6 pseudo-header contribution.

Commands:
  verify    report checksum failures in a capture
  fix       rewrite bad checksum fields into a new capture
  rewrite   remap addresses and ports, recomputing affected checksums`,
	Version: "0.1.0",
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
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "",
		"output format: text, table, json or csv (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"disable colored output")

	// Add subcommands
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(rewriteCmd)
}

// loadConfig loads the global configuration and initializes logging.
func loadConfig() *config.GlobalConfig {
	cfg, err := config.Load(configFile)
	if err != nil {
		exitWithError("failed to load config", err)
	}
	if err := log.Init(cfg.Log); err != nil {
		exitWithError("failed to initialize logging", err)
	}
	return cfg
}

// exitWithError prints error message and exits with code 1
func exitWithError(msg string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	}
	os.Exit(1)
}
