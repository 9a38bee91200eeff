package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify checksums in a pcap capture",
	Long: `Verify the IPv4 header and transport checksums of every packet in a
pcap capture and report the failures.

The exit code is 1 when any bad checksum is found, so the command can
gate capture files in scripts and CI.

Examples:
  netsum verify -f capture.pcap
  netsum verify -f capture.pcap --format json
  netsum verify -f capture.pcap --max 1000`,
	Run: func(cmd *cobra.Command, args []string) {
		runVerifyCommand()
	},
}

var (
	verifyInputFile  string
	verifyMaxPackets int
)

func init() {
	verifyCmd.Flags().StringVarP(&verifyInputFile, "file", "f", "",
		"pcap capture file to verify (required)")
	verifyCmd.Flags().IntVar(&verifyMaxPackets, "max", 0,
		"stop after this many packets (0 = all)")
	verifyCmd.MarkFlagRequired("file")
}

func runVerifyCommand() {
	cfg := loadConfig()

	result := runScan(cfg, scanOptions{
		inputFile:  verifyInputFile,
		maxPackets: verifyMaxPackets,
	})

	os.Exit(exitCode(cfg, result, false))
}
