package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var fixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Rewrite bad checksums into a new capture",
	Long: `Copy a pcap capture, recomputing every bad IPv4 header or transport
checksum on the way. Packets with valid checksums, non-IP packets and
packets that cannot be verified are copied unchanged.

Examples:
  netsum fix -f broken.pcap -o fixed.pcap`,
	Run: func(cmd *cobra.Command, args []string) {
		runFixCommand()
	},
}

var (
	fixInputFile  string
	fixOutputFile string
	fixMaxPackets int
)

func init() {
	fixCmd.Flags().StringVarP(&fixInputFile, "file", "f", "",
		"pcap capture file to fix (required)")
	fixCmd.Flags().StringVarP(&fixOutputFile, "out", "o", "",
		"output pcap file (required)")
	fixCmd.Flags().IntVar(&fixMaxPackets, "max", 0,
		"stop after this many packets (0 = all)")
	fixCmd.MarkFlagRequired("file")
	fixCmd.MarkFlagRequired("out")
}

func runFixCommand() {
	cfg := loadConfig()

	result := runScan(cfg, scanOptions{
		inputFile:  fixInputFile,
		outputFile: fixOutputFile,
		fix:        true,
		maxPackets: fixMaxPackets,
	})

	os.Exit(exitCode(cfg, result, true))
}
