package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/LineVall/linevall-frameworks-libs-net/internal/rewrite"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite",
	Short: "Remap addresses and ports in a capture",
	Long: `Copy a pcap capture while applying a rules file that remaps IP
addresses and transport ports. Checksums covering rewritten fields are
recomputed, including the pseudo-header contribution; absent UDP
checksums stay absent.

The rules file is YAML:

  rules:
    - type: address_map
      config:
        map:
          "10.0.0.1": "192.168.1.1"
    - type: port_map
      config:
        map:
          5060: 15060

Examples:
  netsum rewrite -f capture.pcap -o anon.pcap -r rules.yml
  netsum rewrite -f capture.pcap -o anon.pcap -r rules.yml --fix`,
	Run: func(cmd *cobra.Command, args []string) {
		runRewriteCommand()
	},
}

var (
	rewriteInputFile  string
	rewriteOutputFile string
	rewriteRulesFile  string
	rewriteFix        bool
	rewriteMaxPackets int
)

func init() {
	rewriteCmd.Flags().StringVarP(&rewriteInputFile, "file", "f", "",
		"pcap capture file to rewrite (required)")
	rewriteCmd.Flags().StringVarP(&rewriteOutputFile, "out", "o", "",
		"output pcap file (required)")
	rewriteCmd.Flags().StringVarP(&rewriteRulesFile, "rules", "r", "",
		"YAML rules file (required)")
	rewriteCmd.Flags().BoolVar(&rewriteFix, "fix", false,
		"also repair checksums that were already bad")
	rewriteCmd.Flags().IntVar(&rewriteMaxPackets, "max", 0,
		"stop after this many packets (0 = all)")
	rewriteCmd.MarkFlagRequired("file")
	rewriteCmd.MarkFlagRequired("out")
	rewriteCmd.MarkFlagRequired("rules")
}

func runRewriteCommand() {
	cfg := loadConfig()

	rw, err := rewrite.LoadRules(rewriteRulesFile)
	if err != nil {
		exitWithError("failed to load rules", err)
	}

	result := runScan(cfg, scanOptions{
		inputFile:  rewriteInputFile,
		outputFile: rewriteOutputFile,
		rewriter:   rw,
		fix:        rewriteFix,
		maxPackets: rewriteMaxPackets,
	})

	os.Exit(exitCode(cfg, result, rewriteFix))
}
