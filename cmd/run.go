package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/LineVall/linevall-frameworks-libs-net/internal/config"
	"github.com/LineVall/linevall-frameworks-libs-net/internal/log"
	"github.com/LineVall/linevall-frameworks-libs-net/internal/metrics"
	"github.com/LineVall/linevall-frameworks-libs-net/internal/pcapio"
	"github.com/LineVall/linevall-frameworks-libs-net/internal/report"
	"github.com/LineVall/linevall-frameworks-libs-net/internal/rewrite"
	"github.com/LineVall/linevall-frameworks-libs-net/internal/scan"
)

// scanOptions collects the per-command knobs for one engine run.
type scanOptions struct {
	inputFile  string
	outputFile string
	rewriter   *rewrite.Rewriter
	fix        bool
	maxPackets int
}

// runScan drives a full scan run and writes the report. It returns the
// run result so the command can derive its exit code.
func runScan(cfg *config.GlobalConfig, opts scanOptions) *scan.Result {
	logger := log.GetLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reader, err := pcapio.OpenFile(opts.inputFile)
	if err != nil {
		exitWithError("failed to open capture", err)
	}
	defer reader.Close()

	var sink scan.Sink
	var writer *pcapio.Writer
	if opts.outputFile != "" {
		writer, err = pcapio.CreateFile(opts.outputFile, reader.Snaplen(), reader.LinkType())
		if err != nil {
			exitWithError("failed to create output capture", err)
		}
		sink = writer
	}

	if cfg.Metrics.Enabled {
		srv := metrics.NewServer(cfg.Metrics.Listen, cfg.Metrics.Path)
		if err := srv.Start(ctx); err != nil {
			exitWithError("failed to start metrics server", err)
		}
		defer srv.Stop(context.Background())
	}

	maxPackets := cfg.Scan.MaxPackets
	if opts.maxPackets > 0 {
		maxPackets = opts.maxPackets
	}

	engine := scan.New(scan.Config{
		Source:          reader,
		Output:          sink,
		Rewriter:        opts.rewriter,
		Fix:             opts.fix,
		ChannelCapacity: cfg.Scan.ChannelCapacity,
		MaxPackets:      maxPackets,
	})

	result, err := engine.Run(ctx)
	if err != nil {
		if writer != nil {
			writer.Close()
		}
		exitWithError("scan failed", err)
	}

	if writer != nil {
		if err := writer.Close(); err != nil {
			exitWithError("failed to finalize output capture", err)
		}
	}

	logger.WithFields(map[string]any{
		"packets": result.Summary.Packets,
		"bad":     result.Summary.Bad,
		"fixed":   result.Summary.Fixed,
	}).Info("scan finished")

	writeReport(cfg, opts.inputFile, result)
	return result
}

// writeReport renders the run result to stdout in the configured format.
func writeReport(cfg *config.GlobalConfig, file string, result *scan.Result) {
	name := cfg.Output.Format
	if outputFormat != "" {
		name = outputFormat
	}
	format, err := report.ParseFormat(name)
	if err != nil {
		exitWithError("invalid output format", err)
	}

	rc := report.DefaultConfig()
	rc.Colors = cfg.Output.Color && !noColor

	w := report.NewWriter(format, rc)
	if err := w.Write(&report.RunReport{
		File:    file,
		Summary: result.Summary,
		Packets: result.Findings,
	}); err != nil {
		exitWithError("failed to write report", err)
	}
}

// exitCode maps a run result to the process exit code: 1 when bad
// checksums remain, and in strict mode also when packets could not be
// verified at all.
func exitCode(cfg *config.GlobalConfig, result *scan.Result, fixed bool) int {
	if result.Summary.Bad > 0 && !fixed {
		return 1
	}
	if cfg.Scan.StrictExit && (result.Summary.Errors > 0 || result.Summary.Skipped > 0) {
		return 1
	}
	return 0
}
