// Package main provides the command line front end of the gshare branch
// prediction simulator.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/gsharesim/predictor"
	"github.com/sarchlab/gsharesim/replay"
	"github.com/sarchlab/gsharesim/trace"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func usage(fs *flag.FlagSet, stderr io.Writer) {
	fmt.Fprintf(stderr, "Usage: gshare [options] <GBT bits count> <GHR bits count> <input file>\n")
	fmt.Fprintf(stderr, "       gshare [options] -config <config.json> <input file>\n")
	fmt.Fprintf(stderr, "\nOptions:\n")
	fs.SetOutput(stderr)
	fs.PrintDefaults()
}

// run executes the simulator and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("gshare", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	configPath := fs.String("config", "", "Path to predictor configuration JSON file")
	saveConfig := fs.String("save-config", "", "Write the effective configuration to this JSON file")
	freqGHz := fs.Float64("freq", 1, "Branch resolution rate of the replay clock in GHz")
	verbose := fs.Bool("v", false, "Verbose output")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(stderr, "Error parsing arguments: %v\n", err)
		usage(fs, stderr)
		return 1
	}

	config, tracePath, err := parseConfig(fs.Args(), *configPath)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		usage(fs, stderr)
		return 1
	}

	if err := config.Validate(); err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}

	if *freqGHz <= 0 {
		fmt.Fprintf(stderr, "freq must be > 0\n")
		return 1
	}

	if *saveConfig != "" {
		if err := config.SaveConfig(*saveConfig); err != nil {
			fmt.Fprintf(stderr, "Error saving config: %v\n", err)
			return 1
		}
	}

	file, err := trace.Open(tracePath)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	defer file.Close()

	gshare, err := predictor.NewGshare(config)
	if err != nil {
		fmt.Fprintf(stderr, "Error creating predictor: %v\n", err)
		return 1
	}

	if *verbose {
		fmt.Fprintf(stdout, "Trace: %s (compressed: %t)\n", tracePath, file.Compressed())
	}

	reader := trace.NewReader(file, trace.WithDiagnostics(stderr))
	replayer := replay.NewReplayer(gshare, reader,
		replay.WithFrequency(sim.Freq(*freqGHz)*sim.GHz))

	result, err := replayer.Run()
	if err != nil {
		fmt.Fprintf(stderr, "Error replaying trace: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "GBT bits count: %d\tGHR bits count: %d\tmisprediction ratio: %s\n",
		config.IndexBits, config.HistoryBits, formatRatio(result.MissPredictionRatio))

	if *verbose {
		fmt.Fprintf(stdout, "\n")
		fmt.Fprintf(stdout, "Branches:       %d\n", result.Stats.Predictions)
		fmt.Fprintf(stdout, "Mispredictions: %d\n", result.Stats.Mispredictions)
		fmt.Fprintf(stdout, "Accuracy:       %.2f%%\n", result.Stats.Accuracy())
		fmt.Fprintf(stdout, "Skipped lines:  %d\n", result.Skipped)
		fmt.Fprintf(stdout, "Simulated time: %.3e s\n", float64(result.SimulatedTime))
	}

	return 0
}

// parseConfig builds the predictor config from either a config file or the
// two positional widths, and returns the trace path.
func parseConfig(args []string, configPath string) (*predictor.Config, string, error) {
	if configPath != "" {
		if len(args) != 1 {
			return nil, "", fmt.Errorf("expected exactly one input file with -config")
		}

		config, err := predictor.LoadConfig(configPath)
		if err != nil {
			return nil, "", err
		}

		return config, args[0], nil
	}

	if len(args) < 3 {
		return nil, "", fmt.Errorf("missing arguments")
	}

	indexBits, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return nil, "", fmt.Errorf("invalid GBT bits count '%s': %w", args[0], err)
	}

	historyBits, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil {
		return nil, "", fmt.Errorf("invalid GHR bits count '%s': %w", args[1], err)
	}

	config := &predictor.Config{
		IndexBits:   uint(indexBits),
		HistoryBits: uint(historyBits),
	}

	return config, args[2], nil
}

// formatRatio prints the ratio with 2 significant digits.
func formatRatio(ratio float64) string {
	return strconv.FormatFloat(ratio, 'g', 2, 64)
}
