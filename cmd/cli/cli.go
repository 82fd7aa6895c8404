package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/rejot-dev/montyhall/internal/config"
	"github.com/rejot-dev/montyhall/internal/montyhall"
	"github.com/rejot-dev/montyhall/internal/random"
	"github.com/rejot-dev/montyhall/internal/report"
	"github.com/urfave/cli/v2"
)

const version = "0.1.0"

var ErrorTooManyArguments = errors.New("too many arguments")

var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "path to configuration file",
		Value:   config.DefaultPath,
	}
	seedFlag = &cli.Uint64Flag{
		Name:    "seed",
		Aliases: []string{"s"},
		Usage:   "generator seed, 0 picks a fresh random seed",
	}
	workersFlag = &cli.IntFlag{
		Name:    "workers",
		Aliases: []string{"w"},
		Usage:   "number of goroutines sharing the trials",
	}
	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "report format (text, yaml, json, markdown, html, github)",
	}
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "write the report to `FILE` instead of standard output",
	}
	confidenceFlag = &cli.Float64Flag{
		Name:  "confidence",
		Usage: "confidence level of the reported intervals",
	}
	showConfigFlag = &cli.BoolFlag{
		Name:  "show-config",
		Usage: "print the effective configuration and exit",
	}
	noTableFlag = &cli.BoolFlag{
		Name:  "no-table",
		Usage: "print only the score lines in the text report",
	}
	// -v is taken by --version
	verboseFlag = &cli.BoolFlag{
		Name:  "verbose",
		Usage: "produce debug output",
	}
)

// NewApp builds the montyhall command line application.
func NewApp() *cli.App {
	return &cli.App{
		Name:      "montyhall",
		Usage:     "simulate the Monty Hall game and compare the stay and switch strategies",
		Version:   version,
		ArgsUsage: "[ITERATIONS]",
		Description: "Plays ITERATIONS rounds of the three-door game (default 3000) and reports how often\n" +
			"keeping the first pick and switching to the other unopened door won.",
		Flags: []cli.Flag{
			configFlag,
			seedFlag,
			workersFlag,
			formatFlag,
			outputFlag,
			confidenceFlag,
			noTableFlag,
			showConfigFlag,
			verboseFlag,
		},
		Action: simulateAction,
		Commands: []*cli.Command{
			&InitCommand,
			&SchemaCommand,
		},
	}
}

func Execute() error {
	return run(NewApp(), os.Args)
}

func run(app *cli.App, args []string) error {
	return app.Run(protectNegativeCount(app, args))
}

// protectNegativeCount inserts "--" before a negative ITERATIONS argument so
// the flag parser hands it to the fallback instead of rejecting it as an
// unknown flag.
func protectNegativeCount(app *cli.App, args []string) []string {
	valueFlags := make(map[string]bool)
	for _, flag := range app.Flags {
		if _, isBool := flag.(*cli.BoolFlag); isBool {
			continue
		}
		for _, name := range flag.Names() {
			valueFlags[name] = true
		}
	}

	for i := 1; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return args
		}
		if n, err := strconv.Atoi(arg); err == nil && n < 0 {
			out := make([]string, 0, len(args)+1)
			out = append(out, args[:i]...)
			out = append(out, "--")
			return append(out, args[i:]...)
		}
		if !strings.HasPrefix(arg, "-") {
			// first positional argument or subcommand
			return args
		}
		name := strings.TrimLeft(arg, "-")
		if !strings.Contains(name, "=") && valueFlags[name] {
			i++
		}
	}
	return args
}

// simulateAction runs the simulation and writes the report.
func simulateAction(c *cli.Context) error {
	if c.Bool(verboseFlag.Name) {
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	if c.Bool(showConfigFlag.Name) {
		return cfg.PrintAsYAML(c.App.Writer)
	}

	seed, err := random.Resolve(cfg.Seed)
	if err != nil {
		return err
	}
	log.Debug("Running simulation", "iterations", cfg.Iterations, "workers", cfg.Workers, "seed", seed)

	board, err := montyhall.RunParallel(c.Context, cfg.Iterations, cfg.Workers, seed, log.Default())
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	summary, err := report.NewSummary(board, cfg.Iterations, seed, cfg.Workers, cfg.Confidence)
	if err != nil {
		return err
	}

	format, err := report.ToFormat(cfg.Format)
	if err != nil {
		return err
	}
	reporter, err := report.NewReporter(format, &report.TextReporterOptions{
		HideTable: c.Bool(noTableFlag.Name),
	})
	if err != nil {
		return err
	}

	return writeReport(cfg.Output, c.App.Writer, func(w io.Writer) error {
		return reporter.Report(w, summary)
	})
}

// loadConfig merges the config file, MONTYHALL_* variables, flags and the
// positional iteration count, in increasing order of precedence.
func loadConfig(c *cli.Context) (*config.Config, error) {
	path := c.String(configFlag.Name)

	var cfg *config.Config
	if _, statErr := os.Stat(path); c.IsSet(configFlag.Name) || statErr == nil {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		log.Debug("Loaded configuration", "path", path)
		cfg = loaded
	} else {
		cfg = config.Default()
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if c.IsSet(seedFlag.Name) {
		cfg.Seed = c.Uint64(seedFlag.Name)
	}
	if c.IsSet(workersFlag.Name) {
		cfg.Workers = c.Int(workersFlag.Name)
	}
	if c.IsSet(formatFlag.Name) {
		cfg.Format = c.String(formatFlag.Name)
	}
	if c.IsSet(outputFlag.Name) {
		cfg.Output = c.String(outputFlag.Name)
	}
	if c.IsSet(confidenceFlag.Name) {
		cfg.Confidence = c.Float64(confidenceFlag.Name)
	}

	switch c.NArg() {
	case 0:
	case 1:
		cfg.Iterations = parseIterations(c.Args().First(), cfg.Iterations)
	default:
		return nil, fmt.Errorf("%w: expected at most one ITERATIONS argument, got %d", ErrorTooManyArguments, c.NArg())
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// parseIterations returns the iteration count in arg, or fallback when arg is
// not a positive integer.
func parseIterations(arg string, fallback int) int {
	if fallback <= 0 {
		fallback = config.DefaultIterations
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n <= 0 {
		log.Warn("Invalid iteration count, using default", "arg", arg, "iterations", fallback)
		return fallback
	}
	return n
}

// writeReport sends the report to path, or to stdout when path is empty.
func writeReport(path string, stdout io.Writer, write func(io.Writer) error) error {
	if path == "" {
		return write(stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	log.Info("Report written", "path", path)
	return nil
}
