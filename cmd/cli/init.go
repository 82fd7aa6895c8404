package cli

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/rejot-dev/montyhall/internal/color"
	"github.com/rejot-dev/montyhall/internal/config"
	"github.com/rejot-dev/montyhall/internal/report"
	"github.com/urfave/cli/v2"
)

var configTemplate = `# Monty Hall simulator configuration file
# Values can be overridden with MONTYHALL_* environment variables and flags.

version: "{{ .Version }}"

# Number of trials; a positional ITERATIONS argument takes precedence
iterations: {{ .Iterations }}

# Generator seed, 0 picks a fresh random seed on every run
seed: {{ .Seed }}

# Goroutines sharing the trials
workers: {{ .Workers }}

# Report format: {{ .Formats }}
format: "{{ .Format }}"
{{- if ne .Output "" }}

# Report file, standard output when omitted
output: "{{ .Output }}"
{{- end }}

# Confidence level of the reported win rate intervals
confidence: {{ .Confidence }}
`

type ConfigData struct {
	Version    string
	Iterations int
	Seed       uint64
	Workers    int
	Format     string
	Formats    string
	Output     string
	Confidence float64
}

// InitCommand interactively writes a configuration file.
var InitCommand = cli.Command{
	Name:   "init",
	Usage:  "create a montyhall.yaml configuration file",
	Action: initAction,
}

func initAction(c *cli.Context) error {
	return runInit(bufio.NewReader(c.App.Reader), c.App.Writer)
}

func runInit(reader *bufio.Reader, out io.Writer) error {
	renderer := lipgloss.NewRenderer(out)

	titleStyle := renderer.NewStyle().
		Bold(true).
		Foreground(color.White).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(color.Blue).
		Padding(0, 2).
		MarginBottom(1)

	subtitleStyle := renderer.NewStyle().
		Foreground(color.White).
		MarginBottom(1)

	fmt.Fprintln(out, titleStyle.Render("🚪 Monty Hall Configuration Setup"))
	fmt.Fprintln(out, subtitleStyle.Render("Will setup your montyhall.yaml configuration file."))

	// 1. Ask for config filename
	configFile := promptForInput(reader, out, renderer, "Config filename", config.DefaultPath)

	// Check if file already exists
	if _, err := os.Stat(configFile); err == nil {
		warningStyle := renderer.NewStyle().
			Foreground(color.Orange).
			Bold(true)

		fmt.Fprintf(out, "%s File '%s' already exists. Overwrite? (y/N): ",
			warningStyle.Render("⚠️"), configFile)
		response, _ := reader.ReadString('\n')
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			return fmt.Errorf("not overwriting existing config file: %s", configFile)
		}
	}

	defaults := config.Default()
	data := ConfigData{
		Version:    defaults.Version,
		Confidence: defaults.Confidence,
	}

	// 2. Ask for run parameters
	var err error
	data.Iterations, err = strconv.Atoi(promptForInput(reader, out, renderer, "Iterations", strconv.Itoa(defaults.Iterations)))
	if err != nil || data.Iterations <= 0 {
		return fmt.Errorf("iterations must be a positive integer")
	}

	data.Seed, err = strconv.ParseUint(promptForInput(reader, out, renderer, "Seed (0 for random)", "0"), 10, 64)
	if err != nil {
		return fmt.Errorf("seed must be a non-negative integer: %w", err)
	}

	data.Workers, err = strconv.Atoi(promptForInput(reader, out, renderer, "Workers", strconv.Itoa(defaults.Workers)))
	if err != nil || data.Workers <= 0 {
		return fmt.Errorf("workers must be a positive integer")
	}

	// 3. Ask for the report format and destination
	formatStrings := []string{}
	for _, format := range report.GetAllFormats() {
		formatStrings = append(formatStrings, string(format))
	}
	data.Formats = strings.Join(formatStrings, ", ")

	format, err := report.ToFormat(promptForInput(reader, out, renderer, "Report format ["+data.Formats+"]", defaults.Format))
	if err != nil {
		return err
	}
	data.Format = string(format)

	data.Output = promptForInput(reader, out, renderer, "Report file (empty for standard output)", "")

	// Generate the configuration
	generated, err := generateConfig(data)
	if err != nil {
		return fmt.Errorf("failed to generate config: %w", err)
	}

	// Write the configuration file
	err = os.WriteFile(configFile, []byte(generated), 0644)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	successStyle := renderer.NewStyle().
		Foreground(color.Green).
		Bold(true).
		MarginTop(1)

	nextStepsStyle := renderer.NewStyle().
		Foreground(color.Blue).
		Bold(true).
		MarginTop(1)

	stepStyle := renderer.NewStyle().
		Foreground(color.White).
		MarginLeft(3)

	codeStyle := renderer.NewStyle().
		Foreground(color.Yellow).
		Background(color.Black).
		Padding(0, 1)

	fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Configuration file '%s' created successfully!", configFile)))
	fmt.Fprintln(out, nextStepsStyle.Render("🎯 Next steps:"))
	if configFile == config.DefaultPath {
		fmt.Fprintln(out, stepStyle.Render(fmt.Sprintf("1. Run: %s", codeStyle.Render("montyhall"))))
	} else {
		fmt.Fprintln(out, stepStyle.Render(fmt.Sprintf("1. Run: %s", codeStyle.Render("montyhall --config "+configFile))))
	}
	fmt.Fprintln(out, stepStyle.Render(fmt.Sprintf("2. Check the effective settings: %s", codeStyle.Render("montyhall --show-config"))))

	return nil
}

func promptForInput(reader *bufio.Reader, out io.Writer, renderer *lipgloss.Renderer, prompt, defaultValue string) string {
	promptStyle := renderer.NewStyle().
		Foreground(color.Cyan).
		Bold(true)

	defaultStyle := renderer.NewStyle().
		Foreground(color.White).
		Italic(true)

	if defaultValue != "" {
		fmt.Fprintf(out, "%s %s: ",
			promptStyle.Render(prompt),
			defaultStyle.Render("(default: "+defaultValue+")"))
	} else {
		fmt.Fprintf(out, "%s: ", promptStyle.Render(prompt))
	}

	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)

	if input == "" && defaultValue != "" {
		return defaultValue
	}
	return input
}

func generateConfig(data ConfigData) (string, error) {
	tmpl, err := template.New("config").Parse(configTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, data)
	if err != nil {
		return "", err
	}

	// Refuse to write a file the loader would reject
	cfg, err := config.ParseFromBytes(buf.Bytes())
	if err != nil {
		return "", err
	}
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	return buf.String(), nil
}
