package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rejot-dev/montyhall/internal/config"
	"github.com/rejot-dev/montyhall/internal/report"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := NewApp()
	app.Writer = &out
	err := run(app, append([]string{"montyhall"}, args...))
	return out.String(), err
}

func decodeSummary(t *testing.T, out string) report.Summary {
	t.Helper()
	var summary report.Summary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("failed to decode JSON report: %v\n%s", err, out)
	}
	return summary
}

func TestParseIterations(t *testing.T) {
	tests := []struct {
		arg      string
		fallback int
		want     int
	}{
		{arg: "100", fallback: 3000, want: 100},
		{arg: "1", fallback: 3000, want: 1},
		{arg: "abc", fallback: 3000, want: 3000},
		{arg: "", fallback: 3000, want: 3000},
		{arg: "0", fallback: 3000, want: 3000},
		{arg: "-5", fallback: 3000, want: 3000},
		{arg: "12x", fallback: 500, want: 500},
		{arg: "nope", fallback: 0, want: config.DefaultIterations},
	}

	for _, tt := range tests {
		if got := parseIterations(tt.arg, tt.fallback); got != tt.want {
			t.Errorf("parseIterations(%q, %d) = %d, want %d", tt.arg, tt.fallback, got, tt.want)
		}
	}
}

func TestApp_JSONReport(t *testing.T) {
	out, err := runApp(t, "--seed", "7", "--format", "json", "1000")
	if err != nil {
		t.Fatalf("app failed: %v", err)
	}

	summary := decodeSummary(t, out)
	if summary.Iterations != 1000 {
		t.Errorf("expected 1000 iterations, got %d", summary.Iterations)
	}
	if summary.Seed != 7 {
		t.Errorf("expected seed 7, got %d", summary.Seed)
	}
	if summary.Stay.Wins+summary.Switch.Wins != 1000 {
		t.Errorf("conservation violated: stay %d switch %d", summary.Stay.Wins, summary.Switch.Wins)
	}
	if !summary.SwitchDominates {
		t.Errorf("expected switch to dominate: %+v", summary)
	}
}

func TestApp_DefaultIterations(t *testing.T) {
	for _, args := range [][]string{
		{"--seed", "3", "--format", "json"},
		{"--seed", "3", "--format", "json", "not-a-number"},
		{"--seed", "3", "--format", "json", "--", "-20"},
		{"--seed", "3", "--format", "json", "-5"},
		{"--format=json", "-1"},
	} {
		out, err := runApp(t, args...)
		if err != nil {
			t.Fatalf("app %v failed: %v", args, err)
		}
		if summary := decodeSummary(t, out); summary.Iterations != config.DefaultIterations {
			t.Errorf("app %v: expected %d iterations, got %d", args, config.DefaultIterations, summary.Iterations)
		}
	}
}

func TestApp_TextReport(t *testing.T) {
	out, err := runApp(t, "--seed", "11", "500")
	if err != nil {
		t.Fatalf("app failed: %v", err)
	}
	for _, want := range []string{"N = 500\n", "Stay strategy won ", "Switch strategy won "} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestProtectNegativeCount(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "negative count after flags",
			args: []string{"montyhall", "--format", "json", "-5"},
			want: []string{"montyhall", "--format", "json", "--", "-5"},
		},
		{
			name: "negative count alone",
			args: []string{"montyhall", "-1"},
			want: []string{"montyhall", "--", "-1"},
		},
		{
			name: "negative flag value left alone",
			args: []string{"montyhall", "--workers", "-2", "10"},
			want: []string{"montyhall", "--workers", "-2", "10"},
		},
		{
			name: "after bool flag",
			args: []string{"montyhall", "--no-table", "-7"},
			want: []string{"montyhall", "--no-table", "--", "-7"},
		},
		{
			name: "already separated",
			args: []string{"montyhall", "--", "-3"},
			want: []string{"montyhall", "--", "-3"},
		},
		{
			name: "positive count",
			args: []string{"montyhall", "-s", "4", "100"},
			want: []string{"montyhall", "-s", "4", "100"},
		},
		{
			name: "subcommand",
			args: []string{"montyhall", "schema", "--report"},
			want: []string{"montyhall", "schema", "--report"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := protectNegativeCount(NewApp(), tt.args)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApp_NegativeWorkersFlagRejected(t *testing.T) {
	if _, err := runApp(t, "--workers", "-2", "10"); err == nil {
		t.Error("expected error for negative workers")
	}
}

func TestApp_NoTable(t *testing.T) {
	out, err := runApp(t, "--seed", "2", "--no-table", "200")
	if err != nil {
		t.Fatalf("app failed: %v", err)
	}
	if strings.Contains(out, "STRATEGY") {
		t.Errorf("expected no table, got:\n%s", out)
	}
	if !strings.HasPrefix(out, "N = 200\n") {
		t.Errorf("expected classic score lines, got:\n%s", out)
	}

	out, err = runApp(t, "--seed", "2", "200")
	if err != nil {
		t.Fatalf("app failed: %v", err)
	}
	if !strings.Contains(out, "STRATEGY") {
		t.Errorf("expected a table by default, got:\n%s", out)
	}
}

func TestApp_Reproducible(t *testing.T) {
	first, err := runApp(t, "--seed", "99", "--workers", "3", "--format", "json", "20000")
	if err != nil {
		t.Fatalf("app failed: %v", err)
	}
	second, err := runApp(t, "--seed", "99", "--workers", "3", "--format", "json", "20000")
	if err != nil {
		t.Fatalf("app failed: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("runs with the same seed differ (-first +second):\n%s", diff)
	}
}

func TestApp_TooManyArguments(t *testing.T) {
	_, err := runApp(t, "10", "20")
	if !errors.Is(err, ErrorTooManyArguments) {
		t.Errorf("expected ErrorTooManyArguments, got %v", err)
	}
}

func TestApp_InvalidFormat(t *testing.T) {
	if _, err := runApp(t, "--format", "pdf", "10"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestApp_OutputFile(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "report.md")

	out, err := runApp(t, "--seed", "5", "--format", "markdown", "--output", outputPath, "300")
	if err != nil {
		t.Fatalf("app failed: %v", err)
	}
	if out != "" {
		t.Errorf("expected nothing on stdout, got:\n%s", out)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}
	if !strings.Contains(string(data), "# Monty Hall simulation") || !strings.Contains(string(data), "- Trials: 300") {
		t.Errorf("unexpected report:\n%s", data)
	}
}

func TestApp_ConfigFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "montyhall.yaml")
	err := os.WriteFile(configPath, []byte("version: \"1.0\"\niterations: 750\nseed: 12\nformat: json\n"), 0644)
	if err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	out, err := runApp(t, "--config", configPath)
	if err != nil {
		t.Fatalf("app failed: %v", err)
	}
	summary := decodeSummary(t, out)
	if summary.Iterations != 750 || summary.Seed != 12 {
		t.Errorf("config file not applied: %+v", summary)
	}

	// positional argument wins over the file
	out, err = runApp(t, "--config", configPath, "40")
	if err != nil {
		t.Fatalf("app failed: %v", err)
	}
	if summary := decodeSummary(t, out); summary.Iterations != 40 {
		t.Errorf("expected 40 iterations, got %d", summary.Iterations)
	}

	// invalid positional argument falls back to the configured count
	out, err = runApp(t, "--config", configPath, "many")
	if err != nil {
		t.Fatalf("app failed: %v", err)
	}
	if summary := decodeSummary(t, out); summary.Iterations != 750 {
		t.Errorf("expected 750 iterations, got %d", summary.Iterations)
	}
}

func TestApp_MissingConfigFile(t *testing.T) {
	_, err := runApp(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("expected error for explicitly named missing config file")
	}
}

func TestApp_ShowConfig(t *testing.T) {
	out, err := runApp(t, "--seed", "8", "--workers", "2", "--show-config", "123")
	if err != nil {
		t.Fatalf("app failed: %v", err)
	}

	cfg, err := config.ParseFromBytes([]byte(out))
	if err != nil {
		t.Fatalf("show-config output does not parse: %v\n%s", err, out)
	}
	if cfg.Iterations != 123 || cfg.Seed != 8 || cfg.Workers != 2 {
		t.Errorf("unexpected effective config: %+v", cfg)
	}
}

func TestApp_Schema(t *testing.T) {
	out, err := runApp(t, "schema")
	if err != nil {
		t.Fatalf("schema failed: %v", err)
	}
	var schema map[string]any
	if err := json.Unmarshal([]byte(out), &schema); err != nil {
		t.Fatalf("schema is not JSON: %v", err)
	}
	properties, ok := schema["properties"].(map[string]any)
	if !ok {
		t.Fatalf("schema has no properties:\n%s", out)
	}
	for _, key := range []string{"version", "iterations", "seed", "workers", "format", "confidence"} {
		if _, ok := properties[key]; !ok {
			t.Errorf("config schema missing %q", key)
		}
	}

	out, err = runApp(t, "schema", "--report")
	if err != nil {
		t.Fatalf("schema --report failed: %v", err)
	}
	if !strings.Contains(out, `"switch_dominates"`) {
		t.Errorf("report schema missing switch_dominates:\n%s", out)
	}
}
