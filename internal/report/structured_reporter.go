package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

type YAMLReporter struct{}

func (r *YAMLReporter) Report(w io.Writer, s *Summary) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal summary to YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

type JSONReporter struct{}

func (r *JSONReporter) Report(w io.Writer, s *Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to marshal summary to JSON: %w", err)
	}
	return nil
}
