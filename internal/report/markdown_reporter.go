package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// MarkdownReporter writes the summary as a Markdown document with a results table.
type MarkdownReporter struct{}

func (r *MarkdownReporter) Report(w io.Writer, s *Summary) error {
	_, err := w.Write(renderMarkdown(s))
	return err
}

func renderMarkdown(s *Summary) []byte {
	var buf bytes.Buffer

	buf.WriteString("# Monty Hall simulation\n\n")
	fmt.Fprintf(&buf, "- Trials: %d\n", s.Iterations)
	fmt.Fprintf(&buf, "- Seed: %d\n", s.Seed)
	fmt.Fprintf(&buf, "- Workers: %d\n\n", s.Workers)

	fmt.Fprintf(&buf, "| Strategy | Wins | Losses | Rate | %s interval | Expected |\n", percent(s.Confidence))
	buf.WriteString("| --- | ---: | ---: | ---: | --- | ---: |\n")
	for _, result := range []StrategyResult{s.Stay, s.Switch} {
		fmt.Fprintf(&buf, "| %s | %d | %d | %s | %s – %s | %s |\n",
			result.Name, result.Wins, result.Losses, percent(result.Rate),
			percent(result.Lower), percent(result.Upper), percent(result.Expected))
	}
	buf.WriteString("\n")

	if s.SwitchDominates {
		buf.WriteString("**Switching beat staying.**\n")
	} else {
		buf.WriteString("**Switching did not beat staying in this run.**\n")
	}

	return buf.Bytes()
}

// HTMLReporter renders the Markdown report to a standalone HTML page.
type HTMLReporter struct{}

func (r *HTMLReporter) Report(w io.Writer, s *Summary) error {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var body bytes.Buffer
	if err := md.Convert(renderMarkdown(s), &body); err != nil {
		return fmt.Errorf("failed to render HTML report: %w", err)
	}

	_, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>Monty Hall simulation</title>\n</head>\n<body>\n%s</body>\n</html>\n", body.String())
	return err
}
