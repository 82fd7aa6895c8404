package report

import (
	"fmt"
	"io"
)

// Reporter defines the interface for writing a simulation summary
type Reporter interface {
	Report(w io.Writer, s *Summary) error
}

type Format string

const (
	FormatText     Format = "text"
	FormatYAML     Format = "yaml"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatGitHub   Format = "github"
)

func ToFormat(format string) (Format, error) {
	switch format {
	case "text":
		return FormatText, nil
	case "yaml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	case "github":
		return FormatGitHub, nil
	default:
		return "", fmt.Errorf("invalid format: %s", format)
	}
}

func GetAllFormats() []Format {
	return []Format{FormatText, FormatYAML, FormatJSON, FormatMarkdown, FormatHTML, FormatGitHub}
}

// NewReporter returns the reporter for the given format. textOptions only
// applies to FormatText and may be nil.
func NewReporter(format Format, textOptions *TextReporterOptions) (Reporter, error) {
	switch format {
	case FormatText:
		return NewTextReporter(textOptions), nil
	case FormatYAML:
		return &YAMLReporter{}, nil
	case FormatJSON:
		return &JSONReporter{}, nil
	case FormatMarkdown:
		return &MarkdownReporter{}, nil
	case FormatHTML:
		return &HTMLReporter{}, nil
	case FormatGitHub:
		return &GitHubReporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
