package report

import (
	"fmt"
	"io"
	"strings"
)

// GitHubReporter implements Reporter for GitHub Actions annotations
type GitHubReporter struct{}

// Report outputs a notice with the scores, and a warning when switching
// failed to beat staying.
func (r *GitHubReporter) Report(w io.Writer, s *Summary) error {
	message := fmt.Sprintf("N = %d\nStay strategy won %d times (%s)\nSwitch strategy won %d times (%s)",
		s.Iterations, s.Stay.Wins, percent(s.Stay.Rate), s.Switch.Wins, percent(s.Switch.Rate))
	if _, err := fmt.Fprintf(w, "::notice title=Monty Hall simulation::%s\n", r.escapeForGitHubActions(message)); err != nil {
		return err
	}

	if !s.SwitchDominates {
		warning := fmt.Sprintf("Switching did not beat staying with seed %d", s.Seed)
		if _, err := fmt.Fprintf(w, "::warning title=Monty Hall simulation::%s\n", r.escapeForGitHubActions(warning)); err != nil {
			return err
		}
	}
	return nil
}

// escapeForGitHubActions escapes special characters for GitHub Actions annotations
func (r *GitHubReporter) escapeForGitHubActions(message string) string {
	message = strings.ReplaceAll(message, "%", "%25")
	message = strings.ReplaceAll(message, "\n", "%0A")
	message = strings.ReplaceAll(message, "\r", "%0D")
	return message
}
