package handlers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/nixdeploy/internal/config"
	"github.com/imamik/nixdeploy/internal/deploy"
)

var (
	summaryColorGreen = lipgloss.Color("#22c55e")
	summaryColorRed   = lipgloss.Color("#ef4444")
	summaryColorDim   = lipgloss.Color("#6b7280")
)

var (
	summaryOKStyle   = lipgloss.NewStyle().Bold(true).Foreground(summaryColorGreen)
	summaryFailStyle = lipgloss.NewStyle().Bold(true).Foreground(summaryColorRed)
	summaryDimStyle  = lipgloss.NewStyle().Foreground(summaryColorDim)
)

// printSummary writes the outcome of a deployment. Styling is only applied
// when styled is true. The error itself is left to the caller to report.
func printSummary(w io.Writer, cfg *config.Config, state *deploy.State, err error, elapsed time.Duration, styled bool) {
	fmt.Fprint(w, renderSummary(cfg, state, err, elapsed, styled))
}

func renderSummary(cfg *config.Config, state *deploy.State, err error, elapsed time.Duration, styled bool) string {
	render := func(style lipgloss.Style, s string) string {
		if !styled {
			return s
		}
		return style.Render(s)
	}

	var b strings.Builder
	b.WriteString("\n")

	switch {
	case err == nil:
		b.WriteString(render(summaryOKStyle, fmt.Sprintf("  Deployed to %s (%s)", cfg.TargetHost, cfg.Action)))
	case interrupted(err):
		b.WriteString(render(summaryFailStyle, fmt.Sprintf("  Deployment to %s interrupted", cfg.TargetHost)))
	default:
		b.WriteString(render(summaryFailStyle, fmt.Sprintf("  Deployment to %s failed", cfg.TargetHost)))
	}
	b.WriteString("\n")

	strategy := "local build"
	if cfg.BuildOnTarget {
		strategy = "remote build"
	}
	b.WriteString(render(summaryDimStyle, "  "+strings.Repeat("─", 35)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "    Derivation:  %s\n", cfg.DrvPath)
	fmt.Fprintf(&b, "    Strategy:    %s\n", strategy)
	if state != nil && state.OutPath != "" {
		fmt.Fprintf(&b, "    Output:      %s\n", state.OutPath)
	}
	if cfg.CollectGarbage {
		fmt.Fprintf(&b, "    GC:          delete %s\n", strings.Join(cfg.RetentionTokens(), " "))
	}
	fmt.Fprintf(&b, "    Elapsed:     %v\n", elapsed.Round(time.Second))
	return b.String()
}
