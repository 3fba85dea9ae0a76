package handlers

import (
	"fmt"
	"io"

	"github.com/imamik/nixdeploy/internal/config"
	"github.com/imamik/nixdeploy/internal/util/prerequisites"
)

var (
	// loadTools reads tool overrides from the environment (for testing injection).
	loadTools = config.LoadTools

	// checkPrereqs runs prerequisite checks.
	checkPrereqs = prerequisites.CheckDeploy
)

// Doctor reports which of the tools a deployment needs are installed. It
// fails if a required tool is missing.
func Doctor(w io.Writer) error {
	tools, err := loadTools()
	if err != nil {
		return err
	}

	results := checkPrereqs(tools)
	for _, result := range results.Results {
		tool := result.Tool
		switch {
		case result.Found && result.Version != "":
			fmt.Fprintf(w, "  ok       %-18s %s (%s)\n", tool.Name, result.Path, result.Version)
		case result.Found:
			fmt.Fprintf(w, "  ok       %-18s %s\n", tool.Name, result.Path)
		case tool.Required:
			fmt.Fprintf(w, "  missing  %-18s %s\n           install: %s\n", tool.Name, tool.Description, tool.InstallURL)
		default:
			fmt.Fprintf(w, "  absent   %-18s %s (optional)\n", tool.Name, tool.Description)
		}
	}

	return results.Error()
}
