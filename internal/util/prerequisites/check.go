// Package prerequisites checks that the local tools a deployment shells out
// to are installed.
package prerequisites

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/imamik/nixdeploy/internal/config"
)

// Tool represents a client tool that may be required.
type Tool struct {
	// Name is the binary name or path to look for.
	Name string

	// Required indicates if this tool is mandatory.
	Required bool

	// Description explains what the tool is used for.
	Description string

	// InstallURL provides a URL for installation instructions.
	InstallURL string

	// VersionArgs prints the tool's version. Empty means no version probe.
	VersionArgs []string
}

const nixInstallURL = "https://nixos.org/download/"

// DeployTools returns the tools a deployment runs locally, honouring the
// binary overrides in tools.
func DeployTools(tools config.Tools) []Tool {
	return []Tool{
		{
			Name:        tools.SSH,
			Required:    true,
			Description: "Connects to the target and multiplexes every remote command",
			InstallURL:  "https://www.openssh.com/portable.html",
			VersionArgs: []string{"-V"},
		},
		{
			Name:        tools.NixStore,
			Required:    true,
			Description: "Realizes derivations and exports store closures",
			InstallURL:  nixInstallURL,
			VersionArgs: []string{"--version"},
		},
		{
			Name:        tools.NixCopyClosure,
			Required:    true,
			Description: "Copies locally built closures to the target",
			InstallURL:  nixInstallURL,
			VersionArgs: []string{"--version"},
		},
	}
}

// OptionalTools returns tools that are useful but not required.
func OptionalTools() []Tool {
	return []Tool{
		{
			Name:        "nix-instantiate",
			Required:    false,
			Description: "Evaluates a configuration into the derivation path to deploy",
			InstallURL:  nixInstallURL,
			VersionArgs: []string{"--version"},
		},
	}
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool    Tool
	Found   bool
	Path    string
	Version string
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors returns true if any required tools are missing.
func (r *CheckResults) HasErrors() bool {
	for _, tool := range r.Missing {
		if tool.Required {
			return true
		}
	}
	return false
}

// Error returns an error if any required tools are missing.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if tool.Required {
			missing = append(missing, fmt.Sprintf("%s (%s)", tool.Name, tool.InstallURL))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// Check verifies that the specified tools are available.
func Check(tools []Tool) *CheckResults {
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := exec.LookPath(tool.Name)
		if err == nil {
			result.Found = true
			result.Path = path
			// Try to get version (best effort)
			result.Version = getToolVersion(path, tool.VersionArgs)
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}

// CheckDeploy checks the tools a deployment needs plus the optional ones.
func CheckDeploy(tools config.Tools) *CheckResults {
	required := DeployTools(tools)
	optional := OptionalTools()
	all := make([]Tool, 0, len(required)+len(optional))
	all = append(all, required...)
	all = append(all, optional...)
	return Check(all)
}

// getToolVersion returns the first line the version probe prints, or an
// empty string if it cannot be determined.
func getToolVersion(path string, args []string) string {
	if len(args) == 0 {
		return ""
	}

	// #nosec G204 - path was resolved from a Tool definition, not user input
	cmd := exec.Command(path, args...)
	// ssh -V prints to stderr.
	output, err := cmd.CombinedOutput()
	if err != nil {
		return ""
	}
	lines := strings.Split(string(output), "\n")
	return strings.TrimSpace(lines[0])
}
