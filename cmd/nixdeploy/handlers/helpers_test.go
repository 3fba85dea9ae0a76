package handlers

import (
	"testing"
)

// saveAndRestoreFactories saves all factory variables and restores them after the test.
func saveAndRestoreFactories(t *testing.T) {
	t.Helper()

	origParseArgs := parseArgs
	origLoadConfigFile := loadConfigFile
	origFindConfigFile := findConfigFile
	origNewRunner := newRunner
	origRunDeployment := runDeployment
	origLogOutput := logOutput
	origIsTerminal := isTerminal
	origLoadTools := loadTools
	origCheckPrereqs := checkPrereqs

	t.Cleanup(func() {
		parseArgs = origParseArgs
		loadConfigFile = origLoadConfigFile
		findConfigFile = origFindConfigFile
		newRunner = origNewRunner
		runDeployment = origRunDeployment
		logOutput = origLogOutput
		isTerminal = origIsTerminal
		loadTools = origLoadTools
		checkPrereqs = origCheckPrereqs
	})
}
