package config

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidActions contains the actions switch-to-configuration accepts.
var ValidActions = map[string]bool{
	"switch":       true, // Activate now and make it the boot default
	"boot":         true, // Make it the boot default only
	"test":         true, // Activate now without changing the boot default
	"dry-activate": true, // Show what activation would change
}

// retentionToken matches one argument nix-env --delete-generations accepts:
// a generation number, a keep-last count (+5), an age in days (14d), or "old".
var retentionToken = regexp.MustCompile(`^(\d+|\+\d+|\d+d|old)$`)

// Validate checks the configuration for errors and returns a detailed error
// if validation fails.
func (c *Config) Validate() error {
	if c.DrvPath == "" {
		return fmt.Errorf("%w: drvPath", ErrMissingArgument)
	}
	if strings.HasPrefix(c.DrvPath, "-") {
		return fmt.Errorf("%w: drvPath %q must not start with '-'", ErrInvalidArgument, c.DrvPath)
	}

	if c.TargetHost == "" {
		return fmt.Errorf("%w: targetHost", ErrMissingArgument)
	}
	// ssh would read a leading '-' as an option.
	if strings.HasPrefix(c.TargetHost, "-") {
		return fmt.Errorf("%w: targetHost %q must not start with '-'", ErrInvalidArgument, c.TargetHost)
	}
	if strings.ContainsAny(c.TargetHost, " \t\n") {
		return fmt.Errorf("%w: targetHost %q must not contain whitespace", ErrInvalidArgument, c.TargetHost)
	}

	if c.TargetPort < 1 || c.TargetPort > 65535 {
		return fmt.Errorf("%w: targetPort %d out of range 1-65535", ErrInvalidArgument, c.TargetPort)
	}

	if c.Action == "" {
		return fmt.Errorf("%w: action", ErrMissingArgument)
	}
	if !ValidActions[c.Action] {
		return fmt.Errorf("%w: action %q (valid: switch, boot, test, dry-activate)", ErrInvalidArgument, c.Action)
	}

	if err := c.validateRetention(); err != nil {
		return err
	}

	return c.validateTools()
}

// validateRetention only applies when the tokens will be used.
func (c *Config) validateRetention() error {
	if !c.CollectGarbage {
		return nil
	}
	tokens := c.RetentionTokens()
	if len(tokens) == 0 {
		return fmt.Errorf("%w: retention is required when garbage collection is enabled", ErrMissingArgument)
	}
	for _, tok := range tokens {
		if !retentionToken.MatchString(tok) {
			return fmt.Errorf("%w: retention token %q (expected a generation number, +N, Nd, or old)", ErrInvalidArgument, tok)
		}
	}
	return nil
}

func (c *Config) validateTools() error {
	required := map[string]string{
		"ssh binary":              c.Tools.SSH,
		"nix-store binary":        c.Tools.NixStore,
		"nix-copy-closure binary": c.Tools.NixCopyClosure,
		"profile":                 c.Tools.Profile,
		"remote helper":           c.Tools.RemoteHelper,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%w: %s is not configured", ErrMissingArgument, name)
		}
	}
	return nil
}
