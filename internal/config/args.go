package config

import (
	"fmt"
	"strconv"
	"strings"
)

// PositionalCount is the number of fixed positional arguments.
const PositionalCount = 9

// Positions of the fixed arguments.
const (
	argDrvPath = iota
	argOutPath
	argTargetHost
	argTargetPort
	argBuildOnTarget
	argPrivateKey
	argAction
	argRetention
	argCollectGarbage
)

var positionalNames = [PositionalCount]string{
	"drvPath",
	"outPath",
	"targetHost",
	"targetPort",
	"buildOnTarget",
	"sshPrivateKey",
	"action",
	"retention",
	"gc",
}

// mandatory lists the positions that must be present and non-empty.
var mandatory = []int{argDrvPath, argTargetHost, argTargetPort, argBuildOnTarget, argAction}

// ParseArgs builds a Config from the deploy command's argument list:
//
//	drvPath outPath targetHost targetPort buildOnTarget sshPrivateKey action retention gc [build-option...] sentinel
//
// When more than nine arguments are given the last one is a sentinel and is
// discarded; everything between the ninth argument and the sentinel is a
// build option, kept verbatim and in order. Tool settings are read from the
// environment.
func ParseArgs(args []string) (*Config, error) {
	arg := func(i int) string {
		if i < len(args) {
			return args[i]
		}
		return ""
	}

	for _, i := range mandatory {
		if strings.TrimSpace(arg(i)) == "" {
			return nil, fmt.Errorf("%w: $%d (%s)", ErrMissingArgument, i+1, positionalNames[i])
		}
	}

	port, err := parsePort(arg(argTargetPort))
	if err != nil {
		return nil, err
	}

	buildOnTarget, err := parseFlag(argBuildOnTarget, arg(argBuildOnTarget))
	if err != nil {
		return nil, err
	}

	collectGarbage := false
	if raw := arg(argCollectGarbage); raw != "" {
		collectGarbage, err = parseFlag(argCollectGarbage, raw)
		if err != nil {
			return nil, err
		}
	}

	var extra []string
	if len(args) > PositionalCount {
		extra = args[PositionalCount : len(args)-1]
	}

	tools, err := LoadTools()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DrvPath:        arg(argDrvPath),
		OutPath:        arg(argOutPath),
		TargetHost:     arg(argTargetHost),
		TargetPort:     port,
		BuildOnTarget:  buildOnTarget,
		PrivateKey:     arg(argPrivateKey),
		Action:         arg(argAction),
		Retention:      arg(argRetention),
		CollectGarbage: collectGarbage,
		BuildOptions:   append(DefaultBuildOptions(), extra...),
		Tools:          tools,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func parsePort(raw string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: $%d (%s) must be a number, got %q", ErrInvalidArgument, argTargetPort+1, positionalNames[argTargetPort], raw)
	}
	return port, nil
}

func parseFlag(pos int, raw string) (bool, error) {
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, fmt.Errorf("%w: $%d (%s) must be true or false, got %q", ErrInvalidArgument, pos+1, positionalNames[pos], raw)
	}
	return v, nil
}
