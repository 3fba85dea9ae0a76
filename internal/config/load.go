package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFilename is the deployment file looked up when none is given.
const DefaultConfigFilename = "nixdeploy.yaml"

// deploymentFile is the on-disk form of a Config. Pointer fields distinguish
// an omitted value from its zero value.
type deploymentFile struct {
	DrvPath        string   `yaml:"drvPath"`
	OutPath        string   `yaml:"outPath"`
	TargetHost     string   `yaml:"targetHost"`
	TargetPort     *int     `yaml:"targetPort"`
	BuildOnTarget  *bool    `yaml:"buildOnTarget"`
	PrivateKey     string   `yaml:"privateKey"`
	PrivateKeyFile string   `yaml:"privateKeyFile"`
	Action         string   `yaml:"action"`
	Retention      string   `yaml:"retention"`
	CollectGarbage bool     `yaml:"collectGarbage"`
	BuildOptions   []string `yaml:"buildOptions"`
}

// LoadFile reads and validates a deployment from a YAML file.
func LoadFile(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := LoadFromBytes(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromBytes parses and validates a deployment document. A relative
// privateKeyFile is resolved against baseDir.
func LoadFromBytes(data []byte, baseDir string) (*Config, error) {
	var file deploymentFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if file.BuildOnTarget == nil {
		return nil, fmt.Errorf("%w: buildOnTarget", ErrMissingArgument)
	}

	port := DefaultSSHPort
	if file.TargetPort != nil {
		port = *file.TargetPort
	}

	key, err := file.privateKey(baseDir)
	if err != nil {
		return nil, err
	}

	tools, err := LoadTools()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DrvPath:        file.DrvPath,
		OutPath:        file.OutPath,
		TargetHost:     file.TargetHost,
		TargetPort:     port,
		BuildOnTarget:  *file.BuildOnTarget,
		PrivateKey:     key,
		Action:         file.Action,
		Retention:      file.Retention,
		CollectGarbage: file.CollectGarbage,
		BuildOptions:   append(DefaultBuildOptions(), file.BuildOptions...),
		Tools:          tools,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (f *deploymentFile) privateKey(baseDir string) (string, error) {
	if f.PrivateKeyFile == "" {
		return f.PrivateKey, nil
	}
	if strings.TrimSpace(f.PrivateKey) != "" {
		return "", fmt.Errorf("%w: privateKey and privateKeyFile are mutually exclusive", ErrInvalidArgument)
	}

	path := f.PrivateKeyFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read private key file: %w", err)
	}
	return string(data), nil
}

// FindConfigFile returns the default deployment file in the current
// directory, or an error if there is none.
func FindConfigFile() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	path := filepath.Join(cwd, DefaultConfigFilename)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("config file %s not found", DefaultConfigFilename)
	}
	return path, nil
}
