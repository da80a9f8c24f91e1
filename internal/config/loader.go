package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// envVarRegex matches ${VAR_NAME} patterns
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

var validate = validator.New()

// LoadGeneratorConfig loads the generator configuration from a YAML file
func LoadGeneratorConfig(path string) (*GeneratorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Substitute environment variables
	data = substituteEnvVars(data)

	var cfg GeneratorConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateGeneratorConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// DefaultGeneratorConfig returns the configuration used when no file is given
func DefaultGeneratorConfig() *GeneratorConfig {
	var cfg GeneratorConfig
	applyDefaults(&cfg)
	return &cfg
}

// LoadCredentials loads server API keys from a YAML file
func LoadCredentials(path string) (*CredentialsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	data = substituteEnvVars(data)

	var cfg CredentialsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}

	if err := validateCredentials(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadSelection loads a resource/action selection from a YAML or JSON file
func LoadSelection(path string) (*SelectionFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read selection file: %w", err)
	}
	return ParseSelection(data)
}

// ParseSelection parses and validates a YAML or JSON selection document
func ParseSelection(data []byte) (*SelectionFile, error) {
	var sel SelectionFile

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&sel); err != nil {
			return nil, fmt.Errorf("failed to parse selection: %w", err)
		}
	} else if err := yaml.Unmarshal(trimmed, &sel); err != nil {
		return nil, fmt.Errorf("failed to parse selection: %w", err)
	}

	if err := ValidateSelection(&sel); err != nil {
		return nil, err
	}

	return &sel, nil
}

// ValidateSelection checks struct constraints and rejects repeated resources
func ValidateSelection(sel *SelectionFile) error {
	if err := validate.Struct(sel); err != nil {
		return fmt.Errorf("selection validation failed: %w", err)
	}

	seen := make(map[string]bool)
	for i, r := range sel.Resources {
		if seen[r.ID] {
			return fmt.Errorf("resources[%d]: duplicate resource id %q", i, r.ID)
		}
		seen[r.ID] = true
	}
	return nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values
func substituteEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		varName := string(envVarRegex.FindSubmatch(match)[1])
		if value := os.Getenv(varName); value != "" {
			return []byte(value)
		}
		return match // Keep original if env var not set
	})
}

func applyDefaults(cfg *GeneratorConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 30 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 60 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = 1 << 20
	}
	if cfg.AWS.Region == "" {
		cfg.AWS.Region = "us-east-1"
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "json"
	}
	if cfg.Output.Indent == 0 {
		cfg.Output.Indent = 2
	}
	if cfg.Output.Destination == "" {
		cfg.Output.Destination = "stdout"
	}
	if cfg.Audit.Format == "" {
		cfg.Audit.Format = "json"
	}
	if cfg.Audit.Output == "" {
		cfg.Audit.Output = "stdout"
	}
}

func validateGeneratorConfig(cfg *GeneratorConfig) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	switch cfg.Output.Destination {
	case "file":
		if cfg.Output.FilePath == "" {
			return fmt.Errorf("output.filePath is required for file destination")
		}
	case "s3":
		if cfg.Output.Bucket == "" {
			return fmt.Errorf("output.bucket is required for s3 destination")
		}
		if cfg.Output.Key == "" {
			return fmt.Errorf("output.key is required for s3 destination")
		}
	}
	if cfg.Audit.Enabled && cfg.Audit.Output != "stdout" && cfg.Audit.FilePath == "" {
		return fmt.Errorf("audit.filePath is required for %s output", cfg.Audit.Output)
	}
	return nil
}

func validateCredentials(cfg *CredentialsConfig) error {
	seen := make(map[string]bool)
	for i, key := range cfg.Keys {
		if key.Token == "" {
			return fmt.Errorf("keys[%d]: token is required", i)
		}
		if key.ClientID == "" {
			return fmt.Errorf("keys[%d]: clientId is required", i)
		}
		if seen[key.Token] {
			return fmt.Errorf("keys[%d]: duplicate token for client %q", i, key.ClientID)
		}
		seen[key.Token] = true
	}
	return nil
}
