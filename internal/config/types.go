package config

import "time"

// GeneratorConfig holds the main configuration for the policy generator
type GeneratorConfig struct {
	Server          ServerConfig `yaml:"server"`
	AWS             AWSConfig    `yaml:"aws"`
	Output          OutputConfig `yaml:"output"`
	CredentialsFile string       `yaml:"credentialsFile"`
	Audit           AuditConfig  `yaml:"audit"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `yaml:"port" validate:"gte=0,lte=65535"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	MaxBodyBytes    int64         `yaml:"maxBodyBytes" validate:"gte=0"`
}

// AWSConfig holds AWS connection settings used when publishing to S3
type AWSConfig struct {
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"accessKeyId"`
	SecretAccessKey string `yaml:"secretAccessKey"`
	UsePathStyle    bool   `yaml:"usePathStyle"`
}

// OutputConfig controls how generated documents are rendered and where
// they are written
type OutputConfig struct {
	Format      string `yaml:"format" validate:"omitempty,oneof=json yaml"`
	Indent      int    `yaml:"indent" validate:"gte=0,lte=8"`
	Destination string `yaml:"destination" validate:"omitempty,oneof=stdout file s3"`
	FilePath    string `yaml:"filePath"`
	Bucket      string `yaml:"bucket"`
	Key         string `yaml:"key"`
}

// AuditConfig holds audit logging settings
type AuditConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Output   string `yaml:"output"` // stdout, file, or both
	FilePath string `yaml:"filePath"`
	Format   string `yaml:"format"` // json
}

// CredentialsConfig holds the API keys accepted by the HTTP server
type CredentialsConfig struct {
	Keys []APIKey `yaml:"keys"`
}

// APIKey is a bearer token and the client it identifies
type APIKey struct {
	Token       string `yaml:"token"`
	ClientID    string `yaml:"clientId"`
	Description string `yaml:"description"`
}

// SelectionFile is the caller's choice of resources and actions
type SelectionFile struct {
	Resources []ResourceSelection `yaml:"resources" json:"resources" validate:"dive" jsonschema:"description=Selected resources in selection order"`
}

// ResourceSelection selects one catalog resource and some of its actions
type ResourceSelection struct {
	ID         string   `yaml:"id" json:"id" validate:"required" jsonschema:"description=Catalog resource id such as s3 or dynamodb"`
	Identifier string   `yaml:"identifier,omitempty" json:"identifier,omitempty" jsonschema:"description=ARN that scopes the statement; omit for a wildcard scope"`
	Actions    []string `yaml:"actions,omitempty" json:"actions,omitempty" validate:"dive,required" jsonschema:"description=Catalog action ids"`
	Categories []string `yaml:"categories,omitempty" json:"categories,omitempty" validate:"dive,oneof=read write admin" jsonschema:"description=Select every action of these categories"`
}
