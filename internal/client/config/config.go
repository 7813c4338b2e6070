// Package config handles configuration for the PassKeeper CLI, including
// defaults, JSON overlay, and command-line flags.
package config

// Config holds runtime settings for the PassKeeper CLI.
//
// Fields:
//   - VaultPath: path to the encrypted vault file.
//   - S3BaseEndpoint, S3Region, S3AccessKey, S3SecretKey, S3Bucket: settings
//     for the optional remote vault backup (MinIO or any S3-compatible store).
type Config struct {
	VaultPath      string
	S3BaseEndpoint string
	S3Region       string
	S3AccessKey    string
	S3SecretKey    string
	S3Bucket       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.VaultPath = "vault.json"
	c.S3BaseEndpoint = "http://127.0.0.1:9000"
	c.S3Region = "us-east-1"
	c.S3Bucket = "passkeeper-backups"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
