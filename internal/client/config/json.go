package config

import (
	"encoding/json"
	"os"

	"passkeeper/internal/flagx"
)

// jsonConfig is the DTO for the optional JSON config file.
type jsonConfig struct {
	VaultPath      string `json:"vault_path"`
	S3BaseEndpoint string `json:"s3_base_endpoint"`
	S3Region       string `json:"s3_region"`
	S3AccessKey    string `json:"s3_access_key"`
	S3SecretKey    string `json:"s3_secret_key"`
	S3Bucket       string `json:"s3_bucket"`
}

// parseJSON overlays values from the JSON file named by -c/-config, if any.
// A missing flag means no file is loaded; an unreadable or invalid file panics.
func parseJSON(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &jsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.VaultPath != "" {
		cfg.VaultPath = c.VaultPath
	}
	if c.S3BaseEndpoint != "" {
		cfg.S3BaseEndpoint = c.S3BaseEndpoint
	}
	if c.S3Region != "" {
		cfg.S3Region = c.S3Region
	}
	if c.S3AccessKey != "" {
		cfg.S3AccessKey = c.S3AccessKey
	}
	if c.S3SecretKey != "" {
		cfg.S3SecretKey = c.S3SecretKey
	}
	if c.S3Bucket != "" {
		cfg.S3Bucket = c.S3Bucket
	}
}
