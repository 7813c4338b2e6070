package config

import (
	"flag"
	"os"

	"passkeeper/internal/flagx"
)

// parseFlags populates selected CLI Config fields from command-line flags:
//
//	-f string   path to the vault file
//	-e string   S3 base endpoint for vault backups
//	-r string   S3 region
//	-b string   S3 bucket
//
// Arguments are filtered to this set first so flags owned by other components
// in the same binary do not collide. S3 credentials are intentionally not
// flags; set them in the JSON config file instead.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-f", "-e", "-r", "-b"})

	fs := flag.NewFlagSet("cli", flag.ContinueOnError)

	fs.StringVar(&cfg.VaultPath, "f", cfg.VaultPath, "path to the vault file")
	fs.StringVar(&cfg.S3BaseEndpoint, "e", cfg.S3BaseEndpoint, "S3 base endpoint for backups")
	fs.StringVar(&cfg.S3Region, "r", cfg.S3Region, "S3 region")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket for backups")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
