// Package config assembles runtime settings from defaults, an optional
// JSON or YAML file and command-line flags, in that order.
package config

import (
	"time"

	"github.com/dmitrijs2005/resourcehub/internal/common"
)

// Config holds runtime settings for the resourcehub client.
//
// DatabaseDriver selects the catalog backend ("postgres" or "sqlite").
// An empty RedisAddr keeps bookmarks and document handoffs in memory.
// S3PublicURL is the prefix under which uploaded objects are readable; when
// empty it is derived from S3BaseEndpoint and S3Bucket.
type Config struct {
	DatabaseDriver string
	DatabaseDSN    string
	S3RootUser     string
	S3RootPassword string
	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3PublicURL    string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	SecretKey      string
	AccessToken    string
	PageSize       int
	SessionTTL     time.Duration
	LogLevel       string
	PrettyLog      bool
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret key and S3 credentials are not suitable for production.
func (c *Config) LoadDefaults() {
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "file:resourcehub.db?_pragma=busy_timeout(5000)"
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "resources"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.SecretKey = "secretKey"
	c.PageSize = common.DefaultPageSize
	c.SessionTTL = 30 * time.Minute
	c.LogLevel = "info"
}

// Load builds a Config from defaults, then the file named by -c/-config in
// args, then the remaining flags in args (usually os.Args[1:]).
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}

	if cfg.PageSize <= 0 {
		cfg.PageSize = common.DefaultPageSize
	}

	return cfg, nil
}
