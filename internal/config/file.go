package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/resourcehub/internal/flagx"
	"gopkg.in/yaml.v3"
)

// Duration accepts "15m"-style strings or integer nanoseconds in both
// JSON and YAML files.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	return d.set(v)
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	return d.set(v)
}

func (d *Duration) set(v any) error {
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
	case int:
		d.Duration = time.Duration(value)
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
	default:
		return fmt.Errorf("invalid duration %v", v)
	}
	return nil
}

// FileConfig mirrors Config for file decoding. Zero values leave the
// corresponding setting untouched.
type FileConfig struct {
	DatabaseDriver string   `json:"database_driver" yaml:"database_driver"`
	DatabaseDSN    string   `json:"database_dsn" yaml:"database_dsn"`
	S3RootUser     string   `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword string   `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket       string   `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region       string   `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint string   `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	S3PublicURL    string   `json:"s3_public_url" yaml:"s3_public_url"`
	RedisAddr      string   `json:"redis_addr" yaml:"redis_addr"`
	RedisPassword  string   `json:"redis_password" yaml:"redis_password"`
	RedisDB        int      `json:"redis_db" yaml:"redis_db"`
	SecretKey      string   `json:"secret_key" yaml:"secret_key"`
	AccessToken    string   `json:"access_token" yaml:"access_token"`
	PageSize       int      `json:"page_size" yaml:"page_size"`
	SessionTTL     Duration `json:"session_ttl" yaml:"session_ttl"`
	LogLevel       string   `json:"log_level" yaml:"log_level"`
	PrettyLog      *bool    `json:"pretty_log" yaml:"pretty_log"`
}

// parseFile overlays the file named by -c/-config onto config. The format
// is picked by extension: .yml/.yaml is YAML, anything else JSON.
func parseFile(config *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	c := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		err = yaml.Unmarshal(data, c)
	default:
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	c.apply(config)
	return nil
}

func (c *FileConfig) apply(config *Config) {
	setString(&config.DatabaseDriver, c.DatabaseDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.S3PublicURL, c.S3PublicURL)
	setString(&config.RedisAddr, c.RedisAddr)
	setString(&config.RedisPassword, c.RedisPassword)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.AccessToken, c.AccessToken)
	setString(&config.LogLevel, c.LogLevel)

	if c.RedisDB != 0 {
		config.RedisDB = c.RedisDB
	}
	if c.PageSize != 0 {
		config.PageSize = c.PageSize
	}
	if c.SessionTTL.Duration != 0 {
		config.SessionTTL = c.SessionTTL.Duration
	}
	if c.PrettyLog != nil {
		config.PrettyLog = *c.PrettyLog
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
