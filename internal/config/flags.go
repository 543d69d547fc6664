package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/resourcehub/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-D string   database driver (postgres|sqlite)
//	-d string   database DSN
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-P string   public URL prefix for stored objects
//	-r string   Redis address; empty keeps state in memory
//	-w string   Redis password
//	-n int      Redis database number
//	-s string   JWT HMAC secret key
//	-t string   access token to sign in with at startup
//	-z int      catalog page size
//	-T int      document handoff lifetime, minutes
//	-l string   log level (debug|info|warn|error)
//	-x bool     human-readable console logs
//
// Duration flags are accepted as integers in minutes.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{
		"-D", "-d", "-u", "-p", "-b", "-g", "-e", "-P",
		"-r", "-w", "-n", "-s", "-t", "-z", "-T", "-l", "-x",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.DatabaseDriver, "D", config.DatabaseDriver, "database driver")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint, empty stores uploads locally")
	fs.StringVar(&config.S3PublicURL, "P", config.S3PublicURL, "public URL prefix for stored objects")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")
	fs.StringVar(&config.RedisPassword, "w", config.RedisPassword, "redis password")
	fs.IntVar(&config.RedisDB, "n", config.RedisDB, "redis database")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.AccessToken, "t", config.AccessToken, "access token")
	fs.IntVar(&config.PageSize, "z", config.PageSize, "page size")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.BoolVar(&config.PrettyLog, "x", config.PrettyLog, "pretty console logs")

	sessionTTL := fs.Int("T", int(config.SessionTTL.Minutes()), "handoff lifetime (in minutes)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	config.SessionTTL = time.Duration(*sessionTTL) * time.Minute
	return nil
}
