package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/qdrive/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string     HTTP bind address (e.g. ":3000")
//	-G string     gRPC health bind address (e.g. ":50051")
//	-d string     PostgreSQL DSN
//	-s string     JWT HMAC secret key
//	-t int        session validity, minutes
//	-env string   environment: development, production or test
//	-l string     log level
//	-w string     directory served for pages and /static/
//	-q string     AMQP URL; empty disables ride events
//	-u string     S3 root user
//	-p string     S3 root password
//	-b string     S3 bucket name
//	-g string     S3 region
//	-e string     S3 base endpoint (e.g. "http://127.0.0.1:9000/")
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{
		"-a", "-G", "-d", "-s", "-t", "-env", "-l", "-w", "-q", "-u", "-p", "-b", "-g", "-e",
	})

	fs := flag.NewFlagSet("qdrive", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.EndpointAddrGRPC, "G", config.EndpointAddrGRPC, "gRPC address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "JWT secret key")
	sessionMinutes := fs.Int("t", int(config.SessionValidity.Minutes()), "session validity (in minutes)")
	fs.StringVar(&config.Environment, "env", config.Environment, "environment")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.WebRoot, "w", config.WebRoot, "web root directory")
	fs.StringVar(&config.AMQPURL, "q", config.AMQPURL, "AMQP URL")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.SessionValidity = time.Duration(*sessionMinutes) * time.Minute
		}
	})
	return nil
}
