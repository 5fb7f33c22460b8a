package config

import (
	"fmt"
	"time"
)

// parseEnv overlays environment variables onto config. QDRIVE_-prefixed
// names win over the bare JWT_SECRET and DATABASE_DSN.
func parseEnv(config *Config, lookup func(string) (string, bool)) error {
	str := func(dst *string, names ...string) {
		for _, n := range names {
			if v, ok := lookup(n); ok && v != "" {
				*dst = v
				return
			}
		}
	}

	str(&config.EndpointAddrHTTP, "QDRIVE_HTTP_ADDR")
	str(&config.EndpointAddrGRPC, "QDRIVE_GRPC_ADDR")
	str(&config.DatabaseDSN, "QDRIVE_DATABASE_DSN", "DATABASE_DSN")
	str(&config.SecretKey, "QDRIVE_JWT_SECRET", "JWT_SECRET")
	str(&config.Environment, "QDRIVE_ENV")
	str(&config.LogLevel, "QDRIVE_LOG_LEVEL")
	str(&config.WebRoot, "QDRIVE_WEB_ROOT")
	str(&config.AMQPURL, "QDRIVE_AMQP_URL")
	str(&config.AMQPExchange, "QDRIVE_AMQP_EXCHANGE")
	str(&config.S3RootUser, "QDRIVE_S3_ROOT_USER")
	str(&config.S3RootPassword, "QDRIVE_S3_ROOT_PASSWORD")
	str(&config.S3Bucket, "QDRIVE_S3_BUCKET")
	str(&config.S3Region, "QDRIVE_S3_REGION")
	str(&config.S3BaseEndpoint, "QDRIVE_S3_BASE_ENDPOINT")

	if v, ok := lookup("QDRIVE_SESSION_VALIDITY"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("QDRIVE_SESSION_VALIDITY: %w", err)
		}
		config.SessionValidity = d
	}
	return nil
}
