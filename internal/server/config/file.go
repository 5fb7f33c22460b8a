package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape of the configuration. Empty fields leave
// the current value untouched.
type fileConfig struct {
	EndpointAddrHTTP string   `json:"endpoint_addr_http" yaml:"endpoint_addr_http"`
	EndpointAddrGRPC string   `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	DatabaseDSN      string   `json:"database_dsn" yaml:"database_dsn"`
	SecretKey        string   `json:"secret_key" yaml:"secret_key"`
	SessionValidity  Duration `json:"session_validity" yaml:"session_validity"`
	Environment      string   `json:"environment" yaml:"environment"`
	LogLevel         string   `json:"log_level" yaml:"log_level"`
	WebRoot          string   `json:"web_root" yaml:"web_root"`
	AMQPURL          string   `json:"amqp_url" yaml:"amqp_url"`
	AMQPExchange     string   `json:"amqp_exchange" yaml:"amqp_exchange"`
	S3RootUser       string   `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword   string   `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket         string   `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region         string   `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint   string   `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
}

// parseFile overlays values from a .json, .yaml or .yml file onto config.
func parseFile(config *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &fileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, c)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		return fmt.Errorf("unsupported config file %q", path)
	}
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.SessionValidity.Duration != 0 {
		config.SessionValidity = c.SessionValidity.Duration
	}
	setString(&config.Environment, c.Environment)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.WebRoot, c.WebRoot)
	setString(&config.AMQPURL, c.AMQPURL)
	setString(&config.AMQPExchange, c.AMQPExchange)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
