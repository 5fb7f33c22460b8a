// Package config loads runtime configuration for the QDrive CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the QDrive HTTP API
//	-t int      request timeout (seconds)
//
// The server marks its session cookie Secure unless it runs with
// -env development, and such a cookie is only returned over https. Against a
// local plain-http server, start it with -env development.
//
// # File schema
//
//	{
//	  "server_url": "http://127.0.0.1:3000",
//	  "request_timeout_seconds": 10
//	}
package config
