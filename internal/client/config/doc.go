// Package config loads runtime configuration for the Sportera CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend API
//	-d string   path of the local session database
//
// # JSON schema
//
//	{
//	  "server_base_url": "http://localhost:3000/api/v1",
//	  "database_dsn": "sportera.db"
//	}
//
// Primary API
//
//   - type Config                     — holds ServerBaseURL and DatabaseDSN
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
