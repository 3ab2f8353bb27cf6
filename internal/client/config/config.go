package config

// Config holds runtime settings for the Sportera CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend REST API, including the
//     version prefix (e.g. "http://localhost:3000/api/v1").
//   - DatabaseDSN: path or DSN of the local SQLite session database.
type Config struct {
	ServerBaseURL string
	DatabaseDSN   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:3000/api/v1"
	c.DatabaseDSN = "sportera.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
