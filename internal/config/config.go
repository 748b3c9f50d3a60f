// Package config loads daemon settings: built-in defaults, then an optional
// TOML file, then CELERIX_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

const DefaultConfig = `
# Celerix registry configuration.

[server]
addr = ":7002"
disable-tls = true

[storage]
data-dir = "./data"
entity = "employee"
id-prefix = "EMP"
unique-attr = "email"

[schema]
file = "./schema.json"

[log]
error-file = ".log/error.log.json"
request-file = ".log/req_resp.log.json"
debug = false

[messages]
internal-error = "Something went wrong. Please contact admin."
`

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Storage  StorageConfig  `toml:"storage"`
	Schema   SchemaConfig   `toml:"schema"`
	Log      LogConfig      `toml:"log"`
	Messages MessagesConfig `toml:"messages"`
}

type ServerConfig struct {
	Addr       string `toml:"addr" validate:"required,hostname_port|startswith=:"`
	DisableTLS bool   `toml:"disable-tls"`
}

type StorageConfig struct {
	DataDir    string `toml:"data-dir" validate:"required"`
	Entity     string `toml:"entity" validate:"required,alphanum"`
	IDPrefix   string `toml:"id-prefix" validate:"required,len=3,alpha"`
	UniqueAttr string `toml:"unique-attr" validate:"required"`
}

type SchemaConfig struct {
	File string `toml:"file" validate:"required"`
}

type LogConfig struct {
	ErrorFile   string `toml:"error-file"`
	RequestFile string `toml:"request-file"`
	Debug       bool   `toml:"debug"`
}

type MessagesConfig struct {
	InternalError string `toml:"internal-error" validate:"required"`
}

// Load decodes the defaults, overlays path when it is non-empty, applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	c := new(Config)
	if _, err := toml.Decode(DefaultConfig, c); err != nil {
		return nil, fmt.Errorf("decode default config: %w", err)
	}

	if path != "" {
		if _, err := toml.DecodeFile(path, c); err != nil {
			return nil, fmt.Errorf("decode config file %s: %w", path, err)
		}
	}

	c.applyEnv()

	if err := validator.New().Struct(c); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv() {
	envString("CELERIX_HTTP_ADDR", &c.Server.Addr)
	envBool("CELERIX_DISABLE_TLS", &c.Server.DisableTLS)
	envString("CELERIX_DATA_DIR", &c.Storage.DataDir)
	envString("CELERIX_SCHEMA_FILE", &c.Schema.File)
	envString("CELERIX_ERROR_LOG", &c.Log.ErrorFile)
	envString("CELERIX_REQUEST_LOG", &c.Log.RequestFile)
	envBool("CELERIX_DEBUG", &c.Log.Debug)
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envBool(key string, dst *bool) {
	if v := os.Getenv(key); v != "" {
		*dst = strings.EqualFold(v, "true")
	}
}
