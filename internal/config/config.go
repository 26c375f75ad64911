// Package config loads runtime settings from config.yaml, a .env file and
// HEALTHYPLATES_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const EnvPrefix = "HEALTHYPLATES_"

type Server struct {
	// Addr is the listen address of the HTTP API.
	Addr           string   `koanf:"addr"`
	AllowedOrigins []string `koanf:"allowed_origins"`
}

type Config struct {
	DBPath    string `koanf:"db_path"`
	DataDir   string `koanf:"data_dir"`
	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`
	Server    Server `koanf:"server"`
}

func Default() Config {
	return Config{
		LogLevel:  "warn",
		LogFormat: "text",
		Server: Server{
			Addr:           "127.0.0.1:8080",
			AllowedOrigins: []string{"*"},
		},
	}
}

// Load reads the YAML file at path, then .env, then the environment. A
// missing file is only an error when required is set.
func Load(path string, required bool) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := k.Load(rawbytes.Provider(b), yaml.Parser()); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist) && !required:
		default:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envKey,
	}), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	cfg := Default()
	cfg.Server.AllowedOrigins = nil
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = Default().Server.AllowedOrigins
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// envKey maps HEALTHYPLATES_SERVER__ADDR to server.addr. A double underscore
// separates sections so single underscores survive in key names.
func envKey(k, v string) (string, any) {
	k = strings.ToLower(strings.TrimPrefix(k, EnvPrefix))
	k = strings.ReplaceAll(k, "__", ".")
	if k == "server.allowed_origins" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return k, out
	}
	return k, v
}
