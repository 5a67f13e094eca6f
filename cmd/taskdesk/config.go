// Config loading for the taskdesk CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	envPrefix = "TASKDESK"

	// Config keys.
	cfgKeyListen     = "listen"
	cfgKeyDataDir    = "data_dir"
	cfgKeyJWTSecret  = "jwt_secret"
	cfgKeyTokenTTL   = "token_ttl"
	cfgKeyBcryptCost = "bcrypt_cost"

	defaultListen   = ":8080"
	defaultTokenTTL = 24 * time.Hour
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# Taskdesk configuration

# Listen address for the HTTP server
listen: ":8080"

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Secret used to sign bearer tokens. Required: set it here or via
# TASKDESK_JWT_SECRET.
# jwt_secret:

# Token lifetime
token_ttl: 24h
`

// loadConfig resolves the effective configuration with precedence
// flag > config.yaml > environment > default.
func loadConfig() (types.Config, error) {
	configDir := flagConfigDir
	if configDir == "" {
		configDir = os.Getenv(envPrefix + "_CONFIG_DIR")
	}
	if configDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return types.Config{}, fmt.Errorf("resolve working directory: %w", err)
		}
		configDir = filepath.Join(cwd, ".taskdesk")
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return types.Config{}, err
	}

	v := viper.New()
	v.SetDefault(cfgKeyListen, defaultListen)
	v.SetDefault(cfgKeyTokenTTL, defaultTokenTTL)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config.yaml is not an error; env and flags still apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return types.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := types.Config{
		Listen:     v.GetString(cfgKeyListen),
		DataDir:    v.GetString(cfgKeyDataDir),
		JWTSecret:  v.GetString(cfgKeyJWTSecret),
		TokenTTL:   v.GetDuration(cfgKeyTokenTTL),
		BcryptCost: v.GetInt(cfgKeyBcryptCost),
	}

	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	if cfg.DataDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return types.Config{}, fmt.Errorf("resolve working directory: %w", err)
		}
		cfg.DataDir = filepath.Join(cwd, ".taskdesk-db")
	}
	if flagListen != "" {
		cfg.Listen = flagListen
	}

	if err := cfg.Validate(); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

// ensureDefaultConfigFile creates the config directory and a default
// config.yaml on first run.
func ensureDefaultConfigFile(configDir string) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("ensure config dir: %w", err)
	}
	path := filepath.Join(configDir, configFileName+"."+configFileType)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigYAML), 0o644); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	return nil
}
