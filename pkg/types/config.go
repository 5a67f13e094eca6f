package types

import (
	"errors"
	"time"
)

// Config holds the settings the server and storage backend need.
type Config struct {
	DataDir    string        `json:"data_dir" yaml:"data_dir"`
	Listen     string        `json:"listen" yaml:"listen"`
	JWTSecret  string        `json:"jwt_secret" yaml:"jwt_secret"`
	TokenTTL   time.Duration `json:"token_ttl" yaml:"token_ttl"`
	BcryptCost int           `json:"bcrypt_cost" yaml:"bcrypt_cost"`
}

// Config validation errors.
var (
	ErrDataDirEmpty      = errors.New("data_dir must not be empty")
	ErrJWTSecretEmpty    = errors.New("jwt_secret must not be empty")
	ErrTokenTTLInvalid   = errors.New("token_ttl must be positive")
	ErrBcryptCostInvalid = errors.New("bcrypt_cost out of range")
)

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure. JWTSecret is not required here; the
// server checks it when it actually starts issuing tokens.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return ErrDataDirEmpty
	}
	if c.TokenTTL <= 0 {
		return ErrTokenTTLInvalid
	}
	if c.BcryptCost != 0 && (c.BcryptCost < 4 || c.BcryptCost > 31) {
		return ErrBcryptCostInvalid
	}
	return nil
}
