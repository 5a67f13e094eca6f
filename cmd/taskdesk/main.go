// Package main provides the taskdesk CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

// Exit codes: 1 for user errors (bad flags, bad config), 2 for system
// errors (storage, network).
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, types.ErrValidation) ||
			errors.Is(err, types.ErrDataDirEmpty) ||
			errors.Is(err, types.ErrJWTSecretEmpty) ||
			errors.Is(err, types.ErrTokenTTLInvalid) ||
			errors.Is(err, types.ErrBcryptCostInvalid) {
			os.Exit(exitUserError)
		}
		os.Exit(exitSysError)
	}
	os.Exit(exitSuccess)
}
