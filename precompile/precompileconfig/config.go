// (c) 2024-2025, Kiwari Labs. All rights reserved.
// See the file LICENSE for licensing terms.

// Package precompileconfig defines the configuration interface implemented by
// every stateful precompile in the family. Configs are parsed from JSON and
// applied to state when the precompile activates.
package precompileconfig

import (
	"github.com/ethereum/go-ethereum/common"
)

// Config describes the activation schedule and initial state of one stateful
// precompile.
type Config interface {
	// Key returns the unique key used in json config files to specify this
	// precompile config. Must be unique across all precompiles.
	Key() string
	// Address returns the address where the stateful precompile is accessible.
	Address() common.Address
	// Timestamp returns the timestamp at which this stateful precompile should
	// be enabled. A nil value means the precompile never activates.
	Timestamp() *uint64
	// IsDisabled returns true if this config deactivates a previously activated
	// precompile.
	IsDisabled() bool
	// Verify is called on startup and an error is treated as fatal.
	Verify() error
	// Equal returns true if the provided argument configures the same precompile
	// with the same parameters.
	Equal(Config) bool
}
