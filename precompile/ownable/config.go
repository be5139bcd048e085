// (c) 2024-2025, Kiwari Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package ownable

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Kiwari-Labs/go-precompiles/precompile/contract"
)

// OwnableConfig specifies the optional initial owner written when an ownable
// precompile activates. With a nil InitialOwner the contract starts
// uninitialized and waits for an initializeOwner call.
type OwnableConfig struct {
	InitialOwner *common.Address `json:"initialOwner,omitempty"`
}

// Configure seeds the owner of [precompileAddr] when an initial owner is set.
func (c *OwnableConfig) Configure(state contract.StateDB, precompileAddr common.Address) error {
	if c.InitialOwner == nil {
		return nil
	}

	InitializeAccount(state, precompileAddr)
	SetOwner(state, precompileAddr, *c.InitialOwner)
	setInitialized(state, precompileAddr)
	return nil
}

// Equal returns true iff [other] seeds the same initial owner.
func (c *OwnableConfig) Equal(other *OwnableConfig) bool {
	if other == nil {
		return false
	}
	if c.InitialOwner == nil || other.InitialOwner == nil {
		return c.InitialOwner == other.InitialOwner
	}
	return *c.InitialOwner == *other.InitialOwner
}

// Verify returns an error if the configured initial owner is the zero address.
func (c *OwnableConfig) Verify() error {
	if c.InitialOwner != nil && *c.InitialOwner == (common.Address{}) {
		return fmt.Errorf("initial owner cannot be the zero address")
	}
	return nil
}
