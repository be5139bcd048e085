// (c) 2024-2025, Kiwari Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package modules

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/Kiwari-Labs/go-precompiles/precompile/contract"
)

// Module wires one stateful precompile into the family: its config key, the
// address it lives at, the contract singleton, and the configurator applied at
// activation.
type Module struct {
	// ConfigKey is the key used in json config files to specify this precompile config.
	ConfigKey string
	// Address is the address where the stateful precompile is accessible.
	Address common.Address
	// Contract is a thread-safe singleton that can be used as the
	// StatefulPrecompiledContract when this config is enabled.
	Contract contract.StatefulPrecompiledContract
	// Configurator is used to configure the stateful precompile when the config is enabled.
	contract.Configurator
}
