// (c) 2024-2025, Kiwari Labs. All rights reserved.
// See the file LICENSE for licensing terms.

// Package registry facilitates the registration of precompiles and their configuration.
package registry

// Force imports of each precompile to ensure each precompile's init function runs and registers itself
// with the registry.
import (
	_ "github.com/Kiwari-Labs/go-precompiles/precompile/contracts/addressregistry"
	_ "github.com/Kiwari-Labs/go-precompiles/precompile/contracts/feegrant"
	_ "github.com/Kiwari-Labs/go-precompiles/precompile/contracts/gasprice"
	_ "github.com/Kiwari-Labs/go-precompiles/precompile/contracts/nativeminter"
	_ "github.com/Kiwari-Labs/go-precompiles/precompile/contracts/sortedlist"
	_ "github.com/Kiwari-Labs/go-precompiles/precompile/contracts/treasury"
)
