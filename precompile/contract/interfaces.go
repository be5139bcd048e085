// (c) 2024-2025, Kiwari Labs. All rights reserved.
// See the file LICENSE for licensing terms.

// Defines the interface for the configuration and execution of a precompile contract
package contract

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Kiwari-Labs/go-precompiles/precompile/precompileconfig"
)

// StatefulPrecompiledContract is the interface for executing a precompiled contract
type StatefulPrecompiledContract interface {
	// Run executes the precompiled contract.
	Run(accessibleState AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) (ret []byte, remainingGas uint64, err error)
	// RequiredGas returns the base gas charged for the function [input] selects.
	RequiredGas(input []byte) uint64
}

// RunStatefulPrecompileFunc is the execution function of a single precompile
// operation. [input] is the function argument payload, with the 4 byte
// selector already stripped.
type RunStatefulPrecompileFunc func(accessibleState AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) (ret []byte, remainingGas uint64, err error)

// ChainConfig defines an interface that provides information to a stateful precompile
// about the chain configuration.
type ChainConfig interface {
	// ChainID returns the chain id of the host chain.
	ChainID() *big.Int
}

// StateDB is the interface for accessing EVM state. It is the only capability
// through which the contract family reads and mutates accounts.
type StateDB interface {
	GetState(common.Address, common.Hash) common.Hash
	SetState(common.Address, common.Hash, common.Hash)

	SetNonce(common.Address, uint64)
	GetNonce(common.Address) uint64

	GetBalance(common.Address) *big.Int
	AddBalance(common.Address, *big.Int)

	CreateAccount(common.Address)
	Exist(common.Address) bool

	Snapshot() int
	RevertToSnapshot(int)
}

// AccessibleState defines the interface exposed to stateful precompile contracts
type AccessibleState interface {
	GetStateDB() StateDB
	GetBlockContext() BlockContext
	GetChainConfig() ChainConfig
}

// BlockContext defines an interface that provides information to a stateful precompile
// about the block in which it runs. The precompile can access this information
// to initialize or update its state.
type BlockContext interface {
	Number() *big.Int
	Timestamp() uint64
}

type Configurator interface {
	MakeConfig() precompileconfig.Config
	Configure(
		chainConfig ChainConfig,
		precompileConfig precompileconfig.Config,
		state StateDB,
		blockContext BlockContext,
	) error
}
