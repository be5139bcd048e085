// (c) 2024-2025, Kiwari Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package contract

import (
	"math/big"
)

// mockBlockContext is a pinned block context for tests and configurators.
type mockBlockContext struct {
	blockNumber *big.Int
	timestamp   uint64
}

func NewMockBlockContext(blockNumber *big.Int, timestamp uint64) BlockContext {
	return &mockBlockContext{
		blockNumber: blockNumber,
		timestamp:   timestamp,
	}
}

func (mb *mockBlockContext) Number() *big.Int  { return mb.blockNumber }
func (mb *mockBlockContext) Timestamp() uint64 { return mb.timestamp }

// mockChainConfig pins the chain id for tests.
type mockChainConfig struct {
	chainID *big.Int
}

func NewMockChainConfig(chainID *big.Int) ChainConfig {
	return &mockChainConfig{chainID: chainID}
}

func (mc *mockChainConfig) ChainID() *big.Int { return mc.chainID }

// mockAccessibleState bundles a StateDB with pinned block and chain contexts.
type mockAccessibleState struct {
	state        StateDB
	blockContext BlockContext
	chainConfig  ChainConfig
}

func NewMockAccessibleState(state StateDB, blockContext BlockContext, chainConfig ChainConfig) AccessibleState {
	return &mockAccessibleState{
		state:        state,
		blockContext: blockContext,
		chainConfig:  chainConfig,
	}
}

func (m *mockAccessibleState) GetStateDB() StateDB           { return m.state }
func (m *mockAccessibleState) GetBlockContext() BlockContext { return m.blockContext }
func (m *mockAccessibleState) GetChainConfig() ChainConfig   { return m.chainConfig }
