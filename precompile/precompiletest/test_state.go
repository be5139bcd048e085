// (c) 2024-2025, Kiwari Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package precompiletest

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/rawdb"
	"github.com/ethereum/go-ethereum/core/state"
	"github.com/stretchr/testify/require"

	"github.com/Kiwari-Labs/go-precompiles/precompile/contract"
)

var _ contract.StateDB = (*state.StateDB)(nil)

// NewTestStateDB returns an empty in-memory StateDB.
func NewTestStateDB(t testing.TB) contract.StateDB {
	t.Helper()

	db := rawdb.NewMemoryDatabase()
	stateDB, err := state.New(common.Hash{}, state.NewDatabase(db), nil)
	require.NoError(t, err)
	return stateDB
}
