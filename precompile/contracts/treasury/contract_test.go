// (c) 2024-2025, Kiwari Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package treasury

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/Kiwari-Labs/go-precompiles/precompile/contract"
	"github.com/Kiwari-Labs/go-precompiles/precompile/modules"
	"github.com/Kiwari-Labs/go-precompiles/precompile/ownable"
	"github.com/Kiwari-Labs/go-precompiles/precompile/precompileconfig"
	"github.com/Kiwari-Labs/go-precompiles/precompile/precompiletest"
	"github.com/Kiwari-Labs/go-precompiles/utils"
)

var (
	testOwner  = common.HexToAddress("0x1000000000000000000000000000000000000001")
	testNoRole = common.HexToAddress("0x2000000000000000000000000000000000000002")
	testVault  = common.HexToAddress("0x9000000000000000000000000000000000000009")
)

// setOwnerHook seeds testOwner as the contract owner.
func setOwnerHook(t *testing.T, state contract.StateDB) {
	cfg := ownable.OwnableConfig{InitialOwner: &testOwner}
	require.NoError(t, cfg.Configure(state, ContractAddress))
}

// vaultHook seeds testOwner with testVault registered as the treasury.
func vaultHook(t *testing.T, state contract.StateDB) {
	setOwnerHook(t, state)
	SetTreasury(state, testVault)
}

func TestTreasuryRegistryRun(t *testing.T) {
	tests := map[string]precompiletest.PrecompileTest{
		"setTreasury registers vault": {
			Caller:      testOwner,
			BeforeHook:  setOwnerHook,
			Input:       PackSetTreasury(testVault),
			SuppliedGas: SetTreasuryGasCost,
			ExpectedRes: contract.PackBool(true),
			AfterHook: func(t *testing.T, state contract.StateDB) {
				require.Equal(t, testVault, GetTreasury(state))
			},
		},
		"setTreasury replaces vault": {
			Caller:      testOwner,
			BeforeHook:  vaultHook,
			Input:       PackSetTreasury(testNoRole),
			SuppliedGas: SetTreasuryGasCost,
			ExpectedRes: contract.PackBool(true),
			AfterHook: func(t *testing.T, state contract.StateDB) {
				require.Equal(t, testNoRole, GetTreasury(state))
			},
		},
		"setTreasury rejects zero address": {
			Caller:      testOwner,
			BeforeHook:  vaultHook,
			Input:       PackSetTreasury(common.Address{}),
			SuppliedGas: SetTreasuryGasCost,
			ExpectedRes: contract.PackBool(false),
			AfterHook: func(t *testing.T, state contract.StateDB) {
				require.Equal(t, testVault, GetTreasury(state))
			},
		},
		"setTreasury rejects non owner": {
			Caller:      testNoRole,
			BeforeHook:  vaultHook,
			Input:       PackSetTreasury(testNoRole),
			SuppliedGas: SetTreasuryGasCost,
			ExpectedRes: contract.PackBool(false),
			AfterHook: func(t *testing.T, state contract.StateDB) {
				require.Equal(t, testVault, GetTreasury(state))
			},
		},
		"setTreasury rejects static call": {
			Caller:      testOwner,
			BeforeHook:  vaultHook,
			Input:       PackSetTreasury(testNoRole),
			SuppliedGas: SetTreasuryGasCost,
			ReadOnly:    true,
			ExpectedRes: contract.PackBool(false),
			AfterHook: func(t *testing.T, state contract.StateDB) {
				require.Equal(t, testVault, GetTreasury(state))
			},
		},
		"setTreasury rejects short argument": {
			Caller:      testOwner,
			BeforeHook:  setOwnerHook,
			Input:       setTreasurySignature,
			SuppliedGas: SetTreasuryGasCost,
			ExpectedRes: contract.PackBool(false),
		},
		"setTreasury runs out of gas": {
			Caller:      testOwner,
			BeforeHook:  setOwnerHook,
			Input:       PackSetTreasury(testVault),
			SuppliedGas: SetTreasuryGasCost - 1,
			ExpectedErr: "out of gas",
		},
		"treasuryAt reads registered vault": {
			Caller:      testNoRole,
			BeforeHook:  vaultHook,
			Input:       PackTreasuryAt(),
			SuppliedGas: TreasuryAtGasCost,
			ExpectedRes: testVault.Hash().Bytes(),
		},
		"treasuryAt defaults to zero": {
			Caller:      testNoRole,
			Input:       PackTreasuryAt(),
			SuppliedGas: TreasuryAtGasCost,
			ExpectedRes: common.Hash{}.Bytes(),
		},
		"activation config registers vault": {
			Caller:      testNoRole,
			Config:      NewConfig(utils.NewUint64(0), &testOwner, &testVault),
			Input:       PackTreasuryAt(),
			SuppliedGas: TreasuryAtGasCost,
			ExpectedRes: testVault.Hash().Bytes(),
		},
		"owner readable through the contract": {
			Caller:      testNoRole,
			BeforeHook:  setOwnerHook,
			Input:       ownable.PackOwner(),
			SuppliedGas: ownable.OwnerGasCost,
			ExpectedRes: testOwner.Hash().Bytes(),
		},
		"empty input halts": {
			Caller:      testNoRole,
			Input:       []byte{},
			SuppliedGas: 0,
			ExpectedErr: "missing function selector",
		},
		"unknown selector halts": {
			Caller:      testNoRole,
			Input:       []byte{0xde, 0xad, 0xbe, 0xef},
			SuppliedGas: 0,
			ExpectedErr: "invalid function selector",
		},
	}

	precompiletest.RunPrecompileTests(t, Module, tests)
}

func TestFunctionSignatures(t *testing.T) {
	require := require.New(t)

	for name, signature := range map[string][]byte{
		"treasuryAt":        treasuryAtSignature,
		"setTreasury":       setTreasurySignature,
		"owner":             ownable.OwnerSignature,
		"initialized":       ownable.InitializedSignature,
		"initializeOwner":   ownable.InitializeOwnerSignature,
		"transferOwnership": ownable.TransferOwnershipSignature,
	} {
		method, ok := TreasuryRegistryABI.Methods[name]
		require.True(ok, "method %q missing from the ABI", name)
		require.Equal(method.ID, signature, "selector mismatch for %q", name)
	}
}

func TestModuleRegistration(t *testing.T) {
	require := require.New(t)

	module, ok := modules.GetPrecompileModuleByAddress(ContractAddress)
	require.True(ok)
	require.Equal(ConfigKey, module.ConfigKey)

	module, ok = modules.GetPrecompileModule(ConfigKey)
	require.True(ok)
	require.Equal(ContractAddress, module.Address)
}

func TestConfigureRejectsWrongConfigType(t *testing.T) {
	require := require.New(t)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	err := Module.Configure(nil, precompileconfig.NewMockConfig(ctrl), precompiletest.NewTestStateDB(t), nil)
	require.ErrorContains(err, "incorrect config")
}
