// (c) 2024-2025, Kiwari Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package nativeminter

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/golang/mock/gomock"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/Kiwari-Labs/go-precompiles/precompile/contract"
	"github.com/Kiwari-Labs/go-precompiles/precompile/modules"
	"github.com/Kiwari-Labs/go-precompiles/precompile/ownable"
	"github.com/Kiwari-Labs/go-precompiles/precompile/precompileconfig"
	"github.com/Kiwari-Labs/go-precompiles/precompile/precompiletest"
	"github.com/Kiwari-Labs/go-precompiles/utils"
)

var (
	testOwner     = common.HexToAddress("0x1000000000000000000000000000000000000001")
	testNoRole    = common.HexToAddress("0x2000000000000000000000000000000000000002")
	testRecipient = common.HexToAddress("0x6000000000000000000000000000000000000006")
)

func word(n uint64) common.Hash {
	return common.Hash(uint256.NewInt(n).Bytes32())
}

// setOwnerHook seeds testOwner as the contract owner.
func setOwnerHook(t *testing.T, state contract.StateDB) {
	cfg := ownable.OwnableConfig{InitialOwner: &testOwner}
	require.NoError(t, cfg.Configure(state, ContractAddress))
}

func requireBalance(t *testing.T, state contract.StateDB, account common.Address, amount int64) {
	t.Helper()
	require.Equal(t, big.NewInt(amount), state.GetBalance(account))
}

func TestNativeMinterRun(t *testing.T) {
	tests := map[string]precompiletest.PrecompileTest{
		"mint credits fresh account": {
			Caller:      testOwner,
			BeforeHook:  setOwnerHook,
			Input:       PackMint(testRecipient, word(1000)),
			SuppliedGas: MintGasCost,
			ExpectedRes: contract.PackBool(true),
			AfterHook: func(t *testing.T, state contract.StateDB) {
				require.True(t, state.Exist(testRecipient))
				requireBalance(t, state, testRecipient, 1000)
			},
		},
		"mint accumulates on existing balance": {
			Caller: testOwner,
			BeforeHook: func(t *testing.T, state contract.StateDB) {
				setOwnerHook(t, state)
				state.CreateAccount(testRecipient)
				state.AddBalance(testRecipient, big.NewInt(500))
			},
			Input:       PackMint(testRecipient, word(1000)),
			SuppliedGas: MintGasCost,
			ExpectedRes: contract.PackBool(true),
			AfterHook: func(t *testing.T, state contract.StateDB) {
				requireBalance(t, state, testRecipient, 1500)
			},
		},
		"mint accepts zero amount": {
			Caller:      testOwner,
			BeforeHook:  setOwnerHook,
			Input:       PackMint(testRecipient, common.Hash{}),
			SuppliedGas: MintGasCost,
			ExpectedRes: contract.PackBool(true),
			AfterHook: func(t *testing.T, state contract.StateDB) {
				require.True(t, state.Exist(testRecipient))
				requireBalance(t, state, testRecipient, 0)
			},
		},
		"mint rejects zero recipient": {
			Caller:      testOwner,
			BeforeHook:  setOwnerHook,
			Input:       PackMint(common.Address{}, word(1000)),
			SuppliedGas: MintGasCost,
			ExpectedRes: contract.PackBool(false),
		},
		"mint rejects non owner": {
			Caller:      testNoRole,
			BeforeHook:  setOwnerHook,
			Input:       PackMint(testRecipient, word(1000)),
			SuppliedGas: MintGasCost,
			ExpectedRes: contract.PackBool(false),
			AfterHook: func(t *testing.T, state contract.StateDB) {
				requireBalance(t, state, testRecipient, 0)
			},
		},
		"mint rejects before owner initialization": {
			Caller:      testOwner,
			Input:       PackMint(testRecipient, word(1000)),
			SuppliedGas: MintGasCost,
			ExpectedRes: contract.PackBool(false),
		},
		"mint rejects static call": {
			Caller:      testOwner,
			BeforeHook:  setOwnerHook,
			Input:       PackMint(testRecipient, word(1000)),
			SuppliedGas: MintGasCost,
			ReadOnly:    true,
			ExpectedRes: contract.PackBool(false),
			AfterHook: func(t *testing.T, state contract.StateDB) {
				requireBalance(t, state, testRecipient, 0)
			},
		},
		"mint rejects short argument": {
			Caller:      testOwner,
			BeforeHook:  setOwnerHook,
			Input:       append(common.CopyBytes(mintSignature), testRecipient.Hash().Bytes()...),
			SuppliedGas: MintGasCost,
			ExpectedRes: contract.PackBool(false),
		},
		"mint runs out of gas": {
			Caller:      testOwner,
			BeforeHook:  setOwnerHook,
			Input:       PackMint(testRecipient, word(1000)),
			SuppliedGas: MintGasCost - 1,
			ExpectedErr: "out of gas",
		},
		"activation config credits initial mint": {
			Caller: testNoRole,
			Config: NewConfig(utils.NewUint64(0), &testOwner, map[common.Address]*math.HexOrDecimal256{
				testRecipient: hexAmount(1000),
			}),
			Input:       ownable.PackOwner(),
			SuppliedGas: ownable.OwnerGasCost,
			ExpectedRes: testOwner.Hash().Bytes(),
			AfterHook: func(t *testing.T, state contract.StateDB) {
				require.True(t, state.Exist(testRecipient))
				requireBalance(t, state, testRecipient, 1000)
			},
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
		"mint":              mintSignature,
		"owner":             ownable.OwnerSignature,
		"initialized":       ownable.InitializedSignature,
		"initializeOwner":   ownable.InitializeOwnerSignature,
		"transferOwnership": ownable.TransferOwnershipSignature,
	} {
		method, ok := NativeMinterABI.Methods[name]
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
