// (c) 2024-2025, Kiwari Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package feegrant

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/Kiwari-Labs/go-precompiles/precompile/contract"
	"github.com/Kiwari-Labs/go-precompiles/precompile/modules"
	"github.com/Kiwari-Labs/go-precompiles/precompile/ownable"
	"github.com/Kiwari-Labs/go-precompiles/precompile/precompileconfig"
	"github.com/Kiwari-Labs/go-precompiles/precompile/precompiletest"
)

var (
	testOwner   = common.HexToAddress("0x1000000000000000000000000000000000000001")
	testNoRole  = common.HexToAddress("0x2000000000000000000000000000000000000002")
	testGranter = common.HexToAddress("0x3000000000000000000000000000000000000003")
	testGrantee = common.HexToAddress("0x4000000000000000000000000000000000000004")
	testProgram = common.HexToAddress("0x5000000000000000000000000000000000000005")
)

func word(n uint64) common.Hash {
	return common.Hash(uint256.NewInt(n).Bytes32())
}

func packWords(words ...common.Hash) []byte {
	packed := make([]byte, 0, len(words)*common.HashLength)
	for _, w := range words {
		packed = append(packed, w.Bytes()...)
	}
	return packed
}

// periodicGrant builds a periodic record with spend limit 100 and period
// limit 500.
func periodicGrant(canSpend, start, latestTx, end, period uint64) Grant {
	return Grant{
		Granter:        testGranter.Hash(),
		Allowance:      allowancePeriodic,
		SpendLimit:     word(100),
		PeriodLimit:    word(500),
		PeriodCanSpend: word(canSpend),
		StartBlock:     word(start),
		EndBlock:       word(end),
		LatestTxBlock:  word(latestTx),
		PeriodLength:   word(period),
	}
}

// basicGrant builds a record with no period bookkeeping.
func basicGrant(end uint64) Grant {
	return Grant{
		Granter:       testGranter.Hash(),
		Allowance:     allowanceBasic,
		SpendLimit:    word(100),
		StartBlock:    word(100),
		EndBlock:      word(end),
		LatestTxBlock: word(100),
	}
}

// setOwnerHook seeds testOwner as the contract owner.
func setOwnerHook(t *testing.T, state contract.StateDB) {
	cfg := ownable.OwnableConfig{InitialOwner: &testOwner}
	require.NoError(t, cfg.Configure(state, ContractAddress))
}

// seedGrantHook seeds testOwner and installs [record] for testGrantee under
// [program], with the counter and grantee flag a single live grant implies.
func seedGrantHook(program common.Address, record Grant) func(t *testing.T, state contract.StateDB) {
	return func(t *testing.T, state contract.StateDB) {
		setOwnerHook(t, state)
		writeGrant(state, grantSlot(testGrantee, program), record)
		state.SetState(ContractAddress, granteeCounterSlot(testGrantee), word(1))
		state.SetState(testGrantee, GranteeFlagSlot, contract.TrueWord)
	}
}

func requireNoGrant(t *testing.T, state contract.StateDB, program common.Address) {
	t.Helper()
	require.Equal(t, Grant{}, GetGrant(state, testGrantee, program))
}

func TestGasFeeGrantRun(t *testing.T) {
	tests := map[string]precompiletest.PrecompileTest{
		"setFeeGrant creates basic grant": {
			Caller:      testOwner,
			BeforeHook:  setOwnerHook,
			Input:       PackSetFeeGrant(testGranter, testGrantee, testProgram, word(100), 0, common.Hash{}, common.Hash{}),
			SuppliedGas: SetFeeGrantGasCost,
			BlockNumber: 50,
			ExpectedRes: contract.PackBool(true),
			AfterHook: func(t *testing.T, state contract.StateDB) {
				record := GetGrant(state, testGrantee, testProgram)
				require.Equal(t, allowanceBasic, record.Allowance)
				require.Equal(t, testGranter.Hash(), record.Granter)
				require.Equal(t, word(50), record.StartBlock)
				require.Equal(t, word(50), record.LatestTxBlock)
				require.Equal(t, word(1), state.GetState(ContractAddress, granteeCounterSlot(testGrantee)))
				require.Equal(t, contract.TrueWord, state.GetState(testGrantee, GranteeFlagSlot))
				require.True(t, state.Exist(testGrantee))
				require.Equal(t, uint64(1), state.GetNonce(testGrantee))
			},
		},
		"setFeeGrant creates periodic grant": {
			Caller:      testOwner,
			BeforeHook:  setOwnerHook,
			Input:       PackSetFeeGrant(testGranter, testGrantee, testProgram, word(100), 10, word(500), word(200)),
			SuppliedGas: SetFeeGrantGasCost,
			BlockNumber: 100,
			ExpectedRes: contract.PackBool(true),
			AfterHook: func(t *testing.T, state contract.StateDB) {
				require.Equal(t, periodicGrant(500, 100, 100, 200, 10), GetGrant(state, testGrantee, testProgram))
			},
		},
		"setFeeGrant allows grant covering all programs": {
			Caller:      testOwner,
			BeforeHook:  setOwnerHook,
			Input:       PackSetFeeGrant(testGranter, testGrantee, common.Address{}, word(100), 10, word(500), common.Hash{}),
			SuppliedGas: SetFeeGrantGasCost,
			BlockNumber: 100,
			ExpectedRes: contract.PackBool(true),
			AfterHook: func(t *testing.T, state contract.StateDB) {
				require.True(t, IsGrantedForAllProgram(state, testGrantee))
			},
		},
		"setFeeGrant rejects duplicate grant": {
			Caller:      testOwner,
			BeforeHook:  seedGrantHook(testProgram, basicGrant(0)),
			Input:       PackSetFeeGrant(testGranter, testGrantee, testProgram, word(100), 0, common.Hash{}, common.Hash{}),
			SuppliedGas: SetFeeGrantGasCost,
			ExpectedRes: contract.PackBool(false),
		},
		"setFeeGrant rejects zero granter": {
			Caller:      testOwner,
			BeforeHook:  setOwnerHook,
			Input:       PackSetFeeGrant(common.Address{}, testGrantee, testProgram, word(100), 0, common.Hash{}, common.Hash{}),
			SuppliedGas: SetFeeGrantGasCost,
			ExpectedRes: contract.PackBool(false),
		},
		"setFeeGrant rejects zero grantee": {
			Caller:      testOwner,
			BeforeHook:  setOwnerHook,
			Input:       PackSetFeeGrant(testGranter, common.Address{}, testProgram, word(100), 0, common.Hash{}, common.Hash{}),
			SuppliedGas: SetFeeGrantGasCost,
			ExpectedRes: contract.PackBool(false),
		},
		"setFeeGrant rejects zero spend limit": {
			Caller:      testOwner,
			BeforeHook:  setOwnerHook,
			Input:       PackSetFeeGrant(testGranter, testGrantee, testProgram, common.Hash{}, 0, common.Hash{}, common.Hash{}),
			SuppliedGas: SetFeeGrantGasCost,
			ExpectedRes: contract.PackBool(false),
		},
		"setFeeGrant rejects spend limit above period budget": {
			Caller:      testOwner,
			BeforeHook:  setOwnerHook,
			Input:       PackSetFeeGrant(testGranter, testGrantee, testProgram, word(600), 10, word(500), common.Hash{}),
			SuppliedGas: SetFeeGrantGasCost,
			ExpectedRes: contract.PackBool(false),
		},
		"setFeeGrant rejects non owner": {
			Caller:      testNoRole,
			BeforeHook:  setOwnerHook,
			Input:       PackSetFeeGrant(testGranter, testGrantee, testProgram, word(100), 0, common.Hash{}, common.Hash{}),
			SuppliedGas: SetFeeGrantGasCost,
			ExpectedRes: contract.PackBool(false),
			AfterHook: func(t *testing.T, state contract.StateDB) {
				requireNoGrant(t, state, testProgram)
			},
		},
		"setFeeGrant rejects static call": {
			Caller:      testOwner,
			BeforeHook:  setOwnerHook,
			Input:       PackSetFeeGrant(testGranter, testGrantee, testProgram, word(100), 0, common.Hash{}, common.Hash{}),
			SuppliedGas: SetFeeGrantGasCost,
			ReadOnly:    true,
			ExpectedRes: contract.PackBool(false),
			AfterHook: func(t *testing.T, state contract.StateDB) {
				requireNoGrant(t, state, testProgram)
			},
		},
		"setFeeGrant runs out of gas": {
			Caller:      testOwner,
			BeforeHook:  setOwnerHook,
			Input:       PackSetFeeGrant(testGranter, testGrantee, testProgram, word(100), 0, common.Hash{}, common.Hash{}),
			SuppliedGas: SetFeeGrantGasCost - 1,
			ExpectedErr: "out of gas",
		},
		"revokeFeeGrant clears record and flag": {
			Caller:      testOwner,
			BeforeHook:  seedGrantHook(testProgram, basicGrant(0)),
			Input:       PackRevokeFeeGrant(testGrantee, testProgram),
			SuppliedGas: RevokeFeeGrantGasCost,
			ExpectedRes: contract.PackBool(true),
			AfterHook: func(t *testing.T, state contract.StateDB) {
				requireNoGrant(t, state, testProgram)
				require.Equal(t, common.Hash{}, state.GetState(ContractAddress, granteeCounterSlot(testGrantee)))
				require.Equal(t, common.Hash{}, state.GetState(testGrantee, GranteeFlagSlot))
			},
		},
		"revokeFeeGrant keeps flag while grants remain": {
			Caller: testOwner,
			BeforeHook: func(t *testing.T, state contract.StateDB) {
				setOwnerHook(t, state)
				writeGrant(state, grantSlot(testGrantee, testProgram), basicGrant(0))
				writeGrant(state, grantSlot(testGrantee, common.Address{}), basicGrant(0))
				state.SetState(ContractAddress, granteeCounterSlot(testGrantee), word(2))
				state.SetState(testGrantee, GranteeFlagSlot, contract.TrueWord)
			},
			Input:       PackRevokeFeeGrant(testGrantee, testProgram),
			SuppliedGas: RevokeFeeGrantGasCost,
			ExpectedRes: contract.PackBool(true),
			AfterHook: func(t *testing.T, state contract.StateDB) {
				requireNoGrant(t, state, testProgram)
				require.True(t, IsGrantedForAllProgram(state, testGrantee))
				require.Equal(t, word(1), state.GetState(ContractAddress, granteeCounterSlot(testGrantee)))
				require.Equal(t, contract.TrueWord, state.GetState(testGrantee, GranteeFlagSlot))
			},
		},
		"revokeFeeGrant rejects absent grant": {
			Caller:      testOwner,
			BeforeHook:  setOwnerHook,
			Input:       PackRevokeFeeGrant(testGrantee, testProgram),
			SuppliedGas: RevokeFeeGrantGasCost,
			ExpectedRes: contract.PackBool(false),
		},
		"revokeFeeGrant rejects zero grantee": {
			Caller:      testOwner,
			BeforeHook:  setOwnerHook,
			Input:       PackRevokeFeeGrant(common.Address{}, testProgram),
			SuppliedGas: RevokeFeeGrantGasCost,
			ExpectedRes: contract.PackBool(false),
		},
		"revokeFeeGrant rejects non owner": {
			Caller:      testNoRole,
			BeforeHook:  seedGrantHook(testProgram, basicGrant(0)),
			Input:       PackRevokeFeeGrant(testGrantee, testProgram),
			SuppliedGas: RevokeFeeGrantGasCost,
			ExpectedRes: contract.PackBool(false),
			AfterHook: func(t *testing.T, state contract.StateDB) {
				require.True(t, IsGrantedForProgram(state, testGrantee, testProgram))
			},
		},
		"revokeFeeGrant rejects static call": {
			Caller:      testOwner,
			BeforeHook:  seedGrantHook(testProgram, basicGrant(0)),
			Input:       PackRevokeFeeGrant(testGrantee, testProgram),
			SuppliedGas: RevokeFeeGrantGasCost,
			ReadOnly:    true,
			ExpectedRes: contract.PackBool(false),
			AfterHook: func(t *testing.T, state contract.StateDB) {
				require.True(t, IsGrantedForProgram(state, testGrantee, testProgram))
			},
		},
		"periodReset returns current period boundary": {
			Caller:      testNoRole,
			BeforeHook:  seedGrantHook(testProgram, periodicGrant(460, 100, 118, 200, 10)),
			Input:       PackPeriodReset(testGrantee, testProgram),
			SuppliedGas: PeriodResetGasCost,
			BlockNumber: 125,
			ExpectedRes: word(120).Bytes(),
		},
		"periodReset at start block": {
			Caller:      testNoRole,
			BeforeHook:  seedGrantHook(testProgram, periodicGrant(460, 100, 100, 200, 10)),
			Input:       PackPeriodReset(testGrantee, testProgram),
			SuppliedGas: PeriodResetGasCost,
			BlockNumber: 100,
			ExpectedRes: word(100).Bytes(),
		},
		"periodReset for basic grant is zero": {
			Caller:      testNoRole,
			BeforeHook:  seedGrantHook(testProgram, basicGrant(200)),
			Input:       PackPeriodReset(testGrantee, testProgram),
			SuppliedGas: PeriodResetGasCost,
			BlockNumber: 125,
			ExpectedRes: common.Hash{}.Bytes(),
		},
		"periodCanSpend returns stored amount within period": {
			Caller:      testNoRole,
			BeforeHook:  seedGrantHook(testProgram, periodicGrant(460, 100, 118, 200, 10)),
			Input:       PackPeriodCanSpend(testGrantee, testProgram),
			SuppliedGas: PeriodCanSpendGasCost,
			BlockNumber: 125,
			ExpectedRes: word(460).Bytes(),
		},
		"periodCanSpend refreshes after idle period": {
			Caller:      testNoRole,
			BeforeHook:  seedGrantHook(testProgram, periodicGrant(460, 100, 105, 200, 10)),
			Input:       PackPeriodCanSpend(testGrantee, testProgram),
			SuppliedGas: PeriodCanSpendGasCost,
			BlockNumber: 125,
			ExpectedRes: word(500).Bytes(),
		},
		"periodCanSpend for basic grant is zero": {
			Caller:      testNoRole,
			BeforeHook:  seedGrantHook(testProgram, basicGrant(200)),
			Input:       PackPeriodCanSpend(testGrantee, testProgram),
			SuppliedGas: PeriodCanSpendGasCost,
			BlockNumber: 125,
			ExpectedRes: common.Hash{}.Bytes(),
		},
		"all-program grant shadows per program queries": {
			Caller:      testNoRole,
			BeforeHook:  seedGrantHook(common.Address{}, periodicGrant(460, 100, 118, 200, 10)),
			Input:       PackPeriodCanSpend(testGrantee, testProgram),
			SuppliedGas: PeriodCanSpendGasCost,
			BlockNumber: 125,
			ExpectedRes: word(460).Bytes(),
		},
		"isExpired true for missing grant": {
			Caller:      testNoRole,
			Input:       PackIsExpired(testGrantee, testProgram),
			SuppliedGas: IsExpiredGasCost,
			BlockNumber: 125,
			ExpectedRes: contract.PackBool(true),
		},
		"isExpired false before end block": {
			Caller:      testNoRole,
			BeforeHook:  seedGrantHook(testProgram, basicGrant(200)),
			Input:       PackIsExpired(testGrantee, testProgram),
			SuppliedGas: IsExpiredGasCost,
			BlockNumber: 199,
			ExpectedRes: contract.PackBool(false),
		},
		"isExpired true at end block": {
			Caller:      testNoRole,
			BeforeHook:  seedGrantHook(testProgram, basicGrant(200)),
			Input:       PackIsExpired(testGrantee, testProgram),
			SuppliedGas: IsExpiredGasCost,
			BlockNumber: 200,
			ExpectedRes: contract.PackBool(true),
		},
		"isExpired false with no end block": {
			Caller:      testNoRole,
			BeforeHook:  seedGrantHook(testProgram, basicGrant(0)),
			Input:       PackIsExpired(testGrantee, testProgram),
			SuppliedGas: IsExpiredGasCost,
			BlockNumber: 1_000_000,
			ExpectedRes: contract.PackBool(false),
		},
		"grant returns record with live period allowance": {
			Caller:      testNoRole,
			BeforeHook:  seedGrantHook(testProgram, periodicGrant(460, 100, 105, 200, 10)),
			Input:       PackGrant(testGrantee, testProgram),
			SuppliedGas: GrantGasCost,
			BlockNumber: 125,
			ExpectedRes: packWords(
				testGranter.Hash(), allowancePeriodic, word(100), word(500),
				word(500), word(100), word(200), word(105), word(10),
			),
		},
		"grant for unknown grantee returns empty record": {
			Caller:      testNoRole,
			Input:       PackGrant(testGrantee, testProgram),
			SuppliedGas: GrantGasCost,
			BlockNumber: 125,
			ExpectedRes: make([]byte, grantRecordWords*common.HashLength),
		},
		"grant rejects short argument": {
			Caller:      testNoRole,
			Input:       packGrantInput(grantSignature, testGrantee.Hash()),
			SuppliedGas: GrantGasCost,
			ExpectedRes: contract.PackBool(false),
		},
		"isGrantedForProgram true when granted": {
			Caller:      testNoRole,
			BeforeHook:  seedGrantHook(testProgram, basicGrant(0)),
			Input:       PackIsGrantedForProgram(testGrantee, testProgram),
			SuppliedGas: IsGrantedForProgramGasCost,
			ExpectedRes: contract.PackBool(true),
		},
		"isGrantedForProgram false without grant": {
			Caller:      testNoRole,
			Input:       PackIsGrantedForProgram(testGrantee, testProgram),
			SuppliedGas: IsGrantedForProgramGasCost,
			ExpectedRes: contract.PackBool(false),
		},
		"isGrantedForAllProgram reflects zero program record": {
			Caller:      testNoRole,
			BeforeHook:  seedGrantHook(common.Address{}, basicGrant(0)),
			Input:       PackIsGrantedForAllProgram(testGrantee),
			SuppliedGas: IsGrantedForAllProgramGasCost,
			ExpectedRes: contract.PackBool(true),
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

// TestGrantSlots checks the record addressing: nine consecutive slots per
// record, distinct roots per grantee and program pair.
func TestGrantSlots(t *testing.T) {
	require := require.New(t)

	root := grantSlot(testGrantee, testProgram)
	next := new(uint256.Int).SetBytes32(root.Bytes())
	next.AddUint64(next, 1)
	require.Equal(common.Hash(next.Bytes32()), recordSlot(root, allowanceOffset))
	require.Equal(root, recordSlot(root, granterOffset))

	require.NotEqual(root, grantSlot(testGrantee, common.Address{}))
	require.NotEqual(root, grantSlot(testGranter, testProgram))
	require.NotEqual(grantSlot(testGrantee, common.Address{}), granteeCounterSlot(testGrantee))
}

func TestFunctionSignatures(t *testing.T) {
	require := require.New(t)

	for name, signature := range map[string][]byte{
		"grant":                  grantSignature,
		"periodCanSpend":         periodCanSpendSignature,
		"periodReset":            periodResetSignature,
		"isExpired":              isExpiredSignature,
		"isGrantedForProgram":    isGrantedForProgramSignature,
		"isGrantedForAllProgram": isGrantedForAllProgramSignature,
		"setFeeGrant":            setFeeGrantSignature,
		"revokeFeeGrant":         revokeFeeGrantSignature,
		"owner":                  ownable.OwnerSignature,
		"initialized":            ownable.InitializedSignature,
		"initializeOwner":        ownable.InitializeOwnerSignature,
		"transferOwnership":      ownable.TransferOwnershipSignature,
	} {
		method, ok := GasFeeGrantABI.Methods[name]
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
