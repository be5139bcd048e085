// (c) 2024-2025, Kiwari Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package feegrant

import (
	_ "embed"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	"github.com/Kiwari-Labs/go-precompiles/precompile/contract"
	"github.com/Kiwari-Labs/go-precompiles/precompile/ownable"
)

const (
	GrantGasCost                  uint64 = 1000
	PeriodCanSpendGasCost         uint64 = 1000
	PeriodResetGasCost            uint64 = 1000
	IsExpiredGasCost              uint64 = 1000
	IsGrantedForProgramGasCost    uint64 = 1000
	IsGrantedForAllProgramGasCost uint64 = 1000
	SetFeeGrantGasCost            uint64 = 2000
	RevokeFeeGrantGasCost         uint64 = 2000
)

// Offsets of the record words from the grant root slot.
const (
	granterOffset = iota
	allowanceOffset
	spendLimitOffset
	periodLimitOffset
	periodCanSpendOffset
	startBlockOffset
	endBlockOffset
	latestTxOffset
	periodLengthOffset
	grantRecordWords
)

// Singleton StatefulPrecompiledContract for gas fee grants.
var (
	GasFeeGrantPrecompile contract.StatefulPrecompiledContract = createGasFeeGrantPrecompile()

	grantSignature                  = contract.CalculateFunctionSelector("grant(address,address)")
	periodCanSpendSignature         = contract.CalculateFunctionSelector("periodCanSpend(address,address)")
	periodResetSignature            = contract.CalculateFunctionSelector("periodReset(address,address)")
	isExpiredSignature              = contract.CalculateFunctionSelector("isExpired(address,address)")
	isGrantedForProgramSignature    = contract.CalculateFunctionSelector("isGrantedForProgram(address,address)")
	isGrantedForAllProgramSignature = contract.CalculateFunctionSelector("isGrantedForAllProgram(address)")
	setFeeGrantSignature            = contract.CalculateFunctionSelector("setFeeGrant(address,address,address,uint256,uint32,uint256,uint256)")
	revokeFeeGrantSignature         = contract.CalculateFunctionSelector("revokeFeeGrant(address,address)")

	// grantsSlot roots the grantee => program => record double mapping and
	// counterSlot the per grantee live grant counter. Slots 0 and 1 are
	// reserved by the ownable layout.
	grantsSlot  = common.BigToHash(common.Big2)
	counterSlot = common.BigToHash(common.Big3)

	// GranteeFlagSlot is written in the grantee's own account to mark that at
	// least one fee grant covers it, so fee charging can probe a single slot.
	// The constant is an eip-7201 style derivation of "feegrant.flag".
	GranteeFlagSlot = common.HexToHash("0x330bb6449068d17e3815a045685a05a106741a6e960986b3c72eb86cb692da00")

	// Allowance kinds stored in the allowance record word.
	allowanceBasic    = common.Hash(uint256.NewInt(1).Bytes32())
	allowancePeriodic = common.Hash(uint256.NewInt(2).Bytes32())

	//go:embed contract.abi
	GasFeeGrantRawABI string

	GasFeeGrantABI = contract.ParseABI(GasFeeGrantRawABI)
)

// Grant is the decoded nine word record of a single fee grant.
type Grant struct {
	Granter        common.Hash
	Allowance      common.Hash
	SpendLimit     common.Hash
	PeriodLimit    common.Hash
	PeriodCanSpend common.Hash
	StartBlock     common.Hash
	EndBlock       common.Hash
	LatestTxBlock  common.Hash
	PeriodLength   common.Hash
}

func (g Grant) words() []common.Hash {
	return []common.Hash{
		g.Granter, g.Allowance, g.SpendLimit, g.PeriodLimit, g.PeriodCanSpend,
		g.StartBlock, g.EndBlock, g.LatestTxBlock, g.PeriodLength,
	}
}

// grantSlot returns the root slot of the record for [grantee] under
// [program]. The zero program addresses the record covering all programs.
func grantSlot(grantee common.Address, program common.Address) common.Hash {
	granteeRoot := crypto.Keccak256(grantsSlot.Bytes(), grantee.Hash().Bytes())
	return crypto.Keccak256Hash(granteeRoot, program.Hash().Bytes())
}

// recordSlot returns the [offset]th word slot of the record rooted at [root].
func recordSlot(root common.Hash, offset uint64) common.Hash {
	slot := new(uint256.Int).SetBytes32(root.Bytes())
	slot.AddUint64(slot, offset)
	return common.Hash(slot.Bytes32())
}

// granteeCounterSlot returns the slot counting [grantee]'s live grants.
func granteeCounterSlot(grantee common.Address) common.Hash {
	return crypto.Keccak256Hash(counterSlot.Bytes(), grantee.Hash().Bytes())
}

func readRecordWord(stateDB contract.StateDB, root common.Hash, offset uint64) common.Hash {
	return stateDB.GetState(ContractAddress, recordSlot(root, offset))
}

// GetGrant reads the stored record for [grantee] under [program]. The
// PeriodCanSpend field is the raw stored word; [PeriodCanSpend] computes the
// live value for the current block.
func GetGrant(stateDB contract.StateDB, grantee common.Address, program common.Address) Grant {
	root := grantSlot(grantee, program)
	return Grant{
		Granter:        readRecordWord(stateDB, root, granterOffset),
		Allowance:      readRecordWord(stateDB, root, allowanceOffset),
		SpendLimit:     readRecordWord(stateDB, root, spendLimitOffset),
		PeriodLimit:    readRecordWord(stateDB, root, periodLimitOffset),
		PeriodCanSpend: readRecordWord(stateDB, root, periodCanSpendOffset),
		StartBlock:     readRecordWord(stateDB, root, startBlockOffset),
		EndBlock:       readRecordWord(stateDB, root, endBlockOffset),
		LatestTxBlock:  readRecordWord(stateDB, root, latestTxOffset),
		PeriodLength:   readRecordWord(stateDB, root, periodLengthOffset),
	}
}

func writeGrant(stateDB contract.StateDB, root common.Hash, record Grant) {
	for offset, word := range record.words() {
		stateDB.SetState(ContractAddress, recordSlot(root, uint64(offset)), word)
	}
}

// IsGrantedForProgram returns whether a live grant covers [grantee] under
// [program].
func IsGrantedForProgram(stateDB contract.StateDB, grantee common.Address, program common.Address) bool {
	root := grantSlot(grantee, program)
	return readRecordWord(stateDB, root, allowanceOffset) != (common.Hash{})
}

// IsGrantedForAllProgram returns whether [grantee] holds the grant covering
// all programs.
func IsGrantedForAllProgram(stateDB contract.StateDB, grantee common.Address) bool {
	return IsGrantedForProgram(stateDB, grantee, common.Address{})
}

// effectiveProgram redirects to the all-program record when [grantee] holds a
// periodic grant covering every program. Such a grant shadows per program
// records for the period arithmetic.
func effectiveProgram(stateDB contract.StateDB, grantee common.Address, program common.Address) common.Address {
	root := grantSlot(grantee, common.Address{})
	if readRecordWord(stateDB, root, allowanceOffset) == allowancePeriodic {
		return common.Address{}
	}
	return program
}

// PeriodReset returns the block number opening the current period of
// [grantee]'s periodic grant under [program]: the latest whole-period
// boundary counted from the start block that is not after [blockNumber].
// The zero word means no periodic grant applies.
func PeriodReset(stateDB contract.StateDB, grantee common.Address, program common.Address, blockNumber *big.Int) common.Hash {
	program = effectiveProgram(stateDB, grantee, program)
	root := grantSlot(grantee, program)
	if readRecordWord(stateDB, root, allowanceOffset) != allowancePeriodic {
		return common.Hash{}
	}

	reset := new(uint256.Int).SetBytes32(readRecordWord(stateDB, root, startBlockOffset).Bytes())
	period := new(uint256.Int).SetBytes32(readRecordWord(stateDB, root, periodLengthOffset).Bytes())
	now, _ := uint256.FromBig(blockNumber)

	cycles := new(uint256.Int).Sub(now, reset)
	cycles.Div(cycles, period)
	if !cycles.IsZero() {
		reset.Add(reset, cycles.Mul(cycles, period))
	}
	return common.Hash(reset.Bytes32())
}

// PeriodCanSpend returns what remains spendable in the current period for
// [grantee] under [program] at [blockNumber]. A whole period without a
// transaction refreshes the budget to the period limit. The zero word means
// no periodic grant applies.
func PeriodCanSpend(stateDB contract.StateDB, grantee common.Address, program common.Address, blockNumber *big.Int) common.Hash {
	program = effectiveProgram(stateDB, grantee, program)
	root := grantSlot(grantee, program)
	if readRecordWord(stateDB, root, allowanceOffset) != allowancePeriodic {
		return common.Hash{}
	}

	latest := new(uint256.Int).SetBytes32(readRecordWord(stateDB, root, latestTxOffset).Bytes())
	period := new(uint256.Int).SetBytes32(readRecordWord(stateDB, root, periodLengthOffset).Bytes())
	reset := new(uint256.Int).SetBytes32(PeriodReset(stateDB, grantee, program, blockNumber).Bytes())

	if new(uint256.Int).Add(latest, period).Cmp(reset) < 0 {
		return readRecordWord(stateDB, root, periodLimitOffset)
	}
	return readRecordWord(stateDB, root, periodCanSpendOffset)
}

// IsExpired reports whether the grant for [grantee] under [program] has
// passed its end block at [blockNumber]. A missing grant counts as expired
// and a zero end block never expires.
func IsExpired(stateDB contract.StateDB, grantee common.Address, program common.Address, blockNumber *big.Int) bool {
	root := grantSlot(grantee, program)
	if readRecordWord(stateDB, root, allowanceOffset) == (common.Hash{}) {
		return true
	}
	end := new(uint256.Int).SetBytes32(readRecordWord(stateDB, root, endBlockOffset).Bytes())
	if end.IsZero() {
		return false
	}
	now, _ := uint256.FromBig(blockNumber)
	return now.Cmp(end) >= 0
}

func packGrantInput(selector []byte, words ...common.Hash) []byte {
	input := make([]byte, len(selector)+len(words)*common.HashLength)
	// the buffer is sized above, so packing cannot fail
	_ = contract.PackOrderedHashesWithSelector(input, selector, words)
	return input
}

// PackGrant packs a grant(address,address) call.
func PackGrant(grantee common.Address, program common.Address) []byte {
	return packGrantInput(grantSignature, grantee.Hash(), program.Hash())
}

// PackPeriodCanSpend packs a periodCanSpend(address,address) call.
func PackPeriodCanSpend(grantee common.Address, program common.Address) []byte {
	return packGrantInput(periodCanSpendSignature, grantee.Hash(), program.Hash())
}

// PackPeriodReset packs a periodReset(address,address) call.
func PackPeriodReset(grantee common.Address, program common.Address) []byte {
	return packGrantInput(periodResetSignature, grantee.Hash(), program.Hash())
}

// PackIsExpired packs an isExpired(address,address) call.
func PackIsExpired(grantee common.Address, program common.Address) []byte {
	return packGrantInput(isExpiredSignature, grantee.Hash(), program.Hash())
}

// PackIsGrantedForProgram packs an isGrantedForProgram(address,address) call.
func PackIsGrantedForProgram(grantee common.Address, program common.Address) []byte {
	return packGrantInput(isGrantedForProgramSignature, grantee.Hash(), program.Hash())
}

// PackIsGrantedForAllProgram packs an isGrantedForAllProgram(address) call.
func PackIsGrantedForAllProgram(grantee common.Address) []byte {
	return packGrantInput(isGrantedForAllProgramSignature, grantee.Hash())
}

// PackSetFeeGrant packs a setFeeGrant call. A zero [period] or zero
// [periodLimit] makes the grant basic, otherwise periodic.
func PackSetFeeGrant(granter common.Address, grantee common.Address, program common.Address, spendLimit common.Hash, period uint32, periodLimit common.Hash, endBlock common.Hash) []byte {
	periodWord := common.Hash(uint256.NewInt(uint64(period)).Bytes32())
	return packGrantInput(setFeeGrantSignature,
		granter.Hash(), grantee.Hash(), program.Hash(),
		spendLimit, periodWord, periodLimit, endBlock)
}

// PackRevokeFeeGrant packs a revokeFeeGrant(address,address) call.
func PackRevokeFeeGrant(grantee common.Address, program common.Address) []byte {
	return packGrantInput(revokeFeeGrantSignature, grantee.Hash(), program.Hash())
}

func grant(accessibleState contract.AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) (ret []byte, remainingGas uint64, err error) {
	if remainingGas, err = contract.DeductGas(suppliedGas, GrantGasCost); err != nil {
		return nil, 0, err
	}
	if len(input) != 2*common.HashLength {
		return contract.PackBool(false), remainingGas, nil
	}

	grantee := common.BytesToAddress(input[:common.HashLength])
	program := common.BytesToAddress(input[common.HashLength:])
	stateDB := accessibleState.GetStateDB()

	record := GetGrant(stateDB, grantee, program)
	record.PeriodCanSpend = PeriodCanSpend(stateDB, grantee, program, accessibleState.GetBlockContext().Number())

	packed := make([]byte, 0, grantRecordWords*common.HashLength)
	for _, word := range record.words() {
		packed = append(packed, word.Bytes()...)
	}
	return packed, remainingGas, nil
}

func periodCanSpend(accessibleState contract.AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) (ret []byte, remainingGas uint64, err error) {
	if remainingGas, err = contract.DeductGas(suppliedGas, PeriodCanSpendGasCost); err != nil {
		return nil, 0, err
	}
	if len(input) != 2*common.HashLength {
		return contract.PackBool(false), remainingGas, nil
	}

	grantee := common.BytesToAddress(input[:common.HashLength])
	program := common.BytesToAddress(input[common.HashLength:])
	canSpend := PeriodCanSpend(accessibleState.GetStateDB(), grantee, program, accessibleState.GetBlockContext().Number())
	return canSpend.Bytes(), remainingGas, nil
}

func periodReset(accessibleState contract.AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) (ret []byte, remainingGas uint64, err error) {
	if remainingGas, err = contract.DeductGas(suppliedGas, PeriodResetGasCost); err != nil {
		return nil, 0, err
	}
	if len(input) != 2*common.HashLength {
		return contract.PackBool(false), remainingGas, nil
	}

	grantee := common.BytesToAddress(input[:common.HashLength])
	program := common.BytesToAddress(input[common.HashLength:])
	reset := PeriodReset(accessibleState.GetStateDB(), grantee, program, accessibleState.GetBlockContext().Number())
	return reset.Bytes(), remainingGas, nil
}

func isExpired(accessibleState contract.AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) (ret []byte, remainingGas uint64, err error) {
	if remainingGas, err = contract.DeductGas(suppliedGas, IsExpiredGasCost); err != nil {
		return nil, 0, err
	}
	if len(input) != 2*common.HashLength {
		return contract.PackBool(false), remainingGas, nil
	}

	grantee := common.BytesToAddress(input[:common.HashLength])
	program := common.BytesToAddress(input[common.HashLength:])
	expired := IsExpired(accessibleState.GetStateDB(), grantee, program, accessibleState.GetBlockContext().Number())
	return contract.PackBool(expired), remainingGas, nil
}

func isGrantedForProgram(accessibleState contract.AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) (ret []byte, remainingGas uint64, err error) {
	if remainingGas, err = contract.DeductGas(suppliedGas, IsGrantedForProgramGasCost); err != nil {
		return nil, 0, err
	}
	if len(input) != 2*common.HashLength {
		return contract.PackBool(false), remainingGas, nil
	}

	grantee := common.BytesToAddress(input[:common.HashLength])
	program := common.BytesToAddress(input[common.HashLength:])
	granted := IsGrantedForProgram(accessibleState.GetStateDB(), grantee, program)
	return contract.PackBool(granted), remainingGas, nil
}

func isGrantedForAllProgram(accessibleState contract.AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) (ret []byte, remainingGas uint64, err error) {
	if remainingGas, err = contract.DeductGas(suppliedGas, IsGrantedForAllProgramGasCost); err != nil {
		return nil, 0, err
	}
	if len(input) != common.HashLength {
		return contract.PackBool(false), remainingGas, nil
	}

	grantee := common.BytesToAddress(input)
	granted := IsGrantedForAllProgram(accessibleState.GetStateDB(), grantee)
	return contract.PackBool(granted), remainingGas, nil
}

func setFeeGrant(accessibleState contract.AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) (ret []byte, remainingGas uint64, err error) {
	if remainingGas, err = contract.DeductGas(suppliedGas, SetFeeGrantGasCost); err != nil {
		return nil, 0, err
	}
	if readOnly || len(input) != 7*common.HashLength {
		return contract.PackBool(false), remainingGas, nil
	}

	stateDB := accessibleState.GetStateDB()
	if !ownable.IsOwner(stateDB, ContractAddress, caller) {
		return contract.PackBool(false), remainingGas, nil
	}

	granter := common.BytesToAddress(input[:common.HashLength])
	grantee := common.BytesToAddress(input[common.HashLength : 2*common.HashLength])
	program := common.BytesToAddress(input[2*common.HashLength : 3*common.HashLength])
	spendLimit := common.BytesToHash(input[3*common.HashLength : 4*common.HashLength])
	period := common.BytesToHash(input[4*common.HashLength : 5*common.HashLength])
	periodLimit := common.BytesToHash(input[5*common.HashLength : 6*common.HashLength])
	endBlock := common.BytesToHash(input[6*common.HashLength:])

	if granter == (common.Address{}) || grantee == (common.Address{}) || spendLimit == (common.Hash{}) {
		return contract.PackBool(false), remainingGas, nil
	}
	// One live grant per grantee and program; revoke before replacing.
	if IsGrantedForProgram(stateDB, grantee, program) {
		return contract.PackBool(false), remainingGas, nil
	}

	allowance := allowanceBasic
	if period != (common.Hash{}) && periodLimit != (common.Hash{}) {
		// The per transaction limit cannot exceed the per period budget.
		spend := new(uint256.Int).SetBytes32(spendLimit.Bytes())
		budget := new(uint256.Int).SetBytes32(periodLimit.Bytes())
		if spend.Cmp(budget) > 0 {
			return contract.PackBool(false), remainingGas, nil
		}
		allowance = allowancePeriodic
	}

	blockNumber := common.BigToHash(accessibleState.GetBlockContext().Number())

	// The flag lives in the grantee's account, which may not exist yet.
	ownable.InitializeAccount(stateDB, grantee)
	stateDB.SetState(grantee, GranteeFlagSlot, contract.TrueWord)

	writeGrant(stateDB, grantSlot(grantee, program), Grant{
		Granter:        granter.Hash(),
		Allowance:      allowance,
		SpendLimit:     spendLimit,
		PeriodLimit:    periodLimit,
		PeriodCanSpend: periodLimit,
		StartBlock:     blockNumber,
		EndBlock:       endBlock,
		LatestTxBlock:  blockNumber,
		PeriodLength:   period,
	})

	counterKey := granteeCounterSlot(grantee)
	counter := new(uint256.Int).SetBytes32(stateDB.GetState(ContractAddress, counterKey).Bytes())
	counter.AddUint64(counter, 1)
	stateDB.SetState(ContractAddress, counterKey, common.Hash(counter.Bytes32()))
	return contract.PackBool(true), remainingGas, nil
}

func revokeFeeGrant(accessibleState contract.AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) (ret []byte, remainingGas uint64, err error) {
	if remainingGas, err = contract.DeductGas(suppliedGas, RevokeFeeGrantGasCost); err != nil {
		return nil, 0, err
	}
	if readOnly || len(input) != 2*common.HashLength {
		return contract.PackBool(false), remainingGas, nil
	}

	stateDB := accessibleState.GetStateDB()
	if !ownable.IsOwner(stateDB, ContractAddress, caller) {
		return contract.PackBool(false), remainingGas, nil
	}

	grantee := common.BytesToAddress(input[:common.HashLength])
	program := common.BytesToAddress(input[common.HashLength:])
	if grantee == (common.Address{}) {
		return contract.PackBool(false), remainingGas, nil
	}
	// Revoking an absent grant would corrupt the live grant counter.
	if !IsGrantedForProgram(stateDB, grantee, program) {
		return contract.PackBool(false), remainingGas, nil
	}

	writeGrant(stateDB, grantSlot(grantee, program), Grant{})

	counterKey := granteeCounterSlot(grantee)
	counter := new(uint256.Int).SetBytes32(stateDB.GetState(ContractAddress, counterKey).Bytes())
	if !counter.IsZero() {
		counter.SubUint64(counter, 1)
	}
	stateDB.SetState(ContractAddress, counterKey, common.Hash(counter.Bytes32()))
	if counter.IsZero() {
		stateDB.SetState(grantee, GranteeFlagSlot, common.Hash{})
	}
	return contract.PackBool(true), remainingGas, nil
}

// createGasFeeGrantPrecompile returns the StatefulPrecompiledContract for gas
// fee grants. The contract owner hands out basic or periodic fee allowances
// to grantee accounts, scoped to a program address or to all programs.
func createGasFeeGrantPrecompile() contract.StatefulPrecompiledContract {
	var functions []*contract.StatefulPrecompileFunction
	functions = append(functions, ownable.CreateOwnableFunctions()...)
	functions = append(functions,
		contract.NewStatefulPrecompileFunction(grantSignature, GrantGasCost, grant),
		contract.NewStatefulPrecompileFunction(periodCanSpendSignature, PeriodCanSpendGasCost, periodCanSpend),
		contract.NewStatefulPrecompileFunction(periodResetSignature, PeriodResetGasCost, periodReset),
		contract.NewStatefulPrecompileFunction(isExpiredSignature, IsExpiredGasCost, isExpired),
		contract.NewStatefulPrecompileFunction(isGrantedForProgramSignature, IsGrantedForProgramGasCost, isGrantedForProgram),
		contract.NewStatefulPrecompileFunction(isGrantedForAllProgramSignature, IsGrantedForAllProgramGasCost, isGrantedForAllProgram),
		contract.NewStatefulPrecompileFunction(setFeeGrantSignature, SetFeeGrantGasCost, setFeeGrant),
		contract.NewStatefulPrecompileFunction(revokeFeeGrantSignature, RevokeFeeGrantGasCost, revokeFeeGrant),
	)
	return contract.NewStatefulPrecompileContract(nil, functions)
}
