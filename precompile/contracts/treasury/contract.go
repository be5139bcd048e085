// (c) 2024-2025, Kiwari Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package treasury

import (
	_ "embed"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Kiwari-Labs/go-precompiles/precompile/contract"
	"github.com/Kiwari-Labs/go-precompiles/precompile/ownable"
)

const (
	TreasuryAtGasCost  uint64 = 1000
	SetTreasuryGasCost uint64 = 2000
)

// Singleton StatefulPrecompiledContract for the treasury registry.
var (
	TreasuryRegistryPrecompile contract.StatefulPrecompiledContract = createTreasuryRegistryPrecompile()

	treasuryAtSignature  = contract.CalculateFunctionSelector("treasuryAt()")
	setTreasurySignature = contract.CalculateFunctionSelector("setTreasury(address)")

	// treasurySlot follows the ownable slots 0 and 1.
	treasurySlot = common.BigToHash(common.Big2)

	//go:embed contract.abi
	TreasuryRegistryRawABI string

	TreasuryRegistryABI = contract.ParseABI(TreasuryRegistryRawABI)
)

// GetTreasury reads the stored treasury address. The zero address means none
// has been registered.
func GetTreasury(stateDB contract.StateDB) common.Address {
	return common.BytesToAddress(stateDB.GetState(ContractAddress, treasurySlot).Bytes())
}

// SetTreasury stores [treasury] in the contract storage.
func SetTreasury(stateDB contract.StateDB, treasury common.Address) {
	stateDB.SetState(ContractAddress, treasurySlot, treasury.Hash())
}

// PackTreasuryAt packs a treasuryAt() call.
func PackTreasuryAt() []byte {
	return treasuryAtSignature
}

// PackSetTreasury packs a setTreasury(address) call.
func PackSetTreasury(treasury common.Address) []byte {
	input := make([]byte, len(setTreasurySignature)+common.HashLength)
	// the buffer is sized above, so packing cannot fail
	_ = contract.PackOrderedHashesWithSelector(input, setTreasurySignature, []common.Hash{treasury.Hash()})
	return input
}

func treasuryAt(accessibleState contract.AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) (ret []byte, remainingGas uint64, err error) {
	if remainingGas, err = contract.DeductGas(suppliedGas, TreasuryAtGasCost); err != nil {
		return nil, 0, err
	}

	return accessibleState.GetStateDB().GetState(ContractAddress, treasurySlot).Bytes(), remainingGas, nil
}

func setTreasury(accessibleState contract.AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) (ret []byte, remainingGas uint64, err error) {
	if remainingGas, err = contract.DeductGas(suppliedGas, SetTreasuryGasCost); err != nil {
		return nil, 0, err
	}
	if readOnly || len(input) != common.HashLength {
		return contract.PackBool(false), remainingGas, nil
	}

	stateDB := accessibleState.GetStateDB()
	if !ownable.IsOwner(stateDB, ContractAddress, caller) {
		return contract.PackBool(false), remainingGas, nil
	}

	treasury := common.BytesToAddress(input)
	if treasury == (common.Address{}) {
		return contract.PackBool(false), remainingGas, nil
	}

	SetTreasury(stateDB, treasury)
	return contract.PackBool(true), remainingGas, nil
}

// createTreasuryRegistryPrecompile returns the StatefulPrecompiledContract
// for the treasury registry. The contract owner points the chain at the
// account collecting protocol revenue.
func createTreasuryRegistryPrecompile() contract.StatefulPrecompiledContract {
	var functions []*contract.StatefulPrecompileFunction
	functions = append(functions, ownable.CreateOwnableFunctions()...)
	functions = append(functions,
		contract.NewStatefulPrecompileFunction(treasuryAtSignature, TreasuryAtGasCost, treasuryAt),
		contract.NewStatefulPrecompileFunction(setTreasurySignature, SetTreasuryGasCost, setTreasury),
	)
	return contract.NewStatefulPrecompileContract(nil, functions)
}
