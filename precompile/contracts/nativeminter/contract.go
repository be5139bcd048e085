// (c) 2024-2025, Kiwari Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package nativeminter

import (
	_ "embed"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Kiwari-Labs/go-precompiles/precompile/contract"
	"github.com/Kiwari-Labs/go-precompiles/precompile/ownable"
)

const MintGasCost uint64 = 2300

// Singleton StatefulPrecompiledContract for minting native assets.
var (
	NativeMinterPrecompile contract.StatefulPrecompiledContract = createNativeMinterPrecompile()

	mintSignature = contract.CalculateFunctionSelector("mint(address,uint256)")

	//go:embed contract.abi
	NativeMinterRawABI string

	NativeMinterABI = contract.ParseABI(NativeMinterRawABI)
)

// PackMint packs a mint(address,uint256) call crediting [amount] wei to [to].
func PackMint(to common.Address, amount common.Hash) []byte {
	input := make([]byte, len(mintSignature)+2*common.HashLength)
	// the buffer is sized above, so packing cannot fail
	_ = contract.PackOrderedHashesWithSelector(input, mintSignature, []common.Hash{to.Hash(), amount})
	return input
}

func mint(accessibleState contract.AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) (ret []byte, remainingGas uint64, err error) {
	if remainingGas, err = contract.DeductGas(suppliedGas, MintGasCost); err != nil {
		return nil, 0, err
	}
	if readOnly || len(input) != 2*common.HashLength {
		return contract.PackBool(false), remainingGas, nil
	}

	stateDB := accessibleState.GetStateDB()
	if !ownable.IsOwner(stateDB, ContractAddress, caller) {
		return contract.PackBool(false), remainingGas, nil
	}

	to := common.BytesToAddress(input[:common.HashLength])
	amount := common.BytesToHash(input[common.HashLength:])
	if to == (common.Address{}) {
		return contract.PackBool(false), remainingGas, nil
	}

	// Credits to fresh addresses must materialize the account first.
	if !stateDB.Exist(to) {
		stateDB.CreateAccount(to)
	}
	stateDB.AddBalance(to, amount.Big())
	return contract.PackBool(true), remainingGas, nil
}

// createNativeMinterPrecompile returns the StatefulPrecompiledContract for
// minting native assets. The contract owner credits native balance out of
// thin air, the only inflation path the chain has.
func createNativeMinterPrecompile() contract.StatefulPrecompiledContract {
	var functions []*contract.StatefulPrecompileFunction
	functions = append(functions, ownable.CreateOwnableFunctions()...)
	functions = append(functions,
		contract.NewStatefulPrecompileFunction(mintSignature, MintGasCost, mint),
	)
	return contract.NewStatefulPrecompileContract(nil, functions)
}
