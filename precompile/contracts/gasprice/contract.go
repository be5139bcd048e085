// (c) 2024-2025, Kiwari Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package gasprice

import (
	_ "embed"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Kiwari-Labs/go-precompiles/precompile/contract"
	"github.com/Kiwari-Labs/go-precompiles/precompile/ownable"
)

const (
	StatusGasCost      uint64 = 1000
	GasPriceGasCost    uint64 = 1000
	EnableGasCost      uint64 = 2000
	DisableGasCost     uint64 = 2000
	SetGasPriceGasCost uint64 = 2000
)

// Singleton StatefulPrecompiledContract for the fixed gas price switch.
var (
	GasPricePrecompile contract.StatefulPrecompiledContract = createGasPricePrecompile()

	statusSignature      = contract.CalculateFunctionSelector("status()")
	gasPriceSignature    = contract.CalculateFunctionSelector("gasPrice()")
	enableSignature      = contract.CalculateFunctionSelector("enable()")
	disableSignature     = contract.CalculateFunctionSelector("disable()")
	setGasPriceSignature = contract.CalculateFunctionSelector("setGasPrice(uint256)")

	// statusSlot and priceSlot follow the ownable slots 0 and 1.
	statusSlot = common.BigToHash(common.Big2)
	priceSlot  = common.BigToHash(common.Big3)

	//go:embed contract.abi
	GasPriceRawABI string

	GasPriceABI = contract.ParseABI(GasPriceRawABI)
)

// IsEnabled returns whether the fixed gas price is switched on.
func IsEnabled(stateDB contract.StateDB) bool {
	return stateDB.GetState(ContractAddress, statusSlot) != (common.Hash{})
}

// SetEnabled switches the fixed gas price on or off.
func SetEnabled(stateDB contract.StateDB, enabled bool) {
	word := common.Hash{}
	if enabled {
		word = contract.TrueWord
	}
	stateDB.SetState(ContractAddress, statusSlot, word)
}

// GetGasPrice reads the stored fixed gas price.
func GetGasPrice(stateDB contract.StateDB) *big.Int {
	return stateDB.GetState(ContractAddress, priceSlot).Big()
}

// SetGasPrice stores [price] as the fixed gas price.
func SetGasPrice(stateDB contract.StateDB, price *big.Int) {
	stateDB.SetState(ContractAddress, priceSlot, common.BigToHash(price))
}

// PackStatus packs a status() call.
func PackStatus() []byte {
	return statusSignature
}

// PackGasPrice packs a gasPrice() call.
func PackGasPrice() []byte {
	return gasPriceSignature
}

// PackEnable packs an enable() call.
func PackEnable() []byte {
	return enableSignature
}

// PackDisable packs a disable() call.
func PackDisable() []byte {
	return disableSignature
}

// PackSetGasPrice packs a setGasPrice(uint256) call.
func PackSetGasPrice(price common.Hash) []byte {
	input := make([]byte, len(setGasPriceSignature)+common.HashLength)
	// the buffer is sized above, so packing cannot fail
	_ = contract.PackOrderedHashesWithSelector(input, setGasPriceSignature, []common.Hash{price})
	return input
}

func status(accessibleState contract.AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) (ret []byte, remainingGas uint64, err error) {
	if remainingGas, err = contract.DeductGas(suppliedGas, StatusGasCost); err != nil {
		return nil, 0, err
	}

	return accessibleState.GetStateDB().GetState(ContractAddress, statusSlot).Bytes(), remainingGas, nil
}

func gasPrice(accessibleState contract.AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) (ret []byte, remainingGas uint64, err error) {
	if remainingGas, err = contract.DeductGas(suppliedGas, GasPriceGasCost); err != nil {
		return nil, 0, err
	}

	return accessibleState.GetStateDB().GetState(ContractAddress, priceSlot).Bytes(), remainingGas, nil
}

func enable(accessibleState contract.AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) (ret []byte, remainingGas uint64, err error) {
	if remainingGas, err = contract.DeductGas(suppliedGas, EnableGasCost); err != nil {
		return nil, 0, err
	}
	if readOnly {
		return contract.PackBool(false), remainingGas, nil
	}

	stateDB := accessibleState.GetStateDB()
	if !ownable.IsOwner(stateDB, ContractAddress, caller) {
		return contract.PackBool(false), remainingGas, nil
	}

	SetEnabled(stateDB, true)
	return contract.PackBool(true), remainingGas, nil
}

func disable(accessibleState contract.AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) (ret []byte, remainingGas uint64, err error) {
	if remainingGas, err = contract.DeductGas(suppliedGas, DisableGasCost); err != nil {
		return nil, 0, err
	}
	if readOnly {
		return contract.PackBool(false), remainingGas, nil
	}

	stateDB := accessibleState.GetStateDB()
	if !ownable.IsOwner(stateDB, ContractAddress, caller) {
		return contract.PackBool(false), remainingGas, nil
	}

	SetEnabled(stateDB, false)
	return contract.PackBool(true), remainingGas, nil
}

func setGasPrice(accessibleState contract.AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) (ret []byte, remainingGas uint64, err error) {
	if remainingGas, err = contract.DeductGas(suppliedGas, SetGasPriceGasCost); err != nil {
		return nil, 0, err
	}
	if readOnly || len(input) != common.HashLength {
		return contract.PackBool(false), remainingGas, nil
	}

	stateDB := accessibleState.GetStateDB()
	if !ownable.IsOwner(stateDB, ContractAddress, caller) {
		return contract.PackBool(false), remainingGas, nil
	}

	// The zero price is valid; disabling goes through status instead.
	stateDB.SetState(ContractAddress, priceSlot, common.BytesToHash(input))
	return contract.PackBool(true), remainingGas, nil
}

// createGasPricePrecompile returns the StatefulPrecompiledContract for the
// fixed gas price switch. The contract owner pins the price the chain charges
// per gas unit and toggles whether the pin is in effect.
func createGasPricePrecompile() contract.StatefulPrecompiledContract {
	var functions []*contract.StatefulPrecompileFunction
	functions = append(functions, ownable.CreateOwnableFunctions()...)
	functions = append(functions,
		contract.NewStatefulPrecompileFunction(statusSignature, StatusGasCost, status),
		contract.NewStatefulPrecompileFunction(gasPriceSignature, GasPriceGasCost, gasPrice),
		contract.NewStatefulPrecompileFunction(enableSignature, EnableGasCost, enable),
		contract.NewStatefulPrecompileFunction(disableSignature, DisableGasCost, disable),
		contract.NewStatefulPrecompileFunction(setGasPriceSignature, SetGasPriceGasCost, setGasPrice),
	)
	return contract.NewStatefulPrecompileContract(nil, functions)
}
