// (c) 2024-2025, Kiwari Labs. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ownable implements the single owner access control primitive shared
// by every contract in the family.
//
// The hosting contract account uses a fixed storage layout:
//
//	slot 0: initialized flag, 0 before the one time owner setup and 1 after
//	slot 1: owner address, left padded to 32 bytes
//
// Ownership is established exactly once through initializeOwner and handed
// over with transferOwnership. Both mutators fail soft, returning the 32 byte
// false word while leaving state untouched, on a static call, a malformed
// argument, a zero candidate, or a caller that is not allowed to perform the
// transition.
package ownable

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/Kiwari-Labs/go-precompiles/precompile/contract"
)

// Gas costs of the access control functions.
const (
	OwnerGasCost             = contract.ReadGasCostPerSlot
	InitializedGasCost       = contract.ReadGasCostPerSlot
	InitializeOwnerGasCost   = contract.ReadGasCostPerSlot + 2*contract.WriteGasCostPerSlot
	TransferOwnershipGasCost = 2*contract.ReadGasCostPerSlot + contract.WriteGasCostPerSlot
)

var (
	// Signatures of the access control functions, shared across the family.
	OwnerSignature             = contract.CalculateFunctionSelector("owner()")
	InitializedSignature       = contract.CalculateFunctionSelector("initialized()")
	InitializeOwnerSignature   = contract.CalculateFunctionSelector("initializeOwner(address)")
	TransferOwnershipSignature = contract.CalculateFunctionSelector("transferOwnership(address)")

	initializedSlot = common.Hash{}
	ownerSlot       = common.BigToHash(common.Big1)
)

// GetOwner returns the owner stored in [address]'s owner slot.
func GetOwner(stateDB contract.StateDB, address common.Address) common.Address {
	return common.BytesToAddress(stateDB.GetState(address, ownerSlot).Bytes())
}

// SetOwner stores [owner] into [address]'s owner slot.
func SetOwner(stateDB contract.StateDB, address common.Address, owner common.Address) {
	stateDB.SetState(address, ownerSlot, common.BytesToHash(owner.Bytes()))
}

// IsInitialized returns whether [address] has completed its one time owner
// setup.
func IsInitialized(stateDB contract.StateDB, address common.Address) bool {
	return stateDB.GetState(address, initializedSlot) != (common.Hash{})
}

func setInitialized(stateDB contract.StateDB, address common.Address) {
	stateDB.SetState(address, initializedSlot, contract.TrueWord)
}

// InitializeAccount marks the hosting account as non-empty. The nonce is
// bumped from 0 to 1 the first time ownership is initialized so the account
// cannot be swept as empty between calls.
func InitializeAccount(stateDB contract.StateDB, address common.Address) {
	if !stateDB.Exist(address) {
		stateDB.CreateAccount(address)
	}
	if stateDB.GetNonce(address) == 0 {
		stateDB.SetNonce(address, 1)
	}
}

// IsOwner returns whether [address] is initialized with [caller] as its owner.
func IsOwner(stateDB contract.StateDB, address common.Address, caller common.Address) bool {
	return IsInitialized(stateDB, address) && GetOwner(stateDB, address) == caller
}

func getOwner(accessibleState contract.AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) (ret []byte, remainingGas uint64, err error) {
	if remainingGas, err = contract.DeductGas(suppliedGas, OwnerGasCost); err != nil {
		return nil, 0, err
	}

	owner := GetOwner(accessibleState.GetStateDB(), addr)
	return common.BytesToHash(owner.Bytes()).Bytes(), remainingGas, nil
}

func getInitialized(accessibleState contract.AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) (ret []byte, remainingGas uint64, err error) {
	if remainingGas, err = contract.DeductGas(suppliedGas, InitializedGasCost); err != nil {
		return nil, 0, err
	}

	return contract.PackBool(IsInitialized(accessibleState.GetStateDB(), addr)), remainingGas, nil
}

func initializeOwner(accessibleState contract.AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) (ret []byte, remainingGas uint64, err error) {
	if remainingGas, err = contract.DeductGas(suppliedGas, InitializeOwnerGasCost); err != nil {
		return nil, 0, err
	}
	if readOnly || len(input) != common.HashLength {
		return contract.PackBool(false), remainingGas, nil
	}

	stateDB := accessibleState.GetStateDB()
	if IsInitialized(stateDB, addr) {
		return contract.PackBool(false), remainingGas, nil
	}
	candidate := common.BytesToAddress(input)
	if candidate == (common.Address{}) {
		return contract.PackBool(false), remainingGas, nil
	}

	InitializeAccount(stateDB, addr)
	SetOwner(stateDB, addr, candidate)
	setInitialized(stateDB, addr)
	return contract.PackBool(true), remainingGas, nil
}

func transferOwnership(accessibleState contract.AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) (ret []byte, remainingGas uint64, err error) {
	if remainingGas, err = contract.DeductGas(suppliedGas, TransferOwnershipGasCost); err != nil {
		return nil, 0, err
	}
	if readOnly || len(input) != common.HashLength {
		return contract.PackBool(false), remainingGas, nil
	}

	stateDB := accessibleState.GetStateDB()
	if !IsOwner(stateDB, addr, caller) {
		return contract.PackBool(false), remainingGas, nil
	}
	candidate := common.BytesToAddress(input)
	if candidate == (common.Address{}) {
		return contract.PackBool(false), remainingGas, nil
	}

	SetOwner(stateDB, addr, candidate)
	return contract.PackBool(true), remainingGas, nil
}

// CreateOwnableFunctions returns the four access control functions installed
// by every contract in the family.
func CreateOwnableFunctions() []*contract.StatefulPrecompileFunction {
	return []*contract.StatefulPrecompileFunction{
		contract.NewStatefulPrecompileFunction(OwnerSignature, OwnerGasCost, getOwner),
		contract.NewStatefulPrecompileFunction(InitializedSignature, InitializedGasCost, getInitialized),
		contract.NewStatefulPrecompileFunction(InitializeOwnerSignature, InitializeOwnerGasCost, initializeOwner),
		contract.NewStatefulPrecompileFunction(TransferOwnershipSignature, TransferOwnershipGasCost, transferOwnership),
	}
}

// PackOwner packs an owner() call.
func PackOwner() []byte {
	return common.CopyBytes(OwnerSignature)
}

// PackInitialized packs an initialized() call.
func PackInitialized() []byte {
	return common.CopyBytes(InitializedSignature)
}

// PackInitializeOwner packs an initializeOwner call with [candidate] as the
// argument.
func PackInitializeOwner(candidate common.Address) []byte {
	input := make([]byte, 0, len(InitializeOwnerSignature)+common.HashLength)
	input = append(input, InitializeOwnerSignature...)
	input = append(input, candidate.Hash().Bytes()...)
	return input
}

// PackTransferOwnership packs a transferOwnership call with [candidate] as the
// argument.
func PackTransferOwnership(candidate common.Address) []byte {
	input := make([]byte, 0, len(TransferOwnershipSignature)+common.HashLength)
	input = append(input, TransferOwnershipSignature...)
	input = append(input, candidate.Hash().Bytes()...)
	return input
}
