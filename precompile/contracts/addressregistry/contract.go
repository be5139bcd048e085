// (c) 2024-2025, Kiwari Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package addressregistry

import (
	_ "embed"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/Kiwari-Labs/go-precompiles/precompile/contract"
	"github.com/Kiwari-Labs/go-precompiles/precompile/ownable"
)

const (
	ContainsGasCost           uint64 = 1000
	DiscoveryGasCost          uint64 = 1000
	AddToRegistryGasCost      uint64 = 2000
	RemoveFromRegistryGasCost uint64 = 2000
)

// Singleton StatefulPrecompiledContract for the service provider registry.
var (
	AddressRegistryPrecompile contract.StatefulPrecompiledContract = createAddressRegistryPrecompile()

	containsSignature           = contract.CalculateFunctionSelector("contains(address)")
	discoverySignature          = contract.CalculateFunctionSelector("discovery(address)")
	addToRegistrySignature      = contract.CalculateFunctionSelector("addToRegistry(address,address)")
	removeFromRegistrySignature = contract.CalculateFunctionSelector("removeFromRegistry(address,address)")

	// registrySlot is the base slot of the user => provider mapping. Slots 0
	// and 1 are reserved by the ownable layout.
	registrySlot = common.BigToHash(common.Big2)

	//go:embed contract.abi
	AddressRegistryRawABI string

	AddressRegistryABI = contract.ParseABI(AddressRegistryRawABI)
)

// providerSlot returns the storage slot holding the provider registered for
// [user]. Each user occupies a dedicated slot derived from the mapping base.
func providerSlot(user common.Address) common.Hash {
	return crypto.Keccak256Hash(registrySlot.Bytes(), user.Hash().Bytes())
}

// GetProvider reads the provider registered for [user]. The zero address
// means [user] is not registered.
func GetProvider(stateDB contract.StateDB, user common.Address) common.Address {
	return common.BytesToAddress(stateDB.GetState(ContractAddress, providerSlot(user)).Bytes())
}

// SetProvider registers [provider] for [user] in the contract storage.
func SetProvider(stateDB contract.StateDB, user common.Address, provider common.Address) {
	stateDB.SetState(ContractAddress, providerSlot(user), provider.Hash())
}

func packRegistryInput(selector []byte, words ...common.Hash) []byte {
	input := make([]byte, len(selector)+len(words)*common.HashLength)
	// the buffer is sized above, so packing cannot fail
	_ = contract.PackOrderedHashesWithSelector(input, selector, words)
	return input
}

// PackContains packs a contains(address) call.
func PackContains(user common.Address) []byte {
	return packRegistryInput(containsSignature, user.Hash())
}

// PackDiscovery packs a discovery(address) call.
func PackDiscovery(user common.Address) []byte {
	return packRegistryInput(discoverySignature, user.Hash())
}

// PackAddToRegistry packs an addToRegistry(address,address) call.
func PackAddToRegistry(user common.Address, provider common.Address) []byte {
	return packRegistryInput(addToRegistrySignature, user.Hash(), provider.Hash())
}

// PackRemoveFromRegistry packs a removeFromRegistry(address,address) call.
func PackRemoveFromRegistry(user common.Address, provider common.Address) []byte {
	return packRegistryInput(removeFromRegistrySignature, user.Hash(), provider.Hash())
}

func contains(accessibleState contract.AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) (ret []byte, remainingGas uint64, err error) {
	if remainingGas, err = contract.DeductGas(suppliedGas, ContainsGasCost); err != nil {
		return nil, 0, err
	}
	if len(input) != common.HashLength {
		return contract.PackBool(false), remainingGas, nil
	}

	user := common.BytesToAddress(input)
	provider := GetProvider(accessibleState.GetStateDB(), user)
	return contract.PackBool(provider != (common.Address{})), remainingGas, nil
}

func discovery(accessibleState contract.AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) (ret []byte, remainingGas uint64, err error) {
	if remainingGas, err = contract.DeductGas(suppliedGas, DiscoveryGasCost); err != nil {
		return nil, 0, err
	}
	if len(input) != common.HashLength {
		return contract.PackBool(false), remainingGas, nil
	}

	user := common.BytesToAddress(input)
	provider := GetProvider(accessibleState.GetStateDB(), user)
	return provider.Hash().Bytes(), remainingGas, nil
}

func addToRegistry(accessibleState contract.AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) (ret []byte, remainingGas uint64, err error) {
	if remainingGas, err = contract.DeductGas(suppliedGas, AddToRegistryGasCost); err != nil {
		return nil, 0, err
	}
	if readOnly || len(input) != 2*common.HashLength {
		return contract.PackBool(false), remainingGas, nil
	}

	stateDB := accessibleState.GetStateDB()
	if !ownable.IsOwner(stateDB, ContractAddress, caller) {
		return contract.PackBool(false), remainingGas, nil
	}

	user := common.BytesToAddress(input[:common.HashLength])
	provider := common.BytesToAddress(input[common.HashLength:])
	if user == (common.Address{}) || provider == (common.Address{}) {
		return contract.PackBool(false), remainingGas, nil
	}

	SetProvider(stateDB, user, provider)
	return contract.PackBool(true), remainingGas, nil
}

func removeFromRegistry(accessibleState contract.AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) (ret []byte, remainingGas uint64, err error) {
	if remainingGas, err = contract.DeductGas(suppliedGas, RemoveFromRegistryGasCost); err != nil {
		return nil, 0, err
	}
	if readOnly || len(input) != 2*common.HashLength {
		return contract.PackBool(false), remainingGas, nil
	}

	stateDB := accessibleState.GetStateDB()
	if !ownable.IsOwner(stateDB, ContractAddress, caller) {
		return contract.PackBool(false), remainingGas, nil
	}

	user := common.BytesToAddress(input[:common.HashLength])
	provider := common.BytesToAddress(input[common.HashLength:])
	// Removal must name the registered provider. A stale or mistyped provider
	// leaves the mapping untouched.
	registered := GetProvider(stateDB, user)
	if registered == (common.Address{}) || registered != provider {
		return contract.PackBool(false), remainingGas, nil
	}

	SetProvider(stateDB, user, common.Address{})
	return contract.PackBool(true), remainingGas, nil
}

// createAddressRegistryPrecompile returns the StatefulPrecompiledContract for
// the address registry. The registry maps user addresses to the service
// provider responsible for them and only the contract owner may modify it.
func createAddressRegistryPrecompile() contract.StatefulPrecompiledContract {
	var functions []*contract.StatefulPrecompileFunction
	functions = append(functions, ownable.CreateOwnableFunctions()...)
	functions = append(functions,
		contract.NewStatefulPrecompileFunction(containsSignature, ContainsGasCost, contains),
		contract.NewStatefulPrecompileFunction(discoverySignature, DiscoveryGasCost, discovery),
		contract.NewStatefulPrecompileFunction(addToRegistrySignature, AddToRegistryGasCost, addToRegistry),
		contract.NewStatefulPrecompileFunction(removeFromRegistrySignature, RemoveFromRegistryGasCost, removeFromRegistry),
	)
	return contract.NewStatefulPrecompileContract(nil, functions)
}
