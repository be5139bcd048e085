// (c) 2024-2025, Kiwari Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package sortedlist

import (
	_ "embed"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/Kiwari-Labs/go-precompiles/precompile/contract"
	"github.com/Kiwari-Labs/go-precompiles/precompile/ownable"
	"github.com/Kiwari-Labs/go-precompiles/precompile/scdll"
)

// Flat base costs per selector, derived from the worst case number of slots
// each operation touches. Operations that walk the list charge
// [scdll.TraversalStepGasCost] per visited node on top of their base.
const (
	FindGasCost        uint64 = 3 * contract.ReadGasCostPerSlot // size, front, back
	FrontGasCost       uint64 = contract.ReadGasCostPerSlot
	BackGasCost        uint64 = contract.ReadGasCostPerSlot
	NextGasCost        uint64 = contract.ReadGasCostPerSlot
	PreviousGasCost    uint64 = contract.ReadGasCostPerSlot
	SizeGasCost        uint64 = contract.ReadGasCostPerSlot
	MaxSizeGasCost     uint64 = contract.ReadGasCostPerSlot
	ListGasCost        uint64 = 2 * contract.ReadGasCostPerSlot // size, front
	ReverseListGasCost uint64 = 2 * contract.ReadGasCostPerSlot // size, back
	MiddleGasCost      uint64 = 2 * contract.ReadGasCostPerSlot // size, front

	// insert and remove read the owner gate (2), the size and both ends (3),
	// and rewrite four pointers plus the size (5).
	InsertGasCost uint64 = 5*contract.ReadGasCostPerSlot + 5*contract.WriteGasCostPerSlot
	RemoveGasCost uint64 = 5*contract.ReadGasCostPerSlot + 5*contract.WriteGasCostPerSlot
)

var (
	// SortedListPrecompile is the singleton stateful precompile backing every
	// list stored under ContractAddress.
	SortedListPrecompile contract.StatefulPrecompiledContract = createSortedListPrecompile()

	findSignature        = contract.CalculateFunctionSelector("find(uint256,uint256)")
	frontSignature       = contract.CalculateFunctionSelector("front(uint256)")
	backSignature        = contract.CalculateFunctionSelector("back(uint256)")
	nextSignature        = contract.CalculateFunctionSelector("next(uint256,uint256)")
	previousSignature    = contract.CalculateFunctionSelector("previous(uint256,uint256)")
	sizeSignature        = contract.CalculateFunctionSelector("size(uint256)")
	maxSizeSignature     = contract.CalculateFunctionSelector("max_size(uint256)")
	listSignature        = contract.CalculateFunctionSelector("list(uint256)")
	reverseListSignature = contract.CalculateFunctionSelector("rlist(uint256)")
	middleSignature      = contract.CalculateFunctionSelector("middle(uint256)")
	insertSignature      = contract.CalculateFunctionSelector("insert(uint256,uint256)")
	removeSignature      = contract.CalculateFunctionSelector("remove(uint256,uint256)")

	// SortedListRawABI contains the raw ABI of the sorted list contract.
	//go:embed contract.abi
	SortedListRawABI string

	SortedListABI = contract.ParseABI(SortedListRawABI)
)

func listAt(accessibleState contract.AccessibleState, addr common.Address, listID common.Hash) scdll.List {
	return scdll.NewList(accessibleState.GetStateDB(), addr, listID)
}

// find returns a true word iff the key is a member of the list.
func find(accessibleState contract.AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) (ret []byte, remainingGas uint64, err error) {
	if remainingGas, err = contract.DeductGas(suppliedGas, FindGasCost); err != nil {
		return nil, 0, err
	}
	if len(input) != 2*common.HashLength {
		return contract.PackBool(false), remainingGas, nil
	}

	listID := common.BytesToHash(contract.PackedHash(input, 0))
	key := common.BytesToHash(contract.PackedHash(input, 1))

	var member bool
	member, remainingGas, err = listAt(accessibleState, addr, listID).Contains(key, remainingGas)
	if err != nil {
		return nil, 0, err
	}
	return contract.PackBool(member), remainingGas, nil
}

// front returns the smallest member, or the sentinel word when the list is
// empty or the input is malformed.
func front(accessibleState contract.AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) (ret []byte, remainingGas uint64, err error) {
	if remainingGas, err = contract.DeductGas(suppliedGas, FrontGasCost); err != nil {
		return nil, 0, err
	}
	if len(input) != common.HashLength {
		return contract.FalseWord.Bytes(), remainingGas, nil
	}

	listID := common.BytesToHash(input)
	return listAt(accessibleState, addr, listID).Front().Bytes(), remainingGas, nil
}

// back returns the largest member, or the sentinel word when the list is empty
// or the input is malformed.
func back(accessibleState contract.AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) (ret []byte, remainingGas uint64, err error) {
	if remainingGas, err = contract.DeductGas(suppliedGas, BackGasCost); err != nil {
		return nil, 0, err
	}
	if len(input) != common.HashLength {
		return contract.FalseWord.Bytes(), remainingGas, nil
	}

	listID := common.BytesToHash(input)
	return listAt(accessibleState, addr, listID).Back().Bytes(), remainingGas, nil
}

// next returns the successor of the key. The back's successor wraps to the
// sentinel, and an absent key reads as the sentinel.
func next(accessibleState contract.AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) (ret []byte, remainingGas uint64, err error) {
	if remainingGas, err = contract.DeductGas(suppliedGas, NextGasCost); err != nil {
		return nil, 0, err
	}
	if len(input) != 2*common.HashLength {
		return contract.FalseWord.Bytes(), remainingGas, nil
	}

	listID := common.BytesToHash(contract.PackedHash(input, 0))
	key := common.BytesToHash(contract.PackedHash(input, 1))
	return listAt(accessibleState, addr, listID).Next(key).Bytes(), remainingGas, nil
}

// previous returns the predecessor of the key. The front's predecessor wraps
// to the sentinel, and an absent key reads as the sentinel.
func previous(accessibleState contract.AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) (ret []byte, remainingGas uint64, err error) {
	if remainingGas, err = contract.DeductGas(suppliedGas, PreviousGasCost); err != nil {
		return nil, 0, err
	}
	if len(input) != 2*common.HashLength {
		return contract.FalseWord.Bytes(), remainingGas, nil
	}

	listID := common.BytesToHash(contract.PackedHash(input, 0))
	key := common.BytesToHash(contract.PackedHash(input, 1))
	return listAt(accessibleState, addr, listID).Previous(key).Bytes(), remainingGas, nil
}

// size returns the cardinality of the list as a single word.
func size(accessibleState contract.AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) (ret []byte, remainingGas uint64, err error) {
	if remainingGas, err = contract.DeductGas(suppliedGas, SizeGasCost); err != nil {
		return nil, 0, err
	}
	if len(input) != common.HashLength {
		return contract.FalseWord.Bytes(), remainingGas, nil
	}

	listID := common.BytesToHash(input)
	packed := common.Hash(uint256.NewInt(listAt(accessibleState, addr, listID).Size()).Bytes32())
	return packed.Bytes(), remainingGas, nil
}

// maxSize returns the global size bound. The bound is identical for every
// list, so the listID argument is not inspected.
func maxSize(accessibleState contract.AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) (ret []byte, remainingGas uint64, err error) {
	if remainingGas, err = contract.DeductGas(suppliedGas, MaxSizeGasCost); err != nil {
		return nil, 0, err
	}
	packed := common.Hash(uint256.NewInt(scdll.MaxSize).Bytes32())
	return packed.Bytes(), remainingGas, nil
}

// list returns every member in ascending order as raw concatenated words,
// without ABI offset or length framing.
func list(accessibleState contract.AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) (ret []byte, remainingGas uint64, err error) {
	if remainingGas, err = contract.DeductGas(suppliedGas, ListGasCost); err != nil {
		return nil, 0, err
	}
	if len(input) != common.HashLength {
		return contract.FalseWord.Bytes(), remainingGas, nil
	}

	listID := common.BytesToHash(input)
	var keys []common.Hash
	keys, remainingGas, err = listAt(accessibleState, addr, listID).Elements(scdll.MaxSize, remainingGas)
	if err != nil {
		return nil, 0, err
	}

	output := make([]byte, len(keys)*common.HashLength)
	if err := contract.PackOrderedHashes(output, keys); err != nil {
		return nil, remainingGas, err
	}
	return output, remainingGas, nil
}

// reverseList returns every member in descending order as raw concatenated
// words, without ABI offset or length framing.
func reverseList(accessibleState contract.AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) (ret []byte, remainingGas uint64, err error) {
	if remainingGas, err = contract.DeductGas(suppliedGas, ReverseListGasCost); err != nil {
		return nil, 0, err
	}
	if len(input) != common.HashLength {
		return contract.FalseWord.Bytes(), remainingGas, nil
	}

	listID := common.BytesToHash(input)
	var keys []common.Hash
	keys, remainingGas, err = listAt(accessibleState, addr, listID).ReverseElements(scdll.MaxSize, remainingGas)
	if err != nil {
		return nil, 0, err
	}

	output := make([]byte, len(keys)*common.HashLength)
	if err := contract.PackOrderedHashes(output, keys); err != nil {
		return nil, remainingGas, err
	}
	return output, remainingGas, nil
}

// middle returns the member half way along the list, or the sentinel word when
// the list is empty.
func middle(accessibleState contract.AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) (ret []byte, remainingGas uint64, err error) {
	if remainingGas, err = contract.DeductGas(suppliedGas, MiddleGasCost); err != nil {
		return nil, 0, err
	}
	if len(input) != common.HashLength {
		return contract.FalseWord.Bytes(), remainingGas, nil
	}

	listID := common.BytesToHash(input)
	var key common.Hash
	key, remainingGas, err = listAt(accessibleState, addr, listID).Middle(remainingGas)
	if err != nil {
		return nil, 0, err
	}
	return key.Bytes(), remainingGas, nil
}

// insert links a new key into its sorted position. Only the contract owner may
// insert; every refusal is a false word rather than a halt.
func insert(accessibleState contract.AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) (ret []byte, remainingGas uint64, err error) {
	if remainingGas, err = contract.DeductGas(suppliedGas, InsertGasCost); err != nil {
		return nil, 0, err
	}
	if readOnly || len(input) != 2*common.HashLength {
		return contract.PackBool(false), remainingGas, nil
	}

	stateDB := accessibleState.GetStateDB()
	if !ownable.IsOwner(stateDB, addr, caller) {
		return contract.PackBool(false), remainingGas, nil
	}

	listID := common.BytesToHash(contract.PackedHash(input, 0))
	key := common.BytesToHash(contract.PackedHash(input, 1))

	var inserted bool
	inserted, remainingGas, err = listAt(accessibleState, addr, listID).Insert(key, remainingGas)
	if err != nil {
		return nil, 0, err
	}
	return contract.PackBool(inserted), remainingGas, nil
}

// remove unlinks a key. Only the contract owner may remove; every refusal is a
// false word rather than a halt.
func remove(accessibleState contract.AccessibleState, caller common.Address, addr common.Address, input []byte, suppliedGas uint64, readOnly bool) (ret []byte, remainingGas uint64, err error) {
	if remainingGas, err = contract.DeductGas(suppliedGas, RemoveGasCost); err != nil {
		return nil, 0, err
	}
	if readOnly || len(input) != 2*common.HashLength {
		return contract.PackBool(false), remainingGas, nil
	}

	stateDB := accessibleState.GetStateDB()
	if !ownable.IsOwner(stateDB, addr, caller) {
		return contract.PackBool(false), remainingGas, nil
	}

	listID := common.BytesToHash(contract.PackedHash(input, 0))
	key := common.BytesToHash(contract.PackedHash(input, 1))

	var removed bool
	removed, remainingGas, err = listAt(accessibleState, addr, listID).Remove(key, remainingGas)
	if err != nil {
		return nil, 0, err
	}
	return contract.PackBool(removed), remainingGas, nil
}

func packListInput(selector []byte, words ...common.Hash) []byte {
	input := make([]byte, len(selector)+len(words)*common.HashLength)
	// the buffer is sized above, so packing cannot fail
	_ = contract.PackOrderedHashesWithSelector(input, selector, words)
	return input
}

// PackFind packs a find call for [listID] and [key], including the selector.
func PackFind(listID common.Hash, key common.Hash) []byte {
	return packListInput(findSignature, listID, key)
}

// PackFront packs a front call for [listID], including the selector.
func PackFront(listID common.Hash) []byte {
	return packListInput(frontSignature, listID)
}

// PackBack packs a back call for [listID], including the selector.
func PackBack(listID common.Hash) []byte {
	return packListInput(backSignature, listID)
}

// PackNext packs a next call for [listID] and [key], including the selector.
func PackNext(listID common.Hash, key common.Hash) []byte {
	return packListInput(nextSignature, listID, key)
}

// PackPrevious packs a previous call for [listID] and [key], including the selector.
func PackPrevious(listID common.Hash, key common.Hash) []byte {
	return packListInput(previousSignature, listID, key)
}

// PackSize packs a size call for [listID], including the selector.
func PackSize(listID common.Hash) []byte {
	return packListInput(sizeSignature, listID)
}

// PackMaxSize packs a max_size call for [listID], including the selector.
func PackMaxSize(listID common.Hash) []byte {
	return packListInput(maxSizeSignature, listID)
}

// PackList packs a list call for [listID], including the selector.
func PackList(listID common.Hash) []byte {
	return packListInput(listSignature, listID)
}

// PackReverseList packs an rlist call for [listID], including the selector.
func PackReverseList(listID common.Hash) []byte {
	return packListInput(reverseListSignature, listID)
}

// PackMiddle packs a middle call for [listID], including the selector.
func PackMiddle(listID common.Hash) []byte {
	return packListInput(middleSignature, listID)
}

// PackInsert packs an insert call for [listID] and [key], including the selector.
func PackInsert(listID common.Hash, key common.Hash) []byte {
	return packListInput(insertSignature, listID, key)
}

// PackRemove packs a remove call for [listID] and [key], including the selector.
func PackRemove(listID common.Hash, key common.Hash) []byte {
	return packListInput(removeSignature, listID, key)
}

// createSortedListPrecompile returns the stateful precompile with the list
// operations plus the shared ownable functions.
func createSortedListPrecompile() contract.StatefulPrecompiledContract {
	var functions []*contract.StatefulPrecompileFunction
	functions = append(functions, ownable.CreateOwnableFunctions()...)

	functions = append(functions,
		contract.NewStatefulPrecompileFunction(findSignature, FindGasCost, find),
		contract.NewStatefulPrecompileFunction(frontSignature, FrontGasCost, front),
		contract.NewStatefulPrecompileFunction(backSignature, BackGasCost, back),
		contract.NewStatefulPrecompileFunction(nextSignature, NextGasCost, next),
		contract.NewStatefulPrecompileFunction(previousSignature, PreviousGasCost, previous),
		contract.NewStatefulPrecompileFunction(sizeSignature, SizeGasCost, size),
		contract.NewStatefulPrecompileFunction(maxSizeSignature, MaxSizeGasCost, maxSize),
		contract.NewStatefulPrecompileFunction(listSignature, ListGasCost, list),
		contract.NewStatefulPrecompileFunction(reverseListSignature, ReverseListGasCost, reverseList),
		contract.NewStatefulPrecompileFunction(middleSignature, MiddleGasCost, middle),
		contract.NewStatefulPrecompileFunction(insertSignature, InsertGasCost, insert),
		contract.NewStatefulPrecompileFunction(removeSignature, RemoveGasCost, remove),
	)

	// Construct the contract with no fallback function.
	return contract.NewStatefulPrecompileContract(nil, functions)
}
