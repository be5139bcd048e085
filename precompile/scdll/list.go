// (c) 2024-2025, Kiwari Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package scdll

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/Kiwari-Labs/go-precompiles/precompile/contract"
)

// TraversalStepGasCost is charged for every node visited while scanning a
// list, on top of the flat cost of the operation that started the scan. A full
// scan of a maximum size list costs MaxSize * TraversalStepGasCost.
const TraversalStepGasCost uint64 = 500

// List is a view over one sorted circular doubly linked list in [self]'s
// account storage. Keys are 256 bit unsigned integers ordered numerically;
// the zero key is the sentinel and can never be a member.
type List struct {
	stateDB contract.StateDB
	self    common.Address
	id      common.Hash
}

// NewList binds a list view to [listID] in [self]'s storage.
func NewList(stateDB contract.StateDB, self common.Address, listID common.Hash) List {
	return List{
		stateDB: stateDB,
		self:    self,
		id:      listID,
	}
}

func (l List) pointer(key common.Hash, direction Direction) common.Hash {
	return l.stateDB.GetState(l.self, ElementSlot(l.self, l.id, key, direction))
}

func (l List) setPointer(key common.Hash, direction Direction, value common.Hash) {
	l.stateDB.SetState(l.self, ElementSlot(l.self, l.id, key, direction), value)
}

// Size returns the number of elements in the list. A corrupted counter is
// clamped to MaxSize so it can never extend a walk past the hard bound.
func (l List) Size() uint64 {
	size := new(uint256.Int).SetBytes(l.stateDB.GetState(l.self, SizeSlot(l.id)).Bytes())
	if !size.IsUint64() || size.Uint64() > MaxSize {
		return MaxSize
	}
	return size.Uint64()
}

func (l List) setSize(size uint64) {
	l.stateDB.SetState(l.self, SizeSlot(l.id), common.Hash(uint256.NewInt(size).Bytes32()))
}

// Front returns the smallest member, or the sentinel when the list is empty.
func (l List) Front() common.Hash {
	return l.pointer(common.Hash{}, Next)
}

// Back returns the largest member, or the sentinel when the list is empty.
func (l List) Back() common.Hash {
	return l.pointer(common.Hash{}, Previous)
}

// Next returns the member after [key] in ascending order. For an absent key
// both pointer slots are zero, so the sentinel comes back.
func (l List) Next(key common.Hash) common.Hash {
	return l.pointer(key, Next)
}

// Previous returns the member before [key] in ascending order.
func (l List) Previous(key common.Hash) common.Hash {
	return l.pointer(key, Previous)
}

// location is the result of resolving a key's position in the circle. When
// found is set, prev and next are the key's linked neighbors; otherwise they
// are the members that would surround the key on insert, the sentinel on an
// open end. resolved is false only when corrupted pointers exhausted the walk
// bound before the position settled.
type location struct {
	prev     common.Hash
	next     common.Hash
	found    bool
	resolved bool
}

// locate resolves [key]'s position, scanning from whichever end of the circle
// is numerically closer. Charges TraversalStepGasCost per visited node.
// [key] must be nonzero.
func (l List) locate(key *uint256.Int, suppliedGas uint64) (location, uint64, error) {
	remainingGas := suppliedGas

	size := l.Size()
	if size == 0 {
		return location{resolved: true}, remainingGas, nil
	}

	keyHash := common.Hash(key.Bytes32())
	frontHash := l.Front()
	backHash := l.Back()
	front := new(uint256.Int).SetBytes(frontHash.Bytes())
	back := new(uint256.Int).SetBytes(backHash.Bytes())

	switch {
	case key.Lt(front):
		return location{next: frontHash, resolved: true}, remainingGas, nil
	case key.Eq(front):
		return location{next: l.Next(keyHash), found: true, resolved: true}, remainingGas, nil
	case key.Gt(back):
		return location{prev: backHash, resolved: true}, remainingGas, nil
	case key.Eq(back):
		return location{prev: l.Previous(keyHash), found: true, resolved: true}, remainingGas, nil
	}

	distanceToFront := new(uint256.Int).Sub(key, front)
	distanceToBack := new(uint256.Int).Sub(back, key)
	if distanceToFront.Cmp(distanceToBack) <= 0 {
		return l.scanForward(key, keyHash, front, size, remainingGas)
	}
	return l.scanBackward(key, keyHash, back, size, remainingGas)
}

// scanForward walks next pointers from [from] until it passes [key]'s sorted
// position, bounded by [size] steps.
func (l List) scanForward(key *uint256.Int, keyHash common.Hash, from *uint256.Int, size uint64, suppliedGas uint64) (location, uint64, error) {
	var (
		remainingGas = suppliedGas
		err          error
		prev         = from
	)
	for steps := uint64(0); steps < size; steps++ {
		if remainingGas, err = contract.DeductGas(remainingGas, TraversalStepGasCost); err != nil {
			return location{}, 0, err
		}

		prevHash := common.Hash(prev.Bytes32())
		nextHash := l.Next(prevHash)
		next := new(uint256.Int).SetBytes(nextHash.Bytes())
		switch {
		case next.Eq(key):
			return location{prev: prevHash, next: l.Next(keyHash), found: true, resolved: true}, remainingGas, nil
		case next.IsZero() || next.Gt(key):
			return location{prev: prevHash, next: nextHash, resolved: true}, remainingGas, nil
		}
		prev = next
	}
	return location{}, remainingGas, nil
}

// scanBackward mirrors scanForward along previous pointers from [from].
func (l List) scanBackward(key *uint256.Int, keyHash common.Hash, from *uint256.Int, size uint64, suppliedGas uint64) (location, uint64, error) {
	var (
		remainingGas = suppliedGas
		err          error
		next         = from
	)
	for steps := uint64(0); steps < size; steps++ {
		if remainingGas, err = contract.DeductGas(remainingGas, TraversalStepGasCost); err != nil {
			return location{}, 0, err
		}

		nextHash := common.Hash(next.Bytes32())
		prevHash := l.Previous(nextHash)
		prev := new(uint256.Int).SetBytes(prevHash.Bytes())
		switch {
		case prev.Eq(key):
			return location{prev: l.Previous(keyHash), next: nextHash, found: true, resolved: true}, remainingGas, nil
		case prev.IsZero() || prev.Lt(key):
			return location{prev: prevHash, next: nextHash, resolved: true}, remainingGas, nil
		}
		next = prev
	}
	return location{}, remainingGas, nil
}

// Contains reports whether [key] is a member. On a well formed list this is
// exactly reachability from the sentinel bounded by the size; the sorted order
// just lets the walk stop as soon as it passes [key]'s position.
func (l List) Contains(key common.Hash, suppliedGas uint64) (bool, uint64, error) {
	k := new(uint256.Int).SetBytes(key.Bytes())
	if k.IsZero() {
		return false, suppliedGas, nil
	}

	loc, remainingGas, err := l.locate(k, suppliedGas)
	if err != nil {
		return false, 0, err
	}
	return loc.resolved && loc.found, remainingGas, nil
}

// Insert links [key] into its sorted position and bumps the size. It returns
// false without touching state when [key] is the sentinel, already a member,
// the list is full, or the pointer walk could not resolve a position.
func (l List) Insert(key common.Hash, suppliedGas uint64) (bool, uint64, error) {
	k := new(uint256.Int).SetBytes(key.Bytes())
	if k.IsZero() {
		return false, suppliedGas, nil
	}
	size := l.Size()
	if size >= MaxSize {
		return false, suppliedGas, nil
	}

	loc, remainingGas, err := l.locate(k, suppliedGas)
	if err != nil {
		return false, 0, err
	}
	if !loc.resolved || loc.found {
		return false, remainingGas, nil
	}

	// The same four writes cover every case: both neighbors are the sentinel
	// on the first insert, and one of them is on a new front or back.
	l.setPointer(loc.prev, Next, key)
	l.setPointer(key, Previous, loc.prev)
	l.setPointer(key, Next, loc.next)
	l.setPointer(loc.next, Previous, key)
	l.setSize(size + 1)
	return true, remainingGas, nil
}

// Remove unlinks [key], zeroes its pointers, and drops the size. It returns
// false without touching state when [key] is not a member. Removing the last
// member splices the sentinel to itself, restoring the empty circle.
func (l List) Remove(key common.Hash, suppliedGas uint64) (bool, uint64, error) {
	k := new(uint256.Int).SetBytes(key.Bytes())
	if k.IsZero() {
		return false, suppliedGas, nil
	}
	size := l.Size()
	if size == 0 {
		return false, suppliedGas, nil
	}

	loc, remainingGas, err := l.locate(k, suppliedGas)
	if err != nil {
		return false, 0, err
	}
	if !loc.resolved || !loc.found {
		return false, remainingGas, nil
	}

	l.setPointer(loc.prev, Next, loc.next)
	l.setPointer(loc.next, Previous, loc.prev)
	l.setPointer(key, Previous, common.Hash{})
	l.setPointer(key, Next, common.Hash{})
	l.setSize(size - 1)
	return true, remainingGas, nil
}

// Elements returns up to [limit] members in ascending order, charging
// TraversalStepGasCost per returned member. The walk stops early at the
// sentinel, so a corrupted counter cannot produce phantom members.
func (l List) Elements(limit uint64, suppliedGas uint64) ([]common.Hash, uint64, error) {
	return l.walk(l.Front(), Next, limit, suppliedGas)
}

// ReverseElements returns up to [limit] members in descending order.
func (l List) ReverseElements(limit uint64, suppliedGas uint64) ([]common.Hash, uint64, error) {
	return l.walk(l.Back(), Previous, limit, suppliedGas)
}

func (l List) walk(start common.Hash, direction Direction, limit uint64, suppliedGas uint64) ([]common.Hash, uint64, error) {
	var (
		remainingGas = suppliedGas
		err          error
	)
	steps := l.Size()
	if limit < steps {
		steps = limit
	}

	keys := make([]common.Hash, 0, steps)
	current := start
	for i := uint64(0); i < steps; i++ {
		if current == (common.Hash{}) {
			break
		}
		if remainingGas, err = contract.DeductGas(remainingGas, TraversalStepGasCost); err != nil {
			return nil, 0, err
		}
		keys = append(keys, current)
		current = l.pointer(current, direction)
	}
	return keys, remainingGas, nil
}

// Middle returns the member reached after size/2 forward steps from the
// front, or the sentinel when the list is empty. With an even size the upper
// of the two middle members comes back.
func (l List) Middle(suppliedGas uint64) (common.Hash, uint64, error) {
	var (
		remainingGas = suppliedGas
		err          error
	)
	size := l.Size()
	if size == 0 {
		return common.Hash{}, remainingGas, nil
	}

	current := l.Front()
	for steps := uint64(0); steps < size/2; steps++ {
		if remainingGas, err = contract.DeductGas(remainingGas, TraversalStepGasCost); err != nil {
			return common.Hash{}, 0, err
		}
		current = l.Next(current)
	}
	return current, remainingGas, nil
}
