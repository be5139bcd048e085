// (c) 2024-2025, Kiwari Labs. All rights reserved.
// See the file LICENSE for licensing terms.

// Package scdll implements a sorted circular doubly linked list persisted in
// account storage. Every node key owns two pointer slots, one per direction,
// derived by hashing the hosting address, the list identifier, the key, and a
// single direction byte. The zero key is the sentinel closing the circle: its
// next pointer is the smallest member and its previous pointer the largest.
package scdll

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Direction selects one of the two pointers of a node. The byte value is the
// domain separator mixed into the pointer's storage slot.
type Direction byte

const (
	Previous Direction = 0x00
	Next     Direction = 0x01
)

// MaxSize is the maximum number of elements one list can hold, and the hard
// bound on every pointer walk.
const MaxSize uint64 = 65535

// ElementSlot derives the storage slot of [key]'s pointer in [direction],
// within the list [listID] hosted by [self]. The preimage is the 20 byte
// address, the 32 byte list id, the 32 byte key, and the direction byte, in
// that order.
func ElementSlot(self common.Address, listID common.Hash, key common.Hash, direction Direction) common.Hash {
	return crypto.Keccak256Hash(self.Bytes(), listID.Bytes(), key.Bytes(), []byte{byte(direction)})
}

// SizeSlot derives the storage slot holding the element count of [listID].
// The hosting address is implicit: the slot lives in the host's own storage.
func SizeSlot(listID common.Hash) common.Hash {
	return crypto.Keccak256Hash(listID.Bytes())
}
