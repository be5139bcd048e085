// (c) 2024-2025, Kiwari Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package scdll

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func TestElementSlotDerivation(t *testing.T) {
	require := require.New(t)

	self := common.HexToAddress("0x0000000000000000000000000000000000000807")
	listID := common.BigToHash(common.Big1)
	k := key(42)

	// 20 address bytes, two full words, then the single direction byte.
	preimage := make([]byte, 0, 85)
	preimage = append(preimage, self.Bytes()...)
	preimage = append(preimage, listID.Bytes()...)
	preimage = append(preimage, k.Bytes()...)
	preimage = append(preimage, byte(Next))
	require.Equal(crypto.Keccak256Hash(preimage), ElementSlot(self, listID, k, Next))
}

func TestElementSlotsDistinct(t *testing.T) {
	require := require.New(t)

	self := common.HexToAddress("0x0000000000000000000000000000000000000807")
	other := common.HexToAddress("0x0000000000000000000000000000000000000801")
	listID := common.BigToHash(common.Big1)
	otherID := common.BigToHash(common.Big2)

	slots := []common.Hash{
		ElementSlot(self, listID, key(1), Next),
		ElementSlot(self, listID, key(1), Previous),
		ElementSlot(self, listID, key(2), Next),
		ElementSlot(self, otherID, key(1), Next),
		ElementSlot(other, listID, key(1), Next),
		ElementSlot(self, listID, common.Hash{}, Next),
		SizeSlot(listID),
		SizeSlot(otherID),
	}
	seen := make(map[common.Hash]struct{}, len(slots))
	for _, slot := range slots {
		seen[slot] = struct{}{}
	}
	require.Len(seen, len(slots))
}

func TestSizeSlotDerivation(t *testing.T) {
	listID := common.BigToHash(common.Big2)
	require.Equal(t, crypto.Keccak256Hash(listID.Bytes()), SizeSlot(listID))
}
