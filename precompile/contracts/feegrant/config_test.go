// (c) 2024-2025, Kiwari Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package feegrant

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Kiwari-Labs/go-precompiles/precompile/precompiletest"
	"github.com/Kiwari-Labs/go-precompiles/utils"
)

func TestVerify(t *testing.T) {
	owner := common.HexToAddress("0x1000000000000000000000000000000000000001")
	zero := common.Address{}

	precompiletest.RunVerifyTests(t, map[string]precompiletest.ConfigVerifyTest{
		"config without initial owner": {
			Config: NewConfig(utils.NewUint64(3), nil),
		},
		"config with initial owner": {
			Config: NewConfig(utils.NewUint64(3), &owner),
		},
		"config with zero initial owner": {
			Config:        NewConfig(utils.NewUint64(3), &zero),
			ExpectedError: "initial owner cannot be the zero address",
		},
		"disable config": {
			Config: NewDisableConfig(utils.NewUint64(3)),
		},
	})
}

func TestEqual(t *testing.T) {
	owner := common.HexToAddress("0x1000000000000000000000000000000000000001")
	successor := common.HexToAddress("0x2000000000000000000000000000000000000002")

	precompiletest.RunEqualTests(t, map[string]precompiletest.ConfigEqualTest{
		"non-nil config and nil other": {
			Config:   NewConfig(utils.NewUint64(3), &owner),
			Other:    nil,
			Expected: false,
		},
		"different timestamp": {
			Config:   NewConfig(utils.NewUint64(3), &owner),
			Other:    NewConfig(utils.NewUint64(4), &owner),
			Expected: false,
		},
		"different initial owner": {
			Config:   NewConfig(utils.NewUint64(3), &owner),
			Other:    NewConfig(utils.NewUint64(3), &successor),
			Expected: false,
		},
		"disable config and enable config": {
			Config:   NewDisableConfig(utils.NewUint64(3)),
			Other:    NewConfig(utils.NewUint64(3), nil),
			Expected: false,
		},
		"same config": {
			Config:   NewConfig(utils.NewUint64(3), &owner),
			Other:    NewConfig(utils.NewUint64(3), &owner),
			Expected: true,
		},
	})
}
