// (c) 2024-2025, Kiwari Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"bytes"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/Kiwari-Labs/go-precompiles/precompile/contracts/sortedlist"
	"github.com/Kiwari-Labs/go-precompiles/precompile/modules"
	"github.com/Kiwari-Labs/go-precompiles/precompile/scdll"
	"github.com/Kiwari-Labs/go-precompiles/version"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(append(args, "--log-level", "off"))
	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionFlag(t *testing.T) {
	require := require.New(t)

	out, err := executeCommand(t, "--version")
	require.NoError(err)
	require.Contains(out, version.ClientString())
}

func TestModulesCommand(t *testing.T) {
	require := require.New(t)

	out, err := executeCommand(t, "modules")
	require.NoError(err)

	for _, module := range modules.RegisteredModules() {
		require.Contains(out, module.Address.Hex())
		require.Contains(out, module.ConfigKey)
	}
}

func TestModulesCheckRejectsMalformedAddress(t *testing.T) {
	_, err := executeCommand(t, "modules", "--check", "not-an-address")
	require.ErrorContains(t, err, "invalid address")
}

func TestSelectorsCommand(t *testing.T) {
	require := require.New(t)

	out, err := executeCommand(t, "selectors", "--contract", sortedlist.ConfigKey)
	require.NoError(err)

	require.Contains(out, sortedlist.ConfigKey)
	require.Contains(out, "owner()")
	require.NotContains(out, "mint(address,uint256)")
}

func TestSelectorsRejectsUnknownContract(t *testing.T) {
	_, err := executeCommand(t, "selectors", "--contract", "fancyConfig")
	require.ErrorContains(t, err, "unknown contract")
}

func TestSlotsCommand(t *testing.T) {
	require := require.New(t)

	listID := common.HexToHash("0x1")
	element := common.HexToHash("0x2")

	out, err := executeCommand(t, "slots", "--list", "0x1", "--element", "0x2")
	require.NoError(err)

	require.Contains(out, scdll.SizeSlot(listID).Hex())
	require.Contains(out, scdll.ElementSlot(sortedlist.ContractAddress, listID, common.Hash{}, scdll.Next).Hex())
	require.Contains(out, scdll.ElementSlot(sortedlist.ContractAddress, listID, element, scdll.Previous).Hex())
	require.Contains(out, scdll.ElementSlot(sortedlist.ContractAddress, listID, element, scdll.Next).Hex())
}

func TestSlotsRejectsMalformedHost(t *testing.T) {
	_, err := executeCommand(t, "slots", "--host", "0xzz")
	require.ErrorContains(t, err, "invalid host address")
}
