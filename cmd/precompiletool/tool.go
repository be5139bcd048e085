// (c) 2024-2025, Kiwari Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/Kiwari-Labs/go-precompiles/precompile/contracts/addressregistry"
	"github.com/Kiwari-Labs/go-precompiles/precompile/contracts/feegrant"
	"github.com/Kiwari-Labs/go-precompiles/precompile/contracts/gasprice"
	"github.com/Kiwari-Labs/go-precompiles/precompile/contracts/nativeminter"
	"github.com/Kiwari-Labs/go-precompiles/precompile/contracts/sortedlist"
	"github.com/Kiwari-Labs/go-precompiles/precompile/contracts/treasury"
	"github.com/Kiwari-Labs/go-precompiles/precompile/modules"
	"github.com/Kiwari-Labs/go-precompiles/precompile/scdll"
)

// contractABIs maps every config key to the contract's ABI. Importing the
// contract packages also runs their init registration, so the modules command
// sees the full family.
var contractABIs = map[string]abi.ABI{
	addressregistry.ConfigKey: addressregistry.AddressRegistryABI,
	feegrant.ConfigKey:        feegrant.GasFeeGrantABI,
	gasprice.ConfigKey:        gasprice.GasPriceABI,
	nativeminter.ConfigKey:    nativeminter.NativeMinterABI,
	sortedlist.ConfigKey:      sortedlist.SortedListABI,
	treasury.ConfigKey:        treasury.TreasuryRegistryABI,
}

func newModulesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modules",
		Short: "List the registered precompile modules",
		RunE:  runModules,
	}
	cmd.Flags().String(CheckKey, "", "Report the registration status of this address instead of listing.")
	return cmd
}

func runModules(cmd *cobra.Command, _ []string) error {
	v, log, logFactory, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logFactory.Close()

	if check := v.GetString(CheckKey); check != "" {
		if !common.IsHexAddress(check) {
			return fmt.Errorf("invalid address %q", check)
		}
		addr := common.HexToAddress(check)
		module, registered := modules.GetPrecompileModuleByAddress(addr)
		switch {
		case registered:
			log.Info("address is registered",
				zap.String("address", addr.Hex()),
				zap.String("configKey", module.ConfigKey),
			)
		case modules.ReservedAddress(addr):
			log.Info("address is reserved but unclaimed",
				zap.String("address", addr.Hex()),
			)
		default:
			log.Warn("address is outside the reserved ranges",
				zap.String("address", addr.Hex()),
			)
		}
		return nil
	}

	registered := modules.RegisteredModules()
	log.Debug("enumerating registered modules", zap.Int("count", len(registered)))
	for _, module := range registered {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", module.Address.Hex(), module.ConfigKey)
	}
	return nil
}

func newSelectorsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "selectors",
		Short: "Print the 4 byte selector of every contract function",
		RunE:  runSelectors,
	}
	cmd.Flags().String(ContractKey, "", "Restrict output to the contract registered under this config key.")
	return cmd
}

func runSelectors(cmd *cobra.Command, _ []string) error {
	v, log, logFactory, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logFactory.Close()

	filter := v.GetString(ContractKey)
	if filter != "" {
		if _, ok := contractABIs[filter]; !ok {
			return fmt.Errorf("unknown contract %q", filter)
		}
	}

	configKeys := maps.Keys(contractABIs)
	slices.Sort(configKeys)
	for _, configKey := range configKeys {
		if filter != "" && filter != configKey {
			continue
		}
		contractABI := contractABIs[configKey]

		methodNames := maps.Keys(contractABI.Methods)
		slices.Sort(methodNames)
		log.Debug("printing contract selectors",
			zap.String("configKey", configKey),
			zap.Int("methods", len(methodNames)),
		)
		for _, name := range methodNames {
			method := contractABI.Methods[name]
			fmt.Fprintf(cmd.OutOrStdout(), "%s %#x %s\n", configKey, method.ID, method.Sig)
		}
	}
	return nil
}

func newSlotsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Derive the storage slots of a sorted list",
		Long: "Derive the storage slots backing a sorted list: the size slot, the " +
			"sentinel pointers, and, for a given element, its two pointer slots.",
		RunE: runSlots,
	}
	cmd.Flags().String(HostKey, sortedlist.ContractAddress.Hex(), "Account whose storage holds the list.")
	cmd.Flags().String(ListKey, "0x0", "List identifier, as a hex word.")
	cmd.Flags().String(ElementKey, "", "If non-empty, also derive this element's pointer slots.")
	return cmd
}

func runSlots(cmd *cobra.Command, _ []string) error {
	v, log, logFactory, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logFactory.Close()

	hostStr := v.GetString(HostKey)
	if !common.IsHexAddress(hostStr) {
		return fmt.Errorf("invalid host address %q", hostStr)
	}
	host := common.HexToAddress(hostStr)
	listID := common.HexToHash(v.GetString(ListKey))

	log.Debug("deriving list slots",
		zap.String("host", host.Hex()),
		zap.String("list", listID.Hex()),
	)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "size %s\n", scdll.SizeSlot(listID).Hex())
	fmt.Fprintf(out, "head %s\n", scdll.ElementSlot(host, listID, common.Hash{}, scdll.Next).Hex())
	fmt.Fprintf(out, "tail %s\n", scdll.ElementSlot(host, listID, common.Hash{}, scdll.Previous).Hex())

	if elementStr := v.GetString(ElementKey); elementStr != "" {
		element := common.HexToHash(elementStr)
		fmt.Fprintf(out, "element.prev %s\n", scdll.ElementSlot(host, listID, element, scdll.Previous).Hex())
		fmt.Fprintf(out, "element.next %s\n", scdll.ElementSlot(host, listID, element, scdll.Next).Hex())
	}
	return nil
}
