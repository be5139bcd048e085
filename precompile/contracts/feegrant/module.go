// (c) 2024-2025, Kiwari Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package feegrant

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Kiwari-Labs/go-precompiles/precompile/contract"
	"github.com/Kiwari-Labs/go-precompiles/precompile/modules"
	"github.com/Kiwari-Labs/go-precompiles/precompile/precompileconfig"
)

var _ contract.Configurator = &configurator{}

// ConfigKey is the key used in json config files to specify this precompile config.
// must be unique across all precompiles.
const ConfigKey = "gasFeeGrantConfig"

var ContractAddress = common.HexToAddress("0x0000000000000000000000000000000000000804")

var Module = modules.Module{
	ConfigKey:    ConfigKey,
	Address:      ContractAddress,
	Contract:     GasFeeGrantPrecompile,
	Configurator: &configurator{},
}

type configurator struct{}

func init() {
	if err := modules.RegisterModule(Module); err != nil {
		panic(err)
	}
}

func (*configurator) MakeConfig() precompileconfig.Config {
	return new(Config)
}

// Configure seeds the contract owner when the precompile activates.
func (*configurator) Configure(_ contract.ChainConfig, cfg precompileconfig.Config, state contract.StateDB, _ contract.BlockContext) error {
	config, ok := cfg.(*Config)
	if !ok {
		return fmt.Errorf("incorrect config %T: %v", cfg, cfg)
	}
	return config.OwnableConfig.Configure(state, ContractAddress)
}
