// (c) 2024-2025, Kiwari Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package gasprice

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/Kiwari-Labs/go-precompiles/precompile/ownable"
	"github.com/Kiwari-Labs/go-precompiles/precompile/precompileconfig"
	"github.com/Kiwari-Labs/go-precompiles/utils"
)

var _ precompileconfig.Config = &Config{}

var errNegativeGasPrice = errors.New("initial gas price cannot be negative")

// Config wraps [ownable.OwnableConfig] and uses it to implement the
// precompileconfig.Config interface while adding in the fixed gas price
// specific precompile address and an optional initial price.
type Config struct {
	ownable.OwnableConfig
	precompileconfig.Upgrade

	// InitialGasPrice, when set, is stored and enabled at activation.
	InitialGasPrice *math.HexOrDecimal256 `json:"initialGasPrice,omitempty"`
}

// NewConfig returns a config for a network upgrade at [blockTimestamp] that
// enables the fixed gas price contract with [initialOwner] as the contract
// owner and [initialGasPrice] as the optional starting price.
func NewConfig(blockTimestamp *uint64, initialOwner *common.Address, initialGasPrice *math.HexOrDecimal256) *Config {
	return &Config{
		OwnableConfig: ownable.OwnableConfig{
			InitialOwner: initialOwner,
		},
		Upgrade:         precompileconfig.Upgrade{BlockTimestamp: blockTimestamp},
		InitialGasPrice: initialGasPrice,
	}
}

// NewDisableConfig returns config for a network upgrade at [blockTimestamp]
// that disables the fixed gas price contract.
func NewDisableConfig(blockTimestamp *uint64) *Config {
	return &Config{
		Upgrade: precompileconfig.Upgrade{
			BlockTimestamp: blockTimestamp,
			Disable:        true,
		},
	}
}

func (*Config) Key() string { return ConfigKey }

func (*Config) Address() common.Address { return ContractAddress }

func (c *Config) Verify() error {
	if err := c.OwnableConfig.Verify(); err != nil {
		return err
	}
	if c.InitialGasPrice != nil && (*big.Int)(c.InitialGasPrice).Sign() < 0 {
		return errNegativeGasPrice
	}
	return nil
}

// Equal returns true if [cfg] is a [*Config] and it has been configured identical to [c].
func (c *Config) Equal(cfg precompileconfig.Config) bool {
	other, ok := (cfg).(*Config)
	if !ok {
		return false
	}
	return c.Upgrade.Equal(&other.Upgrade) &&
		c.OwnableConfig.Equal(&other.OwnableConfig) &&
		utils.BigEqual((*big.Int)(c.InitialGasPrice), (*big.Int)(other.InitialGasPrice))
}
