// (c) 2024-2025, Kiwari Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package nativeminter

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/Kiwari-Labs/go-precompiles/precompile/ownable"
	"github.com/Kiwari-Labs/go-precompiles/precompile/precompileconfig"
)

var _ precompileconfig.Config = &Config{}

// Config wraps [ownable.OwnableConfig] and uses it to implement the
// precompileconfig.Config interface while adding in the native minter
// specific precompile address and optional genesis style mints.
type Config struct {
	ownable.OwnableConfig
	precompileconfig.Upgrade

	// InitialMint is credited to the listed accounts at activation.
	InitialMint map[common.Address]*math.HexOrDecimal256 `json:"initialMint,omitempty"`
}

// NewConfig returns a config for a network upgrade at [blockTimestamp] that
// enables native minting with [initialOwner] as the contract owner and
// [initialMint] balances credited at activation.
func NewConfig(blockTimestamp *uint64, initialOwner *common.Address, initialMint map[common.Address]*math.HexOrDecimal256) *Config {
	return &Config{
		OwnableConfig: ownable.OwnableConfig{
			InitialOwner: initialOwner,
		},
		Upgrade:     precompileconfig.Upgrade{BlockTimestamp: blockTimestamp},
		InitialMint: initialMint,
	}
}

// NewDisableConfig returns config for a network upgrade at [blockTimestamp]
// that disables native minting.
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
	for account, amount := range c.InitialMint {
		if amount == nil {
			return fmt.Errorf("initial mint cannot contain nil amount for address %s", account)
		}
		if (*big.Int)(amount).Sign() < 1 {
			return fmt.Errorf("initial mint cannot contain invalid amount %v for address %s", (*big.Int)(amount), account)
		}
	}
	return nil
}

// Equal returns true if [cfg] is a [*Config] and it has been configured identical to [c].
func (c *Config) Equal(cfg precompileconfig.Config) bool {
	other, ok := (cfg).(*Config)
	if !ok {
		return false
	}
	if !c.Upgrade.Equal(&other.Upgrade) || !c.OwnableConfig.Equal(&other.OwnableConfig) {
		return false
	}
	if len(c.InitialMint) != len(other.InitialMint) {
		return false
	}
	for account, amount := range c.InitialMint {
		otherAmount, ok := other.InitialMint[account]
		if !ok {
			return false
		}
		if (amount == nil) != (otherAmount == nil) {
			return false
		}
		if amount != nil && (*big.Int)(amount).Cmp((*big.Int)(otherAmount)) != 0 {
			return false
		}
	}
	return true
}
