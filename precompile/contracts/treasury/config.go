// (c) 2024-2025, Kiwari Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package treasury

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Kiwari-Labs/go-precompiles/precompile/ownable"
	"github.com/Kiwari-Labs/go-precompiles/precompile/precompileconfig"
)

var _ precompileconfig.Config = &Config{}

var errZeroTreasury = errors.New("initial treasury cannot be the zero address")

// Config wraps [ownable.OwnableConfig] and uses it to implement the
// precompileconfig.Config interface while adding in the treasury registry
// specific precompile address and an optional initial treasury.
type Config struct {
	ownable.OwnableConfig
	precompileconfig.Upgrade

	// InitialTreasury, when set, is stored at activation.
	InitialTreasury *common.Address `json:"initialTreasury,omitempty"`
}

// NewConfig returns a config for a network upgrade at [blockTimestamp] that
// enables the treasury registry with [initialOwner] as the contract owner and
// [initialTreasury] as the optional starting treasury.
func NewConfig(blockTimestamp *uint64, initialOwner *common.Address, initialTreasury *common.Address) *Config {
	return &Config{
		OwnableConfig: ownable.OwnableConfig{
			InitialOwner: initialOwner,
		},
		Upgrade:         precompileconfig.Upgrade{BlockTimestamp: blockTimestamp},
		InitialTreasury: initialTreasury,
	}
}

// NewDisableConfig returns config for a network upgrade at [blockTimestamp]
// that disables the treasury registry.
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
	if c.InitialTreasury != nil && *c.InitialTreasury == (common.Address{}) {
		return errZeroTreasury
	}
	return nil
}

// Equal returns true if [cfg] is a [*Config] and it has been configured identical to [c].
func (c *Config) Equal(cfg precompileconfig.Config) bool {
	other, ok := (cfg).(*Config)
	if !ok {
		return false
	}
	if (c.InitialTreasury == nil) != (other.InitialTreasury == nil) {
		return false
	}
	if c.InitialTreasury != nil && *c.InitialTreasury != *other.InitialTreasury {
		return false
	}
	return c.Upgrade.Equal(&other.Upgrade) && c.OwnableConfig.Equal(&other.OwnableConfig)
}
