// (c) 2024-2025, Kiwari Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package addressregistry

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/Kiwari-Labs/go-precompiles/precompile/ownable"
	"github.com/Kiwari-Labs/go-precompiles/precompile/precompileconfig"
)

var _ precompileconfig.Config = &Config{}

// Config wraps [ownable.OwnableConfig] and uses it to implement the
// precompileconfig.Config interface while adding in the address registry
// specific precompile address.
type Config struct {
	ownable.OwnableConfig
	precompileconfig.Upgrade
}

// NewConfig returns a config for a network upgrade at [blockTimestamp] that
// enables the address registry with [initialOwner] as the contract owner.
func NewConfig(blockTimestamp *uint64, initialOwner *common.Address) *Config {
	return &Config{
		OwnableConfig: ownable.OwnableConfig{
			InitialOwner: initialOwner,
		},
		Upgrade: precompileconfig.Upgrade{BlockTimestamp: blockTimestamp},
	}
}

// NewDisableConfig returns config for a network upgrade at [blockTimestamp]
// that disables the address registry.
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

func (c *Config) Verify() error { return c.OwnableConfig.Verify() }

// Equal returns true if [cfg] is a [*Config] and it has been configured identical to [c].
func (c *Config) Equal(cfg precompileconfig.Config) bool {
	other, ok := (cfg).(*Config)
	if !ok {
		return false
	}
	return c.Upgrade.Equal(&other.Upgrade) && c.OwnableConfig.Equal(&other.OwnableConfig)
}
