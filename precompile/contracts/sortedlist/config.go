// (c) 2024-2025, Kiwari Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package sortedlist

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/Kiwari-Labs/go-precompiles/precompile/ownable"
	"github.com/Kiwari-Labs/go-precompiles/precompile/precompileconfig"
)

var _ precompileconfig.Config = &Config{}

// Config implements the precompileconfig.Config interface and adds the
// activation schedule and optional initial owner of the sorted list contract.
type Config struct {
	ownable.OwnableConfig
	precompileconfig.Upgrade
}

// NewConfig returns a config that activates the sorted list contract at
// [blockTimestamp] with [initialOwner] seeded as its owner. A nil
// [initialOwner] leaves the contract uninitialized.
func NewConfig(blockTimestamp *uint64, initialOwner *common.Address) *Config {
	return &Config{
		OwnableConfig: ownable.OwnableConfig{InitialOwner: initialOwner},
		Upgrade:       precompileconfig.Upgrade{BlockTimestamp: blockTimestamp},
	}
}

// NewDisableConfig returns a config that deactivates the sorted list contract
// at [blockTimestamp].
func NewDisableConfig(blockTimestamp *uint64) *Config {
	return &Config{
		Upgrade: precompileconfig.Upgrade{
			BlockTimestamp: blockTimestamp,
			Disable:        true,
		},
	}
}

// Key returns the key for the sorted list precompile config.
func (*Config) Key() string { return ConfigKey }

// Address returns the address of the sorted list contract.
func (*Config) Address() common.Address { return ContractAddress }

// Verify checks the validity of this config.
func (c *Config) Verify() error {
	return c.OwnableConfig.Verify()
}

// Equal returns true if [cfg] is a sortedlist config with the same schedule
// and initial owner.
func (c *Config) Equal(cfg precompileconfig.Config) bool {
	other, ok := cfg.(*Config)
	if !ok {
		return false
	}
	return c.Upgrade.Equal(&other.Upgrade) && c.OwnableConfig.Equal(&other.OwnableConfig)
}
