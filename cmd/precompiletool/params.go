// (c) 2024-2025, Kiwari Labs. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Kiwari-Labs/go-precompiles/utils/logging"
)

const (
	ConfigFileKey = "config-file"
	LogLevelKey   = "log-level"
	LogFormatKey  = "log-format"
	ContractKey   = "contract"
	CheckKey      = "check"
	HostKey       = "host"
	ListKey       = "list"
	ElementKey    = "element"
)

func addLoggingFlags(fs *pflag.FlagSet) {
	fs.String(ConfigFileKey, "", "If non-empty, load flag defaults from this config file.")
	fs.String(LogLevelKey, "info", "Log level written to stderr: off, fatal, error, warn, info, trace, debug, verbo.")
	fs.String(LogFormatKey, "auto", "Log format: auto, plain, colors, json.")
}

// buildViper returns the viper environment from the command's flags and, when
// requested, a config file.
func buildViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	if err := v.BindPFlags(cmd.InheritedFlags()); err != nil {
		return nil, err
	}
	if v.IsSet(ConfigFileKey) && v.GetString(ConfigFileKey) != "" {
		v.SetConfigFile(os.ExpandEnv(v.GetString(ConfigFileKey)))
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// setup parses the viper environment and builds the command's logger.
func setup(cmd *cobra.Command) (*viper.Viper, logging.Logger, logging.Factory, error) {
	v, err := buildViper(cmd)
	if err != nil {
		return nil, nil, nil, err
	}

	level, err := logging.ToLevel(v.GetString(LogLevelKey))
	if err != nil {
		return nil, nil, nil, err
	}
	format, err := logging.ToFormat(v.GetString(LogFormatKey), os.Stderr.Fd())
	if err != nil {
		return nil, nil, nil, err
	}

	logFactory := logging.NewFactory(logging.Config{
		LogLevel:  level,
		LogFormat: format,
	})
	log, err := logFactory.Make("precompiletool")
	if err != nil {
		logFactory.Close()
		return nil, nil, nil, err
	}
	return v, log, logFactory, nil
}
