// (c) 2024-2025, Kiwari Labs. All rights reserved.
// See the file LICENSE for licensing terms.

// precompiletool inspects the native precompile family: the registered
// modules, their function selectors, and the derived storage slots.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Kiwari-Labs/go-precompiles/version"
)

func init() {
	cobra.EnablePrefixMatching = true
}

func main() {
	rootCmd := newCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "precompiletool failed %v\n", err)
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "precompiletool",
		Short:        "Inspector for the native precompile family",
		Version:      version.ClientString(),
		SilenceUsage: true,
	}

	addLoggingFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		newModulesCommand(),
		newSelectorsCommand(),
		newSlotsCommand(),
	)
	return cmd
}
