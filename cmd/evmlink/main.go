// Command evmlink links library placeholders in compiled EVM contract
// artifacts. It reads a compilation-unit JSON produced by a build-tool
// adapter, resolves library references, and writes the deployment order and
// library addresses as a JSON artifact.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var log = logrus.New()

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "evmlink",
	Short: "Resolve and link library references in compiled EVM bytecode",
	Long: `evmlink discovers unresolved library placeholders inside compiled
contract bytecode, computes a deterministic deployment order for the
referenced libraries, allocates synthetic addresses, and rewrites the
bytecode without changing its length.

The input is a compilation-unit JSON file:

	{
	  "compiler": {"family": "solc", "version": "0.8.19"},
	  "contracts": [
	    {
	      "name": "Token",
	      "init_bytecode": "6080...",
	      "runtime_bytecode": "6080...",
	      "absolute_path": "/src/token.sol",
	      "used_path": "token.sol"
	    }
	  ]
	}

Placeholders produced by compiler families or versions evmlink does not
recognize are reported as unresolved and left in the bytecode.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetOutput(os.Stderr)
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(linkCmd)
}
