// Command assetctl is a thin Cobra front end over the sealed asset
// toolkit: list/extract a sealed archive, convert binary XML to and
// from text, export an object database's records, and inspect or
// round-trip a character file. It is deliberately minimal — no
// progress bars, worker pools, or file dialogs.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "assetctl",
		Short: "Inspect and convert sealed space-sim asset files",
	}

	root.AddCommand(
		newListCmd(),
		newExtractCmd(),
		newXML2TextCmd(),
		newXML2BinCmd(),
		newDBExportCmd(),
		newCHFInspectCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
