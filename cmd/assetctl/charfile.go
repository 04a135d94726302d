package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nullsector/assetkit/charfile"
)

func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

func newCHFInspectCmd() *cobra.Command {
	var roundTrip string

	cmd := &cobra.Command{
		Use:   "chf-inspect <file.chf>",
		Short: "Load a character file and print its identity/morph/material summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := charfile.Load(args[0])
			if err != nil {
				return err
			}
			data, err := charfile.ParseData(f.Payload)
			if err != nil {
				return err
			}

			fmt.Printf("gender id:  %s\n", data.GenderID)
			fmt.Printf("modded:     %v\n", f.Modded)
			nonZero := 0
			for _, p := range data.DNA.Parts {
				if p.Percent() != 0 {
					nonZero++
				}
			}
			fmt.Printf("morphs:     %d non-zero\n", nonZero)
			if data.ItemPort != nil {
				fmt.Printf("attachments: %d\n", data.ItemPort.Count())
			} else {
				fmt.Println("attachments: 0")
			}
			fmt.Printf("materials:  %d\n", len(data.Materials))

			if roundTrip != "" {
				out, err := f.Save()
				if err != nil {
					return err
				}
				return writeFile(roundTrip, out)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&roundTrip, "save", "", "re-save the loaded file to this path (round-trip check)")
	return cmd
}
