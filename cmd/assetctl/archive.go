package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nullsector/assetkit/archive"
)

func newListCmd() *cobra.Command {
	var pattern string

	cmd := &cobra.Command{
		Use:   "list <archive>",
		Short: "List sealed archive contents, optionally filtered by regex",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := archive.Open(args[0], nil)
			if err != nil {
				return err
			}
			defer a.Close()

			var re *regexp.Regexp
			if pattern != "" {
				re, err = regexp.Compile(pattern)
				if err != nil {
					return err
				}
			}

			for _, e := range a.Iter() {
				if re != nil && !re.MatchString(e.Name) {
					continue
				}
				fmt.Printf("%10d %10d %-8s %v  %s\n",
					e.CompressedSize, e.UncompressedSize, e.CompressionMethod, e.IsEncrypted, e.Name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&pattern, "filter", "", "regex filter over entry names")
	return cmd
}

func newExtractCmd() *cobra.Command {
	var pattern string
	var outDir string

	cmd := &cobra.Command{
		Use:   "extract <archive>",
		Short: "Extract matching entries from a sealed archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := archive.Open(args[0], nil)
			if err != nil {
				return err
			}
			defer a.Close()

			var re *regexp.Regexp
			if pattern != "" {
				re, err = regexp.Compile(pattern)
				if err != nil {
					return err
				}
			}

			entries := a.Iter()
			var indices []int
			for i, e := range entries {
				if re == nil || re.MatchString(e.Name) {
					indices = append(indices, i)
				}
			}

			return a.ExtractParallel(indices, func(index int, name string, data []byte, err error) {
				if err != nil {
					fmt.Fprintf(os.Stderr, "extract %s: %v\n", name, err)
					return
				}
				dest := filepath.Join(outDir, filepath.FromSlash(strings.ReplaceAll(name, `\`, "/")))
				if mkErr := os.MkdirAll(filepath.Dir(dest), 0o755); mkErr != nil {
					fmt.Fprintf(os.Stderr, "extract %s: %v\n", name, mkErr)
					return
				}
				if wErr := os.WriteFile(dest, data, 0o644); wErr != nil {
					fmt.Fprintf(os.Stderr, "extract %s: %v\n", name, wErr)
				}
			})
		},
	}
	cmd.Flags().StringVar(&pattern, "filter", "", "regex filter over entry names")
	cmd.Flags().StringVar(&outDir, "out", ".", "output directory")
	return cmd
}
