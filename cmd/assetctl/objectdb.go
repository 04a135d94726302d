package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nullsector/assetkit/internal/binreader"
	"github.com/nullsector/assetkit/objectdb"
)

func newDBExportCmd() *cobra.Command {
	var typeFilter, fileFilter string
	var mainOnly bool

	cmd := &cobra.Command{
		Use:   "db-export <database-file> <out-dir>",
		Short: "Export object database records to per-record text files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			db, err := objectdb.Parse(data, nil)
			if err != nil {
				return err
			}

			q := objectdb.NewQuery(db)
			if typeFilter != "" {
				q.TypeExact(typeFilter)
			}
			if fileFilter != "" {
				q.File(fileFilter)
			}
			if mainOnly {
				q.MainOnly()
			}

			if err := os.MkdirAll(args[1], 0o755); err != nil {
				return err
			}

			for _, r := range q.Collect() {
				text, err := db.ExportRecord(r)
				if err != nil {
					fmt.Fprintf(os.Stderr, "export %s: %v\n", binreader.Identifier(r.ID), err)
					continue
				}
				name := db.RecordName(r)
				if name == "" {
					name = binreader.Identifier(r.ID).String()
				}
				dest := filepath.Join(args[1], name+".xml")
				if err := os.WriteFile(dest, []byte(text), 0o644); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&typeFilter, "type", "", "exact struct-name filter")
	cmd.Flags().StringVar(&fileFilter, "file", "", "exact source-file filter")
	cmd.Flags().BoolVar(&mainOnly, "main-only", false, "only export each file's canonical record")
	return cmd
}
