package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nullsector/assetkit/binxml"
)

func newXML2TextCmd() *cobra.Command {
	var indent string

	cmd := &cobra.Command{
		Use:   "xml2text <binary-xml-file> <out.xml>",
		Short: "Decode a binary XML file and pretty-print it as text",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			doc, err := binxml.Decode(data)
			if err != nil {
				return err
			}
			text, err := binxml.Pretty(doc, &binxml.EmitOptions{Indent: indent})
			if err != nil {
				return err
			}
			return os.WriteFile(args[1], []byte(text), 0o644)
		},
	}
	cmd.Flags().StringVar(&indent, "indent", "  ", "indentation string")
	return cmd
}

func newXML2BinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xml2bin <text.xml> <out.bin>",
		Short: "Encode XML text into the binary XML wire format",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			root, err := binxml.ParseText(string(text))
			if err != nil {
				return err
			}
			out, err := binxml.Encode(root)
			if err != nil {
				return err
			}
			return os.WriteFile(args[1], out, 0o644)
		},
	}
	return cmd
}
