package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/iw2rmb/quill/document"
	"github.com/iw2rmb/quill/export"
)

func newExportCmd() *cobra.Command {
	var (
		format string
		tree   string
		query  string
		digest bool
	)
	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Print a raw document as a raw or AST tree",
		Long: `Read a raw JSON document and print it as a raw tree or an AST tree.

Examples:
  quill export doc.json --tree ast --format yaml
  quill export doc.json --query 'blocks.#.text'
  quill export doc.json --digest`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			content, err := loadRaw(args[0])
			if err != nil {
				return err
			}

			raw := export.ToRaw(content)
			if digest {
				sum, err := export.Digest(raw)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), sum)
				return err
			}

			var v any
			switch tree {
			case "raw":
				v = raw
			case "ast":
				v = export.ToAST(document.New(content, document.Options{}))
			default:
				return fmt.Errorf("unknown tree %q (want raw or ast)", tree)
			}

			if query != "" {
				data, err := json.Marshal(v)
				if err != nil {
					return fmt.Errorf("encode tree: %w", err)
				}
				res := gjson.GetBytes(data, query)
				if !res.Exists() {
					return fmt.Errorf("query %q matched nothing", query)
				}
				v = res.Value()
			}
			return export.Encode(cmd.OutOrStdout(), f, v)
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or yaml")
	cmd.Flags().StringVar(&tree, "tree", "raw", "tree form: raw or ast")
	cmd.Flags().StringVarP(&query, "query", "q", "", "gjson path selecting part of the tree")
	cmd.Flags().BoolVar(&digest, "digest", false, "print the BLAKE3 digest of the raw tree instead")
	return cmd
}
