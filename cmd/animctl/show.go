package main

import (
	"bytes"
	"fmt"

	"chat-animation/internal/domain/animation"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newShowCmd(s *session) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show [type]",
		Short: "Print the current settings, for one type or all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if len(args) == 1 {
				t, perr := animation.ParseType(args[0])
				if perr != nil {
					return perr
				}
				data, err = s.manager.Settings(t).EncodeJSON()
			} else {
				data, err = s.manager.GenerateJSONData()
			}
			if err != nil {
				return err
			}

			switch format {
			case "json":
			case "yaml":
				if data, err = jsonToYAML(data); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q, want json or yaml", format)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bytes.TrimSpace(data)))
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	return cmd
}

// jsonToYAML re-renders a JSON document as block-style YAML, keeping key order.
func jsonToYAML(data []byte) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	clearStyle(&node)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, child := range n.Content {
		clearStyle(child)
	}
}
