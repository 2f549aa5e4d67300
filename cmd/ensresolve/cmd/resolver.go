package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func (c *command) initResolverCmd() {
	cmd := &cobra.Command{
		Use:   "resolver <name>",
		Short: "Show the active resolver of a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString(optionNameFormat)

			s, err := c.newSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			ctx, cancel := context.WithTimeout(cmd.Context(), s.cfg.CallTimeout)
			defer cancel()

			h := s.resolver.DiscoverResolver(ctx, args[0])
			if h == nil {
				return fmt.Errorf("no resolver for %q", args[0])
			}

			out := cmd.OutOrStdout()
			if format == "json" {
				return json.NewEncoder(out).Encode(map[string]any{
					"name":     h.Name,
					"address":  h.Address.Hex(),
					"node":     h.Node.Hex(),
					"extended": h.Extended,
				})
			}
			_, err = fmt.Fprintf(out, "name:     %s\nresolver: %s\nnode:     %s\nextended: %t\n",
				h.Name, h.Address.Hex(), h.Node.Hex(), h.Extended)
			return err
		},
	}
	cmd.Flags().String(optionNameFormat, "text", "output format: text or json")
	c.root.AddCommand(cmd)
}
