package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/branched-services/go-ensresolve"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentLookups bounds in-flight lookups for one invocation.
const maxConcurrentLookups = 8

type lookupResult struct {
	Query    string `json:"query"`
	CoinType uint64 `json:"coinType"`
	Result   string `json:"result,omitempty"`
	Error    string `json:"error,omitempty"`
}

type lookupFunc func(ctx context.Context, r *ensresolve.Resolver, query string, coinType ensresolve.CoinType) (string, error)

func addLookupFlags(cmd *cobra.Command) {
	cmd.Flags().String(optionNameCoinType, "eth", "coin type: decimal, 0x hex, eth, default or legacy")
	cmd.Flags().String(optionNameFormat, "text", "output format: text or json")
}

func (c *command) initAddrCmd() {
	cmd := &cobra.Command{
		Use:   "addr <name>...",
		Short: "Resolve names to addresses",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLookups(cmd, args, func(ctx context.Context, r *ensresolve.Resolver, name string, coinType ensresolve.CoinType) (string, error) {
				rec, err := r.ResolveAddress(ctx, name, coinType)
				if err != nil || rec == nil {
					return "", err
				}
				return rec.String(), nil
			})
		},
	}
	addLookupFlags(cmd)
	c.root.AddCommand(cmd)
}

func (c *command) initNameCmd() {
	cmd := &cobra.Command{
		Use:   "name <address>...",
		Short: "Look up verified primary names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLookups(cmd, args, func(ctx context.Context, r *ensresolve.Resolver, address string, coinType ensresolve.CoinType) (string, error) {
				return r.LookupName(ctx, address, coinType)
			})
		},
	}
	addLookupFlags(cmd)
	c.root.AddCommand(cmd)
}

// runLookups performs one independent lookup per query. A failed lookup does
// not stop the others; the command fails after printing all results.
func (c *command) runLookups(cmd *cobra.Command, queries []string, lookup lookupFunc) error {
	format, _ := cmd.Flags().GetString(optionNameFormat)
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown format %q", format)
	}
	rawCoinType, _ := cmd.Flags().GetString(optionNameCoinType)
	coinType, err := ensresolve.ParseCoinType(rawCoinType)
	if err != nil {
		return err
	}

	s, err := c.newSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	results := make([]lookupResult, len(queries))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(maxConcurrentLookups)
	for i, query := range queries {
		i, query := i, query
		g.Go(func() error {
			lctx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
			defer cancel()

			res := lookupResult{Query: query, CoinType: uint64(coinType)}
			value, err := lookup(lctx, s.resolver, query, coinType)
			if err != nil {
				res.Error = err.Error()
			} else {
				res.Result = value
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	if err := printResults(cmd, format, results); err != nil {
		return err
	}

	var failed int
	for _, res := range results {
		if res.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d lookups failed", failed, len(results))
	}
	return nil
}

func printResults(cmd *cobra.Command, format string, results []lookupResult) error {
	out := cmd.OutOrStdout()
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	for _, res := range results {
		value := res.Result
		switch {
		case res.Error != "":
			value = "error: " + res.Error
		case value == "":
			value = "-"
		}
		if _, err := fmt.Fprintf(out, "%s\t%s\n", res.Query, value); err != nil {
			return err
		}
	}
	return nil
}
