// Package cmd implements the ensresolve command line.
package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/branched-services/go-ensresolve"
	"github.com/branched-services/go-ensresolve/internal/config"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	optionNameConfig   = "config"
	optionNameRPCURL   = "rpc-url"
	optionNameLogLevel = "log-level"
	optionNameCoinType = "coin-type"
	optionNameFormat   = "format"
)

type command struct {
	root   *cobra.Command
	config *viper.Viper
	caller ethereum.ContractCaller
}

type option func(*command)

// WithArgs sets the command line arguments, replacing os.Args[1:].
func WithArgs(a ...string) option {
	return func(c *command) {
		c.root.SetArgs(a)
	}
}

// WithOutput sets where command output is written.
func WithOutput(w io.Writer) option {
	return func(c *command) {
		c.root.SetOut(w)
		c.root.SetErr(w)
	}
}

// WithInput sets where command input is read from.
func WithInput(r io.Reader) option {
	return func(c *command) {
		c.root.SetIn(r)
	}
}

// WithCaller makes lookups use caller instead of dialing rpc_url.
func WithCaller(caller ethereum.ContractCaller) option {
	return func(c *command) {
		c.caller = caller
	}
}

func newCommand(opts ...option) (*command, error) {
	c := &command{
		root: &cobra.Command{
			Use:           "ensresolve",
			Short:         "Resolve ENS names and primary names",
			SilenceErrors: true,
			SilenceUsage:  true,
		},
		config: viper.New(),
	}

	for _, o := range opts {
		o(c)
	}

	flags := c.root.PersistentFlags()
	flags.String(optionNameConfig, "", "config file (default ./ensresolve.yaml)")
	flags.String(optionNameRPCURL, "", "Ethereum JSON-RPC endpoint")
	flags.String(optionNameLogLevel, "", "log level: debug, info, warn, error")
	if err := c.config.BindPFlag("rpc_url", flags.Lookup(optionNameRPCURL)); err != nil {
		return nil, err
	}
	if err := c.config.BindPFlag("log.level", flags.Lookup(optionNameLogLevel)); err != nil {
		return nil, err
	}

	c.initAddrCmd()
	c.initNameCmd()
	c.initResolverCmd()
	c.initServeCmd()
	c.initVersionCmd()

	return c, nil
}

// Execute runs the root command.
func (c *command) Execute() error {
	return c.root.Execute()
}

// Execute parses command line arguments and runs appropriate functions.
func Execute() error {
	c, err := newCommand()
	if err != nil {
		return err
	}
	return c.Execute()
}

// loadConfig reads configuration once flags are parsed.
func (c *command) loadConfig() (*config.Config, error) {
	if path, _ := c.root.PersistentFlags().GetString(optionNameConfig); path != "" {
		c.config.SetConfigFile(path)
	}
	return config.Load(c.config)
}

// session is everything a subcommand needs to run lookups.
type session struct {
	cfg      *config.Config
	logger   *zap.Logger
	resolver *ensresolve.Resolver
	close    func()
}

func (c *command) newSession(ctx context.Context) (*session, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := cfg.Log.NewLogger()
	if err != nil {
		return nil, fmt.Errorf("new logger: %w", err)
	}

	closeFn := func() { _ = logger.Sync() }
	caller := c.caller
	if caller == nil {
		client, err := ethclient.DialContext(ctx, cfg.RPCURL)
		if err != nil {
			return nil, fmt.Errorf("dial %s: %w", cfg.RPCURL, err)
		}
		caller = client
		closeFn = func() {
			client.Close()
			_ = logger.Sync()
		}
	}

	return &session{
		cfg:      cfg,
		logger:   logger,
		resolver: ensresolve.New(caller, cfg.ResolverOptions(logger)...),
		close:    closeFn,
	}, nil
}
