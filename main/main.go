package main

import (
	"asset-transfer-gateway/blockchains/clientinterfaces"
	"asset-transfer-gateway/core"
	"asset-transfer-gateway/core/configs"
	"asset-transfer-gateway/core/configs/parsers"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func prepareLogger(level zapcore.Level) error {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.Level = zap.NewAtomicLevelAt(level)
	logger, err := config.Build()

	if err != nil {
		return errors.Wrap(err, "failed to produce a logger")
	}
	zap.ReplaceGlobals(logger)
	return nil
}

func newRootCommand() *cobra.Command {
	var args *core.Arguments

	cmd := &cobra.Command{
		Use:           "asset-transfer-gateway",
		Short:         "Run the asset-transfer demo as each organization of the test network",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), args)
		},
	}
	args = core.DefineArguments(cmd.Flags())

	return cmd
}

func run(ctx context.Context, args *core.Arguments) error {
	if err := args.CheckArgs(); err != nil {
		return err
	}

	level, _ := args.Level()
	if err := prepareLogger(level); err != nil {
		return err
	}
	defer func() { _ = zap.L().Sync() }()

	var network *configs.NetworkConfig
	if args.ConfigPath != "" {
		zap.L().Info("loading network config", zap.String("path", args.ConfigPath))

		var err error
		network, err = parsers.ParseNetworkConfig(args.ConfigPath)
		if err != nil {
			return err
		}
	}

	cfgs, err := parsers.LoadOrgConfigs(args.Orgs, network)
	if err != nil {
		return err
	}

	driver := core.NewDriver(clientinterfaces.FabricConnector{})
	driver.Listen = args.Listen
	driver.ListenTimeout = args.ListenTimeout

	err = driver.Run(ctx, cfgs)
	if errors.Is(err, context.Canceled) {
		zap.L().Info("interrupted")
		return nil
	}
	return err
}

func main() {
	if err := prepareLogger(zapcore.InfoLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand().ExecuteContext(ctx)
	stop()

	if err != nil {
		zap.L().Error("******** FAILED to run the application", zap.Error(err))
		_ = zap.L().Sync()
		os.Exit(1)
	}
}
