package main

import (
	"asset-transfer-gateway/blockchains/mock"
	"asset-transfer-gateway/core"
	"asset-transfer-gateway/core/configs"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Runs the demo of every organization against the in-process ledger, with
// event relaying enabled, and prints the resulting state of each channel.
func main() {
	orgs := pflag.Int("orgs", 3, "number of organizations")
	pflag.Parse()

	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logger, err := config.Build()
	if err != nil {
		os.Exit(1)
	}
	zap.ReplaceGlobals(logger)

	ledger := mock.NewLedger()

	var cfgs []*configs.OrgConfig
	for org := 1; org <= *orgs; org++ {
		cfgs = append(cfgs, &configs.OrgConfig{
			Org:              org,
			ChannelName:      fmt.Sprintf("org%d", org),
			RelayChannelName: "mychannel",
			ChaincodeName:    "basic",
			MspID:            fmt.Sprintf("Org%dMSP", org),
			UserName:         "User1",
		})
	}

	driver := core.NewOfflineDriver(ledger)
	driver.Listen = true
	driver.ListenTimeout = 100 * time.Millisecond

	if err := driver.Run(context.Background(), cfgs); err != nil {
		zap.L().Error("run failed", zap.Error(err))
		os.Exit(1)
	}

	for _, cfg := range append(cfgs, &configs.OrgConfig{ChannelName: "mychannel", ChaincodeName: "basic"}) {
		state := ledger.State(cfg.ChannelName, cfg.ChaincodeName)
		zap.L().Info("channel state",
			zap.String("channel", cfg.ChannelName),
			zap.Int("assets", len(state)),
			zap.Uint64("height", ledger.BlockHeight(cfg.ChannelName)))
	}
}
