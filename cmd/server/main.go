package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/taoyao-code/ubx-gateway/internal/app/bootstrap"
	cfgpkg "github.com/taoyao-code/ubx-gateway/internal/config"
	"github.com/taoyao-code/ubx-gateway/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "config file (default: $UBX_CONFIG or configs/example.yaml)")
	flag.Parse()

	// 1) 加载配置
	cfg, err := cfgpkg.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2) 初始化日志
	logger, err := logging.InitLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	// 3) 启动
	if err := bootstrap.Run(cfg, zap.L()); err != nil {
		zap.L().Error("gateway exited with error", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}
