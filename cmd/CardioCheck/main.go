package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	https_server "CardioCheck/api/http"
	"CardioCheck/internal/config"
	"CardioCheck/pkg/zlog"

	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	conf := config.GetConfig()
	if err := zlog.Init(conf.LogPath, conf.Level); err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer zlog.Sync()

	engine, err := https_server.NewEngine(conf, https_server.Deps{})
	if err != nil {
		zlog.Fatal("初始化路由失败", zap.Error(err))
	}

	addr := fmt.Sprintf("%s:%d", conf.MainConfig.Host, conf.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// 必须大于推理超时，否则 relay 失败的响应写不回去
		WriteTimeout: time.Duration(conf.TimeoutSeconds+10) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 2. 启动 HTTP 服务
	go func() {
		zlog.Info("服务器正在启动", zap.String("addr", addr), zap.String("inference", conf.InferenceConfig.URL))
		// TLS 由前置反向代理终结
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("服务器启动失败", zap.Error(err))
		}
	}()

	// 3. 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("正在关闭服务器...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("服务器关闭超时", zap.Error(err))
	}
	zlog.Info("服务器已关闭")
}
