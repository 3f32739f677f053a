package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"CardioCheck/internal/mockinference"
	"CardioCheck/pkg/zlog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultAddr    = "127.0.0.1:18090"
	defaultDelayMS = 50
)

// 环境变量：MOCK_INFERENCE_ADDR 监听地址，MOCK_DELAY_MS 人为延迟
func main() {
	addr := strings.TrimSpace(os.Getenv("MOCK_INFERENCE_ADDR"))
	if addr == "" {
		addr = defaultAddr
	}
	delay := defaultDelayMS
	if v := strings.TrimSpace(os.Getenv("MOCK_DELAY_MS")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			delay = parsed
		}
	}

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mockinference.NewEngine(time.Duration(delay) * time.Millisecond),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		zlog.Info("mock inference listening", zap.String("addr", addr), zap.Int("delay_ms", delay))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("mock inference failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	zlog.Sync()
}
