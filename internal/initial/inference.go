package initial

import (
	"net"
	"net/http"
	"time"

	"CardioCheck/internal/config"
	"CardioCheck/internal/modules/prediction/domain/repository"
	"CardioCheck/internal/modules/prediction/infrastructure/inference"
	"CardioCheck/pkg/zlog"

	"go.uber.org/zap"
)

// NewInferenceClient 按配置构造推理服务客户端，整体超时即单次 relay 的上限
func NewInferenceClient(conf *config.Config) repository.InferenceClient {
	timeout := InferenceTimeout(conf)
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: timeout, KeepAlive: 30 * time.Second}).DialContext,
		TLSHandshakeTimeout:   timeout,
		ResponseHeaderTimeout: timeout,
		MaxIdleConns:          16,
		IdleConnTimeout:       90 * time.Second,
	}
	client := &http.Client{Timeout: timeout, Transport: transport}

	zlog.Info("inference client ready",
		zap.String("url", conf.InferenceConfig.URL),
		zap.Duration("timeout", timeout),
	)
	return inference.NewHTTPClient(conf.InferenceConfig.URL, client, conf.MaxResponseBytes)
}

func InferenceTimeout(conf *config.Config) time.Duration {
	return time.Duration(conf.TimeoutSeconds) * time.Second
}
