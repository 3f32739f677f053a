package http

import (
	"net/http"
	"time"

	"CardioCheck/internal/config"
	"CardioCheck/internal/initial"
	"CardioCheck/internal/middleware/ratelimit"
	"CardioCheck/internal/middleware/requestlog"
	"CardioCheck/internal/modules/prediction/application/service"
	"CardioCheck/internal/modules/prediction/domain/classifier"
	"CardioCheck/internal/modules/prediction/domain/repository"
	"CardioCheck/internal/modules/prediction/infrastructure/metrics"
	"CardioCheck/internal/modules/prediction/infrastructure/session"
	predictionHandler "CardioCheck/internal/modules/prediction/interface/http"
	"CardioCheck/pkg/ssl"

	cors "github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps 可替换的外部依赖，为空时按配置构造
type Deps struct {
	Client   repository.InferenceClient
	Registry *prometheus.Registry
}

// NewEngine 组装路由与中间件
func NewEngine(conf *config.Config, deps Deps) (*gin.Engine, error) {
	gin.SetMode(conf.Mode)

	signer, err := initial.NewSigner(conf)
	if err != nil {
		return nil, err
	}
	if deps.Client == nil {
		deps.Client = initial.NewInferenceClient(conf)
	}
	if deps.Registry == nil {
		deps.Registry = prometheus.NewRegistry()
		deps.Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	store := session.NewCookieStore(signer, session.Options{
		Name:   conf.CookieName,
		Path:   conf.SessionConfig.Path,
		TTL:    time.Duration(conf.TTLSeconds) * time.Second,
		Secure: !conf.Insecure,
	})
	recorder := metrics.NewRecorder(deps.Registry)
	predictionSvc := service.NewPredictionService(deps.Client, store, classifier.New(nil), initial.InferenceTimeout(conf), recorder)
	predictionH := predictionHandler.NewPredictionHandler(predictionSvc, conf.EntryPath)

	GE := gin.New()
	GE.Use(gin.Recovery(), requestlog.Middleware())
	if len(conf.AllowOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = conf.AllowOrigins
		corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", requestlog.HeaderRequestID}
		corsConfig.ExposeHeaders = []string{requestlog.HeaderRequestID}
		// 结果页依赖 Cookie，跨域提交必须携带凭证
		corsConfig.AllowCredentials = true
		GE.Use(cors.New(corsConfig))
	}
	GE.Use(ssl.TlsHandler(ssl.Options{
		SSLRedirect:   conf.SSLRedirect,
		SSLHost:       conf.SSLHost,
		IsDevelopment: conf.IsDevelopment,
	}))

	GE.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	GE.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))

	limiter := ratelimit.New(conf.RPS, conf.Burst, 10*time.Minute)
	GE.POST("/api/predict", limiter.Middleware(), predictionH.Predict)
	GE.GET("/api/result", predictionH.Result)
	GE.GET("/result", predictionH.ResultView)

	return GE, nil
}
