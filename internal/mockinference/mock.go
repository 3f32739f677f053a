// Package mockinference 本地推理服务替身，协议与线上 /predict 一致
package mockinference

import (
	"math"
	"net/http"
	"time"

	"CardioCheck/internal/modules/prediction/domain/entity"
	"CardioCheck/pkg/zlog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Score 由 BMI 与各项指标计算确定性的 logistic 得分，返回患病概率
func Score(req entity.InferenceRequest) float64 {
	bmi := 0.0
	if req.Height > 0 {
		m := float64(req.Height) / 100
		bmi = req.Weight / (m * m)
	}
	z := -5.5 +
		0.05*float64(req.Age) +
		0.04*float64(req.ApHi-120) +
		0.03*float64(req.ApLo-80) +
		0.5*float64(req.Cholesterol-1) +
		0.3*float64(req.Gluc-1) +
		0.08*(bmi-25) +
		0.4*float64(req.Smoke) +
		0.2*float64(req.Alco) -
		0.4*float64(req.Active)
	return 1 / (1 + math.Exp(-z))
}

// Predict 三位小数的概率，两者之和恒为 1
func Predict(req entity.InferenceRequest) entity.InferenceResponse {
	disease := math.Round(Score(req)*1000) / 1000
	resp := entity.InferenceResponse{
		Prediction:           entity.NoDisease,
		ProbabilityNoDisease: math.Round((1-disease)*1000) / 1000,
		ProbabilityDisease:   disease,
	}
	if disease >= 0.5 {
		resp.Prediction = entity.Disease
	}
	return resp
}

// NewEngine delay 模拟冷启动等上游延迟
func NewEngine(delay time.Duration) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.POST("/predict", func(c *gin.Context) {
		var req entity.InferenceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
			return
		}
		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-c.Request.Context().Done():
				return
			}
		}
		resp := Predict(req)
		zlog.Debug("mock predict", zap.Int("prediction", int(resp.Prediction)))
		c.JSON(http.StatusOK, resp)
	})
	return r
}
