package handler

import (
	"errors"
	"net/http"

	"CardioCheck/internal/modules/prediction/application/dto/request"
	"CardioCheck/internal/modules/prediction/application/dto/respond"
	"CardioCheck/internal/modules/prediction/application/service"
	"CardioCheck/internal/modules/prediction/domain/classifier"
	"CardioCheck/internal/modules/prediction/domain/validation"
	"CardioCheck/pkg/back"
	"CardioCheck/pkg/xerr"
	"CardioCheck/pkg/zlog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PredictionHandler struct {
	svc       service.PredictionService
	entryPath string
}

// NewPredictionHandler entryPath 为无结果时结果页的重定向目标
func NewPredictionHandler(svc service.PredictionService, entryPath string) *PredictionHandler {
	if entryPath == "" {
		entryPath = "/"
	}
	return &PredictionHandler{svc: svc, entryPath: entryPath}
}

// Predict POST /api/predict
func (h *PredictionHandler) Predict(c *gin.Context) {
	var req request.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zlog.Warn("bind predict request failed", zap.Error(err))
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}

	_, err := h.svc.Submit(c.Request.Context(), c.Writer, req)

	var (
		verr     *validation.ValidationError
		relayErr *service.RelayError
	)
	switch {
	case err == nil:
		back.Success(c, respond.PredictRespond{Success: true})
	case errors.As(err, &verr):
		back.ErrorWithData(c, xerr.ErrValidation.Code, xerr.ErrValidation.Message, respond.ValidationRespond{Fields: verr.Fields})
	case errors.As(err, &relayErr):
		back.Error(c, xerr.ErrUpstream.Code, xerr.ErrUpstream.Message)
	default:
		back.Result(c, nil, err)
	}
}

// ResultView GET /result，无结果时重定向回提交入口而不是展示错误页
func (h *PredictionHandler) ResultView(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	result, err := h.svc.Result(c.Request)
	if errors.Is(err, classifier.ErrNoResult) {
		c.Redirect(http.StatusSeeOther, h.entryPath)
		return
	}
	back.Result(c, result, err)
}

// Result GET /api/result，供脚本调用，无结果时返回 404 业务码
func (h *PredictionHandler) Result(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	result, err := h.svc.Result(c.Request)
	if errors.Is(err, classifier.ErrNoResult) {
		back.Error(c, xerr.ErrNoResult.Code, xerr.ErrNoResult.Message)
		return
	}
	back.Result(c, result, err)
}
