package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"CardioCheck/internal/modules/prediction/application/dto/request"
	"CardioCheck/internal/modules/prediction/domain/classifier"
	"CardioCheck/internal/modules/prediction/domain/entity"
	"CardioCheck/internal/modules/prediction/domain/repository"
	"CardioCheck/internal/modules/prediction/domain/validation"
	"CardioCheck/internal/modules/prediction/infrastructure/metrics"
	"CardioCheck/pkg/zlog"

	"go.uber.org/zap"
)

// PredictionService 接口定义 (Application Service)
type PredictionService interface {
	// Submit 校验 → 调用推理服务 → 写入会话凭证
	Submit(ctx context.Context, w http.ResponseWriter, req request.PredictRequest) (*entity.InferenceResponse, error)
	// Result 读取会话凭证并分档，凭证不存在时返回 classifier.ErrNoResult
	Result(r *http.Request) (*entity.RiskClassification, error)
}

type predictionServiceImpl struct {
	client     repository.InferenceClient
	store      repository.ArtifactStore
	classifier *classifier.Classifier
	timeout    time.Duration
	recorder   *metrics.Recorder
}

// NewPredictionService 构造函数；timeout <= 0 时不额外限制（仍受 http.Client 超时约束）
func NewPredictionService(
	client repository.InferenceClient,
	store repository.ArtifactStore,
	c *classifier.Classifier,
	timeout time.Duration,
	recorder *metrics.Recorder,
) PredictionService {
	if c == nil {
		c = classifier.New(nil)
	}
	return &predictionServiceImpl{
		client:     client,
		store:      store,
		classifier: c,
		timeout:    timeout,
		recorder:   recorder,
	}
}

func (s *predictionServiceImpl) Submit(ctx context.Context, w http.ResponseWriter, req request.PredictRequest) (*entity.InferenceResponse, error) {
	// 1. 校验失败时从未发起调用，已有凭证保持不变
	patient, err := validation.Validate(req.Fields())
	if err != nil {
		s.recorder.ObserveRejected()
		return nil, err
	}

	// 2. 单次同步外呼，不重试
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := s.client.Predict(ctx, entity.NewInferenceRequest(patient))
	elapsed := time.Since(start)
	if err != nil {
		relayErr := newRelayError(err)
		s.recorder.ObserveRelay(string(relayErr.Kind), elapsed)
		// 已尝试且失败：清掉旧凭证，避免展示与本次提交不一致的结果
		s.store.Clear(w)
		zlog.Warn("inference relay failed",
			zap.String("kind", string(relayErr.Kind)),
			zap.Int("upstream_status", relayErr.StatusCode),
			zap.Duration("elapsed", elapsed),
			zap.Error(relayErr.Err))
		return nil, relayErr
	}
	s.recorder.ObserveRelay(metrics.OutcomeSuccess, elapsed)

	// 3. 原样写入会话凭证
	if err := s.store.Save(w, *resp); err != nil {
		s.store.Clear(w)
		zlog.Error("write session artifact failed", zap.Error(err))
		return nil, err
	}

	zlog.Debug("inference relay succeeded", zap.Duration("elapsed", elapsed))
	return resp, nil
}

func (s *predictionServiceImpl) Result(r *http.Request) (*entity.RiskClassification, error) {
	resp := s.store.Load(r)
	s.recorder.ObserveResult(resp != nil)

	result, err := s.classifier.Classify(resp)
	if err != nil {
		if !errors.Is(err, classifier.ErrNoResult) {
			zlog.Error("classify result failed", zap.Error(err))
		}
		return nil, err
	}
	return result, nil
}
