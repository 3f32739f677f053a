package repository

import (
	"context"
	"errors"
	"fmt"

	"CardioCheck/internal/modules/prediction/domain/entity"
)

// InferenceClient 外部推理服务，每次调用对应一次同步请求
type InferenceClient interface {
	Predict(ctx context.Context, req entity.InferenceRequest) (*entity.InferenceResponse, error)
}

// ErrMalformedResponse 响应体无法解码或不满足契约
var ErrMalformedResponse = errors.New("malformed inference response")

// UpstreamStatusError 推理服务返回非 2xx
type UpstreamStatusError struct {
	StatusCode int
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("inference service returned status %d", e.StatusCode)
}
