package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"CardioCheck/internal/modules/prediction/domain/entity"
	"CardioCheck/internal/modules/prediction/domain/repository"
)

// httpClient 通过 HTTP POST 调用外部推理服务，不重试
type httpClient struct {
	url              string
	client           *http.Client
	maxResponseBytes int64
}

// NewHTTPClient client 的 Timeout 即单次调用上限
func NewHTTPClient(url string, client *http.Client, maxResponseBytes int64) repository.InferenceClient {
	if client == nil {
		client = http.DefaultClient
	}
	if maxResponseBytes <= 0 {
		maxResponseBytes = 64 * 1024
	}
	return &httpClient{
		url:              url,
		client:           client,
		maxResponseBytes: maxResponseBytes,
	}
}

func (c *httpClient) Predict(ctx context.Context, req entity.InferenceRequest) (*entity.InferenceResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal inference request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create inference request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call inference service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// 丢弃错误体，避免把上游内容带进日志
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, c.maxResponseBytes))
		return nil, &repository.UpstreamStatusError{StatusCode: resp.StatusCode}
	}

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, c.maxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read inference response: %w", err)
	}
	if int64(len(respBody)) > c.maxResponseBytes {
		return nil, fmt.Errorf("%w: body exceeded %d bytes", repository.ErrMalformedResponse, c.maxResponseBytes)
	}

	var wire wireResponse
	if err := json.Unmarshal(respBody, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrMalformedResponse, err)
	}
	out, err := wire.toEntity()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrMalformedResponse, err)
	}
	return out, nil
}

// wireResponse 指针字段用于区分"缺失"与"零值"
type wireResponse struct {
	Prediction           *int     `json:"prediction"`
	ProbabilityNoDisease *float64 `json:"probability_no_disease"`
	ProbabilityDisease   *float64 `json:"probability_disease"`
}

func (w wireResponse) toEntity() (*entity.InferenceResponse, error) {
	if w.Prediction == nil || w.ProbabilityNoDisease == nil || w.ProbabilityDisease == nil {
		return nil, fmt.Errorf("missing prediction or probability fields")
	}
	out := &entity.InferenceResponse{
		Prediction:           entity.PredictedClass(*w.Prediction),
		ProbabilityNoDisease: *w.ProbabilityNoDisease,
		ProbabilityDisease:   *w.ProbabilityDisease,
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}
