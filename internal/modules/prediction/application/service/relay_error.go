package service

import (
	"context"
	"errors"
	"fmt"
	"net"

	"CardioCheck/internal/modules/prediction/domain/repository"
	"CardioCheck/internal/modules/prediction/infrastructure/metrics"
)

// RelayErrorKind 外呼失败的分类
type RelayErrorKind string

const (
	KindNetwork   RelayErrorKind = metrics.OutcomeNetwork
	KindTimeout   RelayErrorKind = metrics.OutcomeTimeout
	KindStatus    RelayErrorKind = metrics.OutcomeStatus
	KindMalformed RelayErrorKind = metrics.OutcomeMalformed
)

// RelayError 推理服务调用失败；用户可以重新提交
type RelayError struct {
	Kind RelayErrorKind
	// StatusCode 仅 KindStatus 时有值
	StatusCode int
	Err        error
}

func (e *RelayError) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("relay %s (%d): %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("relay %s: %v", e.Kind, e.Err)
}

func (e *RelayError) Unwrap() error {
	return e.Err
}

func newRelayError(err error) *RelayError {
	var statusErr *repository.UpstreamStatusError
	switch {
	case errors.As(err, &statusErr):
		return &RelayError{Kind: KindStatus, StatusCode: statusErr.StatusCode, Err: err}
	case errors.Is(err, repository.ErrMalformedResponse):
		return &RelayError{Kind: KindMalformed, Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &RelayError{Kind: KindTimeout, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &RelayError{Kind: KindTimeout, Err: err}
	}
	return &RelayError{Kind: KindNetwork, Err: err}
}
