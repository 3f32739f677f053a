package session

import (
	"errors"
	"net/http"
	"time"

	"CardioCheck/internal/modules/prediction/domain/entity"
	"CardioCheck/internal/modules/prediction/domain/repository"
	"CardioCheck/pkg/util/myjwt"
	"CardioCheck/pkg/zlog"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Options Cookie 属性
type Options struct {
	Name string
	Path string
	TTL  time.Duration
	// Secure 线上必须为 true，只有本地 http 调试才关闭
	Secure bool
}

// artifactClaims 只保存渲染结果所需的三个字段，不包含任何患者指标
type artifactClaims struct {
	Prediction           int     `json:"prediction"`
	ProbabilityNoDisease float64 `json:"probability_no_disease"`
	ProbabilityDisease   float64 `json:"probability_disease"`
	jwt.RegisteredClaims
}

// CookieStore 以签名 Cookie 承载会话凭证，Cookie 即状态
type CookieStore struct {
	signer *myjwt.Signer
	opts   Options
}

func NewCookieStore(signer *myjwt.Signer, opts Options) *CookieStore {
	if opts.Name == "" {
		opts.Name = "prediction"
	}
	if opts.Path == "" {
		opts.Path = "/"
	}
	if opts.TTL <= 0 {
		opts.TTL = 5 * time.Minute
	}
	return &CookieStore{signer: signer, opts: opts}
}

var _ repository.ArtifactStore = (*CookieStore)(nil)

func (s *CookieStore) Save(w http.ResponseWriter, resp entity.InferenceResponse) error {
	claims := artifactClaims{
		Prediction:           int(resp.Prediction),
		ProbabilityNoDisease: resp.ProbabilityNoDisease,
		ProbabilityDisease:   resp.ProbabilityDisease,
		RegisteredClaims:     s.signer.Registered(s.opts.TTL),
	}
	token, err := s.signer.Sign(claims)
	if err != nil {
		return err
	}

	http.SetCookie(w, s.cookie(token, int(s.opts.TTL/time.Second)))
	return nil
}

func (s *CookieStore) Load(r *http.Request) *entity.InferenceResponse {
	c, err := r.Cookie(s.opts.Name)
	if err != nil || c.Value == "" {
		return nil
	}

	var claims artifactClaims
	if err := s.signer.Parse(c.Value, &claims); err != nil {
		if !errors.Is(err, jwt.ErrTokenExpired) {
			zlog.Warn("session artifact rejected", zap.Error(err))
		}
		return nil
	}

	resp := &entity.InferenceResponse{
		Prediction:           entity.PredictedClass(claims.Prediction),
		ProbabilityNoDisease: claims.ProbabilityNoDisease,
		ProbabilityDisease:   claims.ProbabilityDisease,
	}
	if err := resp.Validate(); err != nil {
		zlog.Warn("session artifact carries invalid result", zap.Error(err))
		return nil
	}
	return resp
}

func (s *CookieStore) Clear(w http.ResponseWriter) {
	http.SetCookie(w, s.cookie("", -1))
}

func (s *CookieStore) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     s.opts.Name,
		Value:    value,
		Path:     s.opts.Path,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: http.SameSiteStrictMode,
	}
}
