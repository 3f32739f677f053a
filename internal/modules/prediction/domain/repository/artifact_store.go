package repository

import (
	"net/http"

	"CardioCheck/internal/modules/prediction/domain/entity"
)

// ArtifactStore 每个客户端最多一个会话凭证，凭证本身即唯一副本，服务端不建索引
type ArtifactStore interface {
	// Save 覆盖写入，同一响应内只会下发一次 Set-Cookie
	Save(w http.ResponseWriter, resp entity.InferenceResponse) error
	// Load 过期、被篡改、格式错误与从未写入都返回 nil
	Load(r *http.Request) *entity.InferenceResponse
	// Clear 让浏览器立即丢弃旧凭证
	Clear(w http.ResponseWriter)
}
