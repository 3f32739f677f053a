package initial

import (
	"CardioCheck/internal/config"
	"CardioCheck/pkg/util/myjwt"
	"CardioCheck/pkg/zlog"
)

// NewSigner 会话凭证签名器；未配置密钥时使用进程内随机密钥
func NewSigner(conf *config.Config) (*myjwt.Signer, error) {
	key := []byte(conf.SigningKey)
	if len(key) == 0 {
		var err error
		if key, err = myjwt.RandomKey(); err != nil {
			return nil, err
		}
		zlog.Warn("未配置 signingKey，使用随机密钥，重启后已有结果全部失效")
	}
	return myjwt.NewSigner(key, conf.AppName)
}
