package classifier

import (
	"errors"
	"math"
	"strconv"

	"CardioCheck/internal/modules/prediction/domain/entity"
)

// ErrNoResult 没有可用的会话凭证；调用方应重定向回提交入口
var ErrNoResult = errors.New("no prediction result in session")

// Classifier 纯函数式的风险分档
type Classifier struct {
	strategy GuidanceStrategy
}

func New(strategy GuidanceStrategy) *Classifier {
	if strategy == nil {
		strategy = DefaultTable
	}
	return &Classifier{strategy: strategy}
}

// Classify resp 为 nil 表示凭证不存在
func (c *Classifier) Classify(resp *entity.InferenceResponse) (*entity.RiskClassification, error) {
	if resp == nil {
		return nil, ErrNoResult
	}

	isSafe := resp.Prediction == entity.NoDisease
	prob := resp.ProbabilityDisease
	if isSafe {
		prob = resp.ProbabilityNoDisease
	}

	g := c.strategy.Lookup(isSafe, *resp)
	return &entity.RiskClassification{
		IsSafe:             isSafe,
		DisplayRiskPercent: FormatPercent(prob),
		TierLabel:          g.TierLabel,
		BadgeStyle:         g.BadgeStyle,
		BloodPressure:      g.BloodPressure,
		Cholesterol:        g.Cholesterol,
		Lifestyle:          g.Lifestyle,
		Guidance:           append([]string(nil), g.Bullets...),
	}, nil
}

// FormatPercent 概率转百分比，保留一位小数
func FormatPercent(p float64) string {
	return strconv.FormatFloat(math.Round(p*1000)/10, 'f', 1, 64)
}
