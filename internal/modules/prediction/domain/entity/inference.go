package entity

import (
	"errors"
	"fmt"
	"math"
)

// PredictedClass 推理服务返回的类别
type PredictedClass int

const (
	NoDisease PredictedClass = 0
	Disease   PredictedClass = 1
)

func (p PredictedClass) String() string {
	switch p {
	case NoDisease:
		return "no_disease"
	case Disease:
		return "disease"
	default:
		return fmt.Sprintf("unknown(%d)", int(p))
	}
}

// ProbabilityTolerance 两个概率之和允许偏离 1 的范围（服务端保留 3 位小数）
const ProbabilityTolerance = 0.01

// InferenceRequest 推理服务入参，字段名与单位必须与服务契约一致
type InferenceRequest struct {
	Age         int     `json:"age"`
	Gender      int     `json:"gender"`
	Height      int     `json:"height"`
	Weight      float64 `json:"weight"`
	ApHi        int     `json:"ap_hi"`
	ApLo        int     `json:"ap_lo"`
	Cholesterol int     `json:"cholesterol"`
	Gluc        int     `json:"gluc"`
	Smoke       int     `json:"smoke"`
	Alco        int     `json:"alco"`
	Active      int     `json:"active"`
}

// NewInferenceRequest 只做编码：枚举取编码值，布尔值编码为 0/1
func NewInferenceRequest(m PatientMetrics) InferenceRequest {
	return InferenceRequest{
		Age:         m.Age,
		Gender:      int(m.Gender),
		Height:      m.HeightCm,
		Weight:      m.WeightKg,
		ApHi:        m.SystolicBP,
		ApLo:        m.DiastolicBP,
		Cholesterol: int(m.Cholesterol),
		Gluc:        int(m.Glucose),
		Smoke:       boolToInt(m.Smoker),
		Alco:        boolToInt(m.DrinksAlcohol),
		Active:      boolToInt(m.PhysicallyActive),
	}
}

// InferenceResponse 推理服务返回，同时也是会话凭证里保存的全部内容
type InferenceResponse struct {
	Prediction           PredictedClass `json:"prediction"`
	ProbabilityNoDisease float64        `json:"probability_no_disease"`
	ProbabilityDisease   float64        `json:"probability_disease"`
}

// Validate 校验契约形状
func (r InferenceResponse) Validate() error {
	if r.Prediction != NoDisease && r.Prediction != Disease {
		return fmt.Errorf("prediction %d is not 0 or 1", int(r.Prediction))
	}
	if !isProbability(r.ProbabilityNoDisease) {
		return fmt.Errorf("probability_no_disease %v out of [0,1]", r.ProbabilityNoDisease)
	}
	if !isProbability(r.ProbabilityDisease) {
		return fmt.Errorf("probability_disease %v out of [0,1]", r.ProbabilityDisease)
	}
	if math.Abs(r.ProbabilityNoDisease+r.ProbabilityDisease-1) > ProbabilityTolerance {
		return errors.New("probabilities do not sum to 1")
	}
	return nil
}

func isProbability(p float64) bool {
	return !math.IsNaN(p) && p >= 0 && p <= 1
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
