package request

import "encoding/json"

// PredictRequest 表单提交的原始数据，字段保持松散类型，交由校验器逐项转换
type PredictRequest struct {
	Age         json.RawMessage `json:"age"`
	Height      json.RawMessage `json:"height"`
	Weight      json.RawMessage `json:"weight"`
	Gender      json.RawMessage `json:"gender"`
	ApHi        json.RawMessage `json:"ap_hi"`
	ApLo        json.RawMessage `json:"ap_lo"`
	Cholesterol json.RawMessage `json:"cholesterol"`
	Gluc        json.RawMessage `json:"gluc"`
	Smoke       json.RawMessage `json:"smoke"`
	Alco        json.RawMessage `json:"alco"`
	Active      json.RawMessage `json:"active"`
}

// Fields 以线上字段名为键
func (r PredictRequest) Fields() map[string]json.RawMessage {
	return map[string]json.RawMessage{
		"age":         r.Age,
		"height":      r.Height,
		"weight":      r.Weight,
		"gender":      r.Gender,
		"ap_hi":       r.ApHi,
		"ap_lo":       r.ApLo,
		"cholesterol": r.Cholesterol,
		"gluc":        r.Gluc,
		"smoke":       r.Smoke,
		"alco":        r.Alco,
		"active":      r.Active,
	}
}
