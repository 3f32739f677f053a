package entity

// BadgeStyle 展示层用的徽章样式
type BadgeStyle string

const (
	BadgeSafe     BadgeStyle = "safe"
	BadgeCritical BadgeStyle = "critical"
)

// FactorLabel 单项风险因素的展示文案
type FactorLabel struct {
	Category string `json:"category"`
	Label    string `json:"label"`
	Detail   string `json:"detail"`
}

// RiskClassification 由 InferenceResponse 推导，不存储
type RiskClassification struct {
	IsSafe             bool        `json:"is_safe"`
	DisplayRiskPercent string      `json:"display_risk_percent"`
	TierLabel          string      `json:"tier_label"`
	BadgeStyle         BadgeStyle  `json:"badge_style"`
	BloodPressure      FactorLabel `json:"blood_pressure"`
	Cholesterol        FactorLabel `json:"cholesterol"`
	Lifestyle          FactorLabel `json:"lifestyle"`
	Guidance           []string    `json:"guidance"`
}
