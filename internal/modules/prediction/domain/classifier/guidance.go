package classifier

import "CardioCheck/internal/modules/prediction/domain/entity"

// Guidance 一个结果档位对应的展示文案
type Guidance struct {
	TierLabel     string
	BadgeStyle    entity.BadgeStyle
	BloodPressure entity.FactorLabel
	Cholesterol   entity.FactorLabel
	Lifestyle     entity.FactorLabel
	Bullets       []string
}

// GuidanceStrategy 文案查找策略。
//
// 目前的实现只按 is_safe 二选一，不看患者的实际指标；
// 需要按因素细分时替换这个实现即可，relay 与 session 不受影响。
type GuidanceStrategy interface {
	Lookup(isSafe bool, resp entity.InferenceResponse) Guidance
}

// BinaryTable 两行固定表，只以 is_safe 为键
type BinaryTable struct {
	Safe     Guidance
	Critical Guidance
}

func (t BinaryTable) Lookup(isSafe bool, _ entity.InferenceResponse) Guidance {
	if isSafe {
		return t.Safe
	}
	return t.Critical
}

// DefaultTable 结果页使用的文案
var DefaultTable = BinaryTable{
	Safe: Guidance{
		TierLabel:  "Low Risk",
		BadgeStyle: entity.BadgeSafe,
		BloodPressure: entity.FactorLabel{
			Category: "Blood Pressure",
			Label:    "Normal",
			Detail:   "Blood pressure is within the optimal range.",
		},
		Cholesterol: entity.FactorLabel{
			Category: "Cholesterol",
			Label:    "Low Risk",
			Detail:   "Cholesterol levels appear to be under control.",
		},
		Lifestyle: entity.FactorLabel{
			Category: "Lifestyle",
			Label:    "Healthy",
			Detail:   "Keep up your current activity level.",
		},
		Bullets: []string{
			"Keep systolic blood pressure below 130 mmHg.",
			"Maintain a balanced, low-sodium diet.",
			"Continue routine annual check-ups.",
		},
	},
	Critical: Guidance{
		TierLabel:  "Critical Risk Detected",
		BadgeStyle: entity.BadgeCritical,
		BloodPressure: entity.FactorLabel{
			Category: "Blood Pressure",
			Label:    "Elevated",
			Detail:   "Systolic BP exceeds optimal range.",
		},
		Cholesterol: entity.FactorLabel{
			Category: "Cholesterol",
			Label:    "High Risk",
			Detail:   "LDL levels may be elevated.",
		},
		Lifestyle: entity.FactorLabel{
			Category: "Lifestyle",
			Label:    "Needs Improvement",
			Detail:   "Physical activity is below recommendation.",
		},
		Bullets: []string{
			"Maintain systolic blood pressure below 130 mmHg.",
			"Reduce sodium intake and monitor cholesterol levels.",
			"Schedule a professional cardiac evaluation.",
		},
	},
}
