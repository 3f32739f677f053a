package entity

// Gender 与浏览器表单/推理服务一致的编码
type Gender int

const (
	GenderMale   Gender = 1
	GenderFemale Gender = 2
)

func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	default:
		return "unknown"
	}
}

// Band 胆固醇 / 血糖分档
type Band int

const (
	BandNormal      Band = 1
	BandAboveNormal Band = 2
	BandHigh        Band = 3
)

func (b Band) String() string {
	switch b {
	case BandNormal:
		return "normal"
	case BandAboveNormal:
		return "above_normal"
	case BandHigh:
		return "high"
	default:
		return "unknown"
	}
}

// PatientMetrics 一次提交的健康指标，只存在于请求调用栈内，不落盘
type PatientMetrics struct {
	Age              int
	HeightCm         int
	WeightKg         float64
	Gender           Gender
	SystolicBP       int
	DiastolicBP      int
	Cholesterol      Band
	Glucose          Band
	Smoker           bool
	DrinksAlcohol    bool
	PhysicallyActive bool
}
