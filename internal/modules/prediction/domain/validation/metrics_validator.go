package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"CardioCheck/internal/modules/prediction/domain/entity"

	playground "github.com/go-playground/validator/v10"
)

// FieldError 单个字段的校验失败
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError 列出所有不合法字段，调用方据此在表单中逐项提示
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return "invalid patient metrics: " + strings.Join(names, ", ")
}

// Message 返回字段对应的错误信息，不存在时返回空串
func (e *ValidationError) Message(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

// fieldOrder 与表单顺序一致，保证输出稳定
var fieldOrder = []string{
	"age", "height", "weight", "gender",
	"ap_hi", "ap_lo", "cholesterol", "gluc",
	"smoke", "alco", "active",
}

var labels = map[string]string{
	"age":         "Age",
	"height":      "Height",
	"weight":      "Weight",
	"gender":      "Gender",
	"ap_hi":       "Systolic BP",
	"ap_lo":       "Diastolic BP",
	"cholesterol": "Cholesterol",
	"gluc":        "Glucose",
	"smoke":       "Smoke",
	"alco":        "Alco",
	"active":      "Active",
}

var units = map[string]string{
	"height": " cm",
	"weight": " kg",
}

// candidate 类型转换后的中间结构，范围与枚举规则以 tag 声明
type candidate struct {
	Age         int     `json:"age" validate:"min=18,max=120"`
	Height      int     `json:"height" validate:"min=100,max=250"`
	Weight      float64 `json:"weight" validate:"min=30,max=300"`
	Gender      int     `json:"gender" validate:"oneof=1 2"`
	ApHi        int     `json:"ap_hi" validate:"min=60,max=250,gtfield=ApLo"`
	ApLo        int     `json:"ap_lo" validate:"min=40,max=150"`
	Cholesterol int     `json:"cholesterol" validate:"oneof=1 2 3"`
	Gluc        int     `json:"gluc" validate:"oneof=1 2 3"`
}

var validate = newValidate()

func newValidate() *playground.Validate {
	v := playground.New(playground.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate 把松散类型的原始记录转换为 PatientMetrics；任何字段不合法都整体拒绝
func Validate(raw map[string]json.RawMessage) (entity.PatientMetrics, error) {
	problems := make(map[string]string)
	var c candidate

	c.Age = intField(raw, "age", problems)
	c.Height = intField(raw, "height", problems)
	c.Weight = floatField(raw, "weight", problems)
	c.Gender = enumField(raw, "gender", genderNames, problems)
	c.ApHi = intField(raw, "ap_hi", problems)
	c.ApLo = intField(raw, "ap_lo", problems)
	c.Cholesterol = enumField(raw, "cholesterol", bandNames, problems)
	c.Gluc = enumField(raw, "gluc", bandNames, problems)
	smoke := boolField(raw, "smoke", problems)
	alco := boolField(raw, "alco", problems)
	active := boolField(raw, "active", problems)

	if err := validate.Struct(&c); err != nil {
		var verrs playground.ValidationErrors
		if !errors.As(err, &verrs) {
			return entity.PatientMetrics{}, err
		}
		for _, fe := range verrs {
			field := fe.Field()
			if _, seen := problems[field]; seen {
				// 类型错误 / 缺失优先，零值触发的范围错误没有意义
				continue
			}
			problems[field] = ruleMessage(field, fe.Tag(), fe.Param())
		}
	}

	if len(problems) > 0 {
		verr := &ValidationError{}
		for _, name := range fieldOrder {
			if msg, ok := problems[name]; ok {
				verr.Fields = append(verr.Fields, FieldError{Field: name, Message: msg})
			}
		}
		return entity.PatientMetrics{}, verr
	}

	return entity.PatientMetrics{
		Age:              c.Age,
		HeightCm:         c.Height,
		WeightKg:         c.Weight,
		Gender:           entity.Gender(c.Gender),
		SystolicBP:       c.ApHi,
		DiastolicBP:      c.ApLo,
		Cholesterol:      entity.Band(c.Cholesterol),
		Glucose:          entity.Band(c.Gluc),
		Smoker:           smoke,
		DrinksAlcohol:    alco,
		PhysicallyActive: active,
	}, nil
}

func ruleMessage(field, tag, param string) string {
	label := labels[field]
	switch tag {
	case "min":
		return fmt.Sprintf("%s must be at least %s%s", label, param, units[field])
	case "max":
		return fmt.Sprintf("%s must be at most %s%s", label, param, units[field])
	case "gtfield":
		return "Systolic BP must be greater than Diastolic BP"
	case "oneof":
		if field == "gender" {
			return "Please select a gender"
		}
		return "Selection required"
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

// ---- 松散类型转换 ----

var genderNames = map[string]int{
	"male":   int(entity.GenderMale),
	"m":      int(entity.GenderMale),
	"female": int(entity.GenderFemale),
	"f":      int(entity.GenderFemale),
}

var bandNames = map[string]int{
	"normal":       int(entity.BandNormal),
	"above_normal": int(entity.BandAboveNormal),
	"above normal": int(entity.BandAboveNormal),
	"above-normal": int(entity.BandAboveNormal),
	"high":         int(entity.BandHigh),
}

// decode 返回 nil 表示字段缺失（未提供、null 或空字符串）
func decode(raw map[string]json.RawMessage, field string) (any, error) {
	msg, ok := raw[field]
	if !ok || len(bytes.TrimSpace(msg)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(msg))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return nil, nil
	}
	return v, nil
}

func required(field string) string {
	return labels[field] + " is required"
}

func intField(raw map[string]json.RawMessage, field string, problems map[string]string) int {
	v, err := decode(raw, field)
	if err != nil {
		problems[field] = labels[field] + " must be a number"
		return 0
	}
	if v == nil {
		problems[field] = required(field)
		return 0
	}
	n, ok := asInt(v)
	if !ok {
		problems[field] = labels[field] + " must be a whole number"
		return 0
	}
	return n
}

func floatField(raw map[string]json.RawMessage, field string, problems map[string]string) float64 {
	v, err := decode(raw, field)
	if err != nil {
		problems[field] = labels[field] + " must be a number"
		return 0
	}
	if v == nil {
		problems[field] = required(field)
		return 0
	}
	f, ok := asFloat(v)
	if !ok {
		problems[field] = labels[field] + " must be a number"
		return 0
	}
	return f
}

func enumField(raw map[string]json.RawMessage, field string, names map[string]int, problems map[string]string) int {
	v, err := decode(raw, field)
	if err != nil || v == nil {
		problems[field] = ruleMessage(field, "oneof", "")
		return 0
	}
	if s, ok := v.(string); ok {
		if code, ok := names[strings.ToLower(strings.TrimSpace(s))]; ok {
			return code
		}
	}
	n, ok := asInt(v)
	if !ok {
		problems[field] = ruleMessage(field, "oneof", "")
		return 0
	}
	return n
}

func boolField(raw map[string]json.RawMessage, field string, problems map[string]string) bool {
	v, err := decode(raw, field)
	if err != nil {
		problems[field] = labels[field] + " must be true or false"
		return false
	}
	if v == nil {
		problems[field] = required(field)
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case json.Number:
		switch t.String() {
		case "1":
			return true
		case "0":
			return false
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "on", "yes", "1":
			return true
		case "false", "off", "no", "0":
			return false
		}
	}
	problems[field] = labels[field] + " must be true or false"
	return false
}

func asFloat(v any) (float64, bool) {
	var (
		f   float64
		err error
	)
	switch t := v.(type) {
	case json.Number:
		f, err = t.Float64()
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(t), 64)
	default:
		return 0, false
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func asInt(v any) (int, bool) {
	f, ok := asFloat(v)
	if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
