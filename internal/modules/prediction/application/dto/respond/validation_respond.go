package respond

import "CardioCheck/internal/modules/prediction/domain/validation"

// ValidationRespond 字段级错误，供表单逐项展示
type ValidationRespond struct {
	Fields []validation.FieldError `json:"fields"`
}
