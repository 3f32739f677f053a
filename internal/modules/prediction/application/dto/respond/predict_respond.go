package respond

// PredictRespond 提交成功后前端跳转到结果页
type PredictRespond struct {
	Success bool `json:"success"`
}
