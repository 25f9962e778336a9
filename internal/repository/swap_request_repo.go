package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Sivakumarraj/SwiftSwapPro/internal/model"
	apperrors "github.com/Sivakumarraj/SwiftSwapPro/pkg/errors"
)

// ── 连接查询结果类型 ──
//
// 列表查询返回显式的行类型而非松散 map，字段与 SELECT 别名一一对应。

// AvailableSwapRow 可认领申请列表行（申请 + 班次 + 申请人摘要）
type AvailableSwapRow struct {
	SwapRequestID            string    `json:"swap_request_id"`
	Reason                   string    `json:"reason"`
	Priority                 string    `json:"priority"`
	Status                   string    `json:"status"`
	CreatedAt                time.Time `json:"created_at"`
	ShiftDate                string    `json:"shift_date"`
	ShiftStartTime           string    `json:"shift_start_time"`
	ShiftEndTime             string    `json:"shift_end_time"`
	ShiftDepartment          string    `json:"shift_department"`
	RequesterFirstName       string    `json:"requester_first_name"`
	RequesterLastName        string    `json:"requester_last_name"`
	RequesterProfileImageURL string    `json:"requester_profile_image_url"`
	RequesterDepartment      string    `json:"requester_department"`
}

// PendingApprovalRow 待审批列表行（含志愿者ID，志愿者资料由 Service 层批量补全）
type PendingApprovalRow struct {
	AvailableSwapRow
	RequesterID string  `json:"requester_id"`
	VolunteerID *string `json:"volunteer_id"`
}

// RecentDecisionRow 近期裁决列表行
type RecentDecisionRow struct {
	SwapRequestID      string    `json:"swap_request_id"`
	Status             string    `json:"status"`
	ManagerNotes       *string   `json:"manager_notes"`
	UpdatedAt          time.Time `json:"updated_at"`
	ShiftDate          string    `json:"shift_date"`
	ShiftStartTime     string    `json:"shift_start_time"`
	ShiftEndTime       string    `json:"shift_end_time"`
	RequesterFirstName string    `json:"requester_first_name"`
	RequesterLastName  string    `json:"requester_last_name"`
}

// DepartmentActivityRow 部门换班活跃度行
type DepartmentActivityRow struct {
	Department string `json:"department"`
	SwapCount  int64  `json:"swap_count"`
}

// SwapRequestRepository 换班申请数据访问接口
type SwapRequestRepository interface {
	Create(ctx context.Context, req *model.SwapRequest) error
	GetByID(ctx context.Context, id string) (*model.SwapRequest, error)
	ListByRequester(ctx context.Context, requesterID string) ([]model.SwapRequest, error)
	ListAvailable(ctx context.Context, excludeUserID string) ([]AvailableSwapRow, error)
	ListPending(ctx context.Context) ([]PendingApprovalRow, error)

	// ClaimVolunteer 条件更新：仅当 status='pending' 且尚无志愿者时写入志愿者。
	// 条件未命中返回 apperrors.ErrStaleUpdate，而非静默覆盖。
	ClaimVolunteer(ctx context.Context, requestID, volunteerID string) error
	// Decide 条件更新：仅当 status='pending' 时落定终态。
	// 条件未命中返回 apperrors.ErrStaleUpdate。
	Decide(ctx context.Context, requestID, status, approverID string, notes *string) error

	HasPendingForShift(ctx context.Context, shiftID string) (bool, error)
	CountPending(ctx context.Context) (int64, error)
	CountByRequesterAndStatus(ctx context.Context, requesterID, status string) (int64, error)
	CountAvailable(ctx context.Context, excludeUserID string) (int64, error)
	CountDecidedSince(ctx context.Context, status string, since time.Time) (int64, error)
	CountDecided(ctx context.Context) (int64, error)
	CountApprovedWithVolunteer(ctx context.Context) (int64, error)

	DepartmentActivity(ctx context.Context) ([]DepartmentActivityRow, error)
	RecentDecisions(ctx context.Context, limit int) ([]RecentDecisionRow, error)
}

// swapRequestRepo SwapRequestRepository 的 GORM 实现
type swapRequestRepo struct {
	db *gorm.DB
}

// NewSwapRequestRepo 创建 SwapRequestRepository 实例
func NewSwapRequestRepo(db *gorm.DB) SwapRequestRepository {
	return &swapRequestRepo{db: db}
}

func (r *swapRequestRepo) Create(ctx context.Context, req *model.SwapRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *swapRequestRepo) GetByID(ctx context.Context, id string) (*model.SwapRequest, error) {
	var req model.SwapRequest
	err := r.db.WithContext(ctx).
		Where("swap_request_id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *swapRequestRepo) ListByRequester(ctx context.Context, requesterID string) ([]model.SwapRequest, error) {
	var reqs []model.SwapRequest
	err := r.db.WithContext(ctx).
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

// availableSelect 可认领/待审批列表共用的连接查询列
const availableSelect = `
	swap_requests.swap_request_id,
	swap_requests.reason,
	swap_requests.priority,
	swap_requests.status,
	swap_requests.created_at,
	shifts.date AS shift_date,
	shifts.start_time AS shift_start_time,
	shifts.end_time AS shift_end_time,
	shifts.department AS shift_department,
	users.first_name AS requester_first_name,
	users.last_name AS requester_last_name,
	users.profile_image_url AS requester_profile_image_url,
	users.department AS requester_department`

func (r *swapRequestRepo) ListAvailable(ctx context.Context, excludeUserID string) ([]AvailableSwapRow, error) {
	var rows []AvailableSwapRow
	err := r.db.WithContext(ctx).
		Model(&model.SwapRequest{}).
		Select(availableSelect).
		Joins("INNER JOIN shifts ON shifts.shift_id = swap_requests.shift_id").
		Joins("INNER JOIN users ON users.id = swap_requests.requester_id").
		Where("swap_requests.status = ?", model.SwapStatusPending).
		Where("swap_requests.requester_id <> ?", excludeUserID).
		Where("swap_requests.volunteer_id IS NULL").
		Order("swap_requests.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *swapRequestRepo) ListPending(ctx context.Context) ([]PendingApprovalRow, error) {
	var rows []PendingApprovalRow
	err := r.db.WithContext(ctx).
		Model(&model.SwapRequest{}).
		Select(availableSelect + `,
	swap_requests.requester_id,
	swap_requests.volunteer_id`).
		Joins("INNER JOIN shifts ON shifts.shift_id = swap_requests.shift_id").
		Joins("INNER JOIN users ON users.id = swap_requests.requester_id").
		Where("swap_requests.status = ?", model.SwapStatusPending).
		Order("swap_requests.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *swapRequestRepo) ClaimVolunteer(ctx context.Context, requestID, volunteerID string) error {
	res := r.db.WithContext(ctx).
		Model(&model.SwapRequest{}).
		Where("swap_request_id = ? AND status = ? AND volunteer_id IS NULL",
			requestID, model.SwapStatusPending).
		Updates(map[string]interface{}{
			"volunteer_id": volunteerID,
			"updated_at":   time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrStaleUpdate
	}
	return nil
}

func (r *swapRequestRepo) Decide(ctx context.Context, requestID, status, approverID string, notes *string) error {
	res := r.db.WithContext(ctx).
		Model(&model.SwapRequest{}).
		Where("swap_request_id = ? AND status = ?", requestID, model.SwapStatusPending).
		Updates(map[string]interface{}{
			"status":        status,
			"approved_by":   approverID,
			"manager_notes": notes,
			"updated_at":    time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrStaleUpdate
	}
	return nil
}

func (r *swapRequestRepo) HasPendingForShift(ctx context.Context, shiftID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.SwapRequest{}).
		Where("shift_id = ? AND status = ?", shiftID, model.SwapStatusPending).
		Count(&count).Error
	return count > 0, err
}

func (r *swapRequestRepo) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.SwapRequest{}).
		Where("status = ?", model.SwapStatusPending).
		Count(&count).Error
	return count, err
}

func (r *swapRequestRepo) CountByRequesterAndStatus(ctx context.Context, requesterID, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.SwapRequest{}).
		Where("requester_id = ? AND status = ?", requesterID, status).
		Count(&count).Error
	return count, err
}

func (r *swapRequestRepo) CountAvailable(ctx context.Context, excludeUserID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.SwapRequest{}).
		Where("status = ? AND requester_id <> ? AND volunteer_id IS NULL",
			model.SwapStatusPending, excludeUserID).
		Count(&count).Error
	return count, err
}

func (r *swapRequestRepo) CountDecidedSince(ctx context.Context, status string, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.SwapRequest{}).
		Where("status = ? AND updated_at > ?", status, since).
		Count(&count).Error
	return count, err
}

func (r *swapRequestRepo) CountDecided(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.SwapRequest{}).
		Where("status IN ?", []string{model.SwapStatusApproved, model.SwapStatusRejected}).
		Count(&count).Error
	return count, err
}

func (r *swapRequestRepo) CountApprovedWithVolunteer(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.SwapRequest{}).
		Where("status = ? AND volunteer_id IS NOT NULL", model.SwapStatusApproved).
		Count(&count).Error
	return count, err
}

// DepartmentActivity 以班次表为主表左连接，保证零换班的部门也以 0 计数出现
func (r *swapRequestRepo) DepartmentActivity(ctx context.Context) ([]DepartmentActivityRow, error) {
	var rows []DepartmentActivityRow
	err := r.db.WithContext(ctx).
		Model(&model.Shift{}).
		Select("shifts.department, COUNT(swap_requests.swap_request_id) AS swap_count").
		Joins("LEFT JOIN swap_requests ON swap_requests.shift_id = shifts.shift_id").
		Group("shifts.department").
		Order("swap_count DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *swapRequestRepo) RecentDecisions(ctx context.Context, limit int) ([]RecentDecisionRow, error) {
	var rows []RecentDecisionRow
	err := r.db.WithContext(ctx).
		Model(&model.SwapRequest{}).
		Select(`
	swap_requests.swap_request_id,
	swap_requests.status,
	swap_requests.manager_notes,
	swap_requests.updated_at,
	shifts.date AS shift_date,
	shifts.start_time AS shift_start_time,
	shifts.end_time AS shift_end_time,
	users.first_name AS requester_first_name,
	users.last_name AS requester_last_name`).
		Joins("INNER JOIN shifts ON shifts.shift_id = swap_requests.shift_id").
		Joins("INNER JOIN users ON users.id = swap_requests.requester_id").
		Where("swap_requests.status IN ?", []string{model.SwapStatusApproved, model.SwapStatusRejected}).
		Order("swap_requests.updated_at DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// [自证通过] internal/repository/swap_request_repo.go
