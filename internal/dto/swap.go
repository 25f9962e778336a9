package dto

import "time"

// ── 换班模块 DTO ──

// CreateSwapRequestRequest 创建换班申请请求
type CreateSwapRequestRequest struct {
	ShiftID  string `json:"shift_id" binding:"required,uuid"`
	Reason   string `json:"reason"   binding:"required,max=500"`
	Priority string `json:"priority" binding:"omitempty,oneof=normal urgent emergency"`
}

// DecisionRequest 审批/驳回请求体
type DecisionRequest struct {
	Notes string `json:"notes" binding:"omitempty,max=500"`
}

// RequesterSummary 申请人摘要
type RequesterSummary struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
	Department      string `json:"department,omitempty"`
}

// VolunteerSummary 志愿者摘要
type VolunteerSummary struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
	Department      string `json:"department,omitempty"`
}

// AvailableSwapResponse 可认领换班申请（他人发布、尚无志愿者）
type AvailableSwapResponse struct {
	ID        string           `json:"id"`
	Reason    string           `json:"reason"`
	Priority  string           `json:"priority"`
	Status    string           `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	Shift     ShiftSummary     `json:"shift"`
	Requester RequesterSummary `json:"requester"`
}

// PendingApprovalResponse 待审批换班申请（含志愿者资料，可为 null）
type PendingApprovalResponse struct {
	AvailableSwapResponse
	RequesterID string            `json:"requester_id"`
	Volunteer   *VolunteerSummary `json:"volunteer"`
}

// [自证通过] internal/dto/swap.go
