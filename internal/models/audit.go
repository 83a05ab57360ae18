package models

import "time"

// Audit action tags.
const (
	ActionCreateProduct  = "CREATE_PRODUCT"
	ActionUpdateProduct  = "UPDATE_PRODUCT"
	ActionDeleteProduct  = "DELETE_PRODUCT"
	ActionUpdateStock    = "UPDATE_STOCK"
	ActionCreateCategory = "CREATE_CATEGORY"
	ActionDeleteCategory = "DELETE_CATEGORY"
	ActionCreateUser     = "CREATE_USER"
	ActionToggleUser     = "TOGGLE_USER"
	ActionLogin          = "LOGIN"
	ActionLogout         = "LOGOUT"
)

// AuditActions lists the known tags for filter dropdowns.
var AuditActions = []string{
	ActionCreateProduct, ActionUpdateProduct, ActionDeleteProduct, ActionUpdateStock,
	ActionCreateCategory, ActionDeleteCategory, ActionCreateUser, ActionToggleUser,
	ActionLogin, ActionLogout,
}

// AuditEntry is an append-only record of a mutating action. User and product
// references are nullable so entries survive the removal of either side.
type AuditEntry struct {
	ID            uint      `gorm:"primaryKey"`
	CreatedAt     time.Time `gorm:"index"`
	UserID        *uint     `gorm:"index"`
	User          *User     `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
	ProductID     *uint     `gorm:"index"`
	Product       *Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:SET NULL"`
	Action        string    `gorm:"size:40;not null;index"`
	Detail        string    `gorm:"size:2000"`
	SourceAddress string    `gorm:"size:64"`
}
