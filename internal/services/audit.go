package services

import (
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/cristhianfss97/Controle-de-Produtos/internal/models"
)

const (
	maxDetailLen  = 2000
	maxAddressLen = 64
	auditListCap  = 200
)

// Actor identifies who performs an operation, for authorization checks and
// audit attribution. The zero value is an unauthenticated actor.
type Actor struct {
	ID      uint
	Role    models.Role
	Address string // client IP
}

func (a Actor) IsAdmin() bool { return a.Role == models.RoleAdmin }

// userRef returns a nullable reference for audit rows.
func (a Actor) userRef() *uint {
	if a.ID == 0 {
		return nil
	}
	id := a.ID
	return &id
}

// AuditService appends and lists audit entries. Entries are insert-only: no
// update or delete path exists anywhere in the application.
type AuditService struct {
	DB *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService { return &AuditService{DB: db} }

// truncate caps s at limit bytes without splitting a rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// Record appends one entry inside tx. Detail and source address are truncated
// to their column limits rather than rejected.
func (s *AuditService) Record(tx *gorm.DB, actor Actor, productID *uint, action, detail string) error {
	detail = truncate(detail, maxDetailLen)
	addr := truncate(actor.Address, maxAddressLen)
	entry := models.AuditEntry{
		UserID:        actor.userRef(),
		ProductID:     productID,
		Action:        action,
		Detail:        detail,
		SourceAddress: addr,
	}
	return tx.Create(&entry).Error
}

// AuditFilter narrows the audit listing. Zero values mean "no filter".
type AuditFilter struct {
	Query  string // ci substring across action, detail, source address
	Action string // exact tag
}

// List returns matching entries newest first, capped at 200 rows.
func (s *AuditService) List(f AuditFilter) ([]models.AuditEntry, error) {
	q := s.DB.Model(&models.AuditEntry{}).Preload("User")
	if t := strings.TrimSpace(f.Query); t != "" {
		like := "%" + strings.ToLower(t) + "%"
		q = q.Where("lower(action) LIKE ? OR lower(detail) LIKE ? OR lower(source_address) LIKE ?", like, like, like)
	}
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	var entries []models.AuditEntry
	if err := q.Order("id desc").Limit(auditListCap).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
