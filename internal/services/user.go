package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/cristhianfss97/Controle-de-Produtos/internal/models"
	"github.com/cristhianfss97/Controle-de-Produtos/internal/validation"
)

const minPasswordLen = 6

type UserService struct {
	DB    *gorm.DB
	Audit *AuditService
}

func NewUserService(db *gorm.DB, audit *AuditService) *UserService {
	return &UserService{DB: db, Audit: audit}
}

func (s *UserService) record(tx *gorm.DB, actor Actor, action, detail string) error {
	if s.Audit == nil {
		return nil
	}
	return s.Audit.Record(tx, actor, nil, action, detail)
}

// Count reports how many users exist; zero means the system is uninitialized.
func (s *UserService) Count() (int64, error) {
	var count int64
	err := s.DB.Model(&models.User{}).Count(&count).Error
	return count, err
}

func normalizeUser(name, email, password string) (string, string, error) {
	name = validation.NormalizeText(name)
	email = strings.ToLower(strings.TrimSpace(email))
	v := validation.Violations{}
	validation.Required("nome", name, v)
	validation.Required("email", email, v)
	validation.MinLength("senha", password, minPasswordLen, v)
	if !v.Empty() || !strings.Contains(email, "@") {
		return "", "", ErrInvalidInput
	}
	return name, email, nil
}

func emailConflict(tx *gorm.DB, email string) error {
	var dup models.User
	if err := tx.Where("lower(email) = ?", email).First(&dup).Error; err == nil {
		return &ConflictError{Field: "email", ID: dup.ID}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

// Bootstrap creates the very first user as an admin. It refuses to run once
// any user exists; the duplicate-email case is only reachable via a race with
// another bootstrap submission.
func (s *UserService) Bootstrap(name, email, password string) (*models.User, error) {
	name, email, err := normalizeUser(name, email, password)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	var u models.User
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrForbidden
		}
		if err := emailConflict(tx, email); err != nil {
			return err
		}
		u = models.User{Name: name, Email: email, PasswordHash: string(hash), Role: models.RoleAdmin, Active: true}
		return tx.Create(&u).Error
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create adds a user with the given role. Admin-only.
func (s *UserService) Create(name, email, password string, role models.Role, actor Actor) (*models.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if role != models.RoleAdmin && role != models.RoleOperator {
		return nil, ErrInvalidInput
	}
	name, email, err := normalizeUser(name, email, password)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	var u models.User
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := emailConflict(tx, email); err != nil {
			return err
		}
		u = models.User{Name: name, Email: email, PasswordHash: string(hash), Role: role, Active: true}
		if err := tx.Create(&u).Error; err != nil {
			return err
		}
		return s.record(tx, actor, models.ActionCreateUser, fmt.Sprintf("%s <%s> %s", u.Name, u.Email, u.Role))
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Toggle flips a user's active flag. Admin-only, and the acting user can never
// deactivate their own account.
func (s *UserService) Toggle(id uint, actor Actor) (*models.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if id == actor.ID {
		return nil, ErrSelfDeactivation
	}
	var u models.User
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&u, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		u.Active = !u.Active
		if err := tx.Save(&u).Error; err != nil {
			return err
		}
		state := "inativo"
		if u.Active {
			state = "ativo"
		}
		return s.record(tx, actor, models.ActionToggleUser, fmt.Sprintf("%s <%s> -> %s", u.Name, u.Email, state))
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Authenticate verifies email and password. Every failure mode (unknown email,
// wrong password, inactive account) returns the same generic error so account
// existence never leaks.
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u models.User
	if err := s.DB.Where("lower(email) = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.Active {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

// Get loads one user by id.
func (s *UserService) Get(id uint) (*models.User, error) {
	var u models.User
	if err := s.DB.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// List returns every user ordered by id. Admin-only.
func (s *UserService) List(actor Actor) ([]models.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	var users []models.User
	if err := s.DB.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
