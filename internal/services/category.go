package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/cristhianfss97/Controle-de-Produtos/internal/models"
	"github.com/cristhianfss97/Controle-de-Produtos/internal/validation"
)

type CategoryService struct {
	DB    *gorm.DB
	Audit *AuditService
}

func NewCategoryService(db *gorm.DB, audit *AuditService) *CategoryService {
	return &CategoryService{DB: db, Audit: audit}
}

func (s *CategoryService) record(tx *gorm.DB, actor Actor, action, detail string) error {
	if s.Audit == nil {
		return nil
	}
	return s.Audit.Record(tx, actor, nil, action, detail)
}

// Create inserts a category unless one already exists with the same name
// case-insensitively.
func (s *CategoryService) Create(name string, actor Actor) (*models.Category, error) {
	name = validation.NormalizeText(name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	var c models.Category
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var dup models.Category
		if err := tx.Where("lower(name) = ?", strings.ToLower(name)).First(&dup).Error; err == nil {
			return &ConflictError{Field: "name", ID: dup.ID}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		c = models.Category{Name: name}
		if err := tx.Create(&c).Error; err != nil {
			return err
		}
		return s.record(tx, actor, models.ActionCreateCategory, c.Name)
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete detaches every product referencing the category, then removes it.
// Both steps run in one transaction so no reader ever sees a product pointing
// at a missing category.
func (s *CategoryService) Delete(id uint, actor Actor) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var c models.Category
		if err := tx.First(&c, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Model(&models.Product{}).Where("category_id = ?", c.ID).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Delete(&c).Error; err != nil {
			return err
		}
		return s.record(tx, actor, models.ActionDeleteCategory, c.Name)
	})
}

// List returns every category ordered by name, case-insensitively.
func (s *CategoryService) List() ([]models.Category, error) {
	var categories []models.Category
	if err := s.DB.Order("lower(name)").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
