package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cristhianfss97/Controle-de-Produtos/internal/models"
	"github.com/cristhianfss97/Controle-de-Produtos/internal/validation"
)

// ProductService implements catalog and stock operations. Audit is optional:
// a nil recorder disables the trail without changing the domain rules.
type ProductService struct {
	DB    *gorm.DB
	Audit *AuditService
}

func NewProductService(db *gorm.DB, audit *AuditService) *ProductService {
	return &ProductService{DB: db, Audit: audit}
}

func (s *ProductService) record(tx *gorm.DB, actor Actor, productID *uint, action, detail string) error {
	if s.Audit == nil {
		return nil
	}
	return s.Audit.Record(tx, actor, productID, action, detail)
}

// ProductInput carries already-parsed form values for create and update.
type ProductInput struct {
	Name         string
	SKU          string
	Price        decimal.Decimal
	Quantity     int
	MinimumStock int
	CategoryID   *uint
}

func (in *ProductInput) normalize() error {
	in.Name = validation.NormalizeText(in.Name)
	in.SKU = validation.NormalizeSKU(in.SKU)
	if in.Name == "" || in.Price.IsNegative() || in.Quantity < 0 || in.MinimumStock < 0 {
		return ErrInvalidInput
	}
	return nil
}

// findDuplicate checks SKU first (hard uniqueness), then name (likely
// duplicate, refused with a hint to search). excludeID skips the record being
// edited. The schema's unique index remains the backstop for races.
func findDuplicate(tx *gorm.DB, in ProductInput, excludeID uint) error {
	if in.SKU != "" {
		var dup models.Product
		q := tx.Where("lower(sku) = ?", strings.ToLower(in.SKU))
		if excludeID != 0 {
			q = q.Where("id <> ?", excludeID)
		}
		if err := q.First(&dup).Error; err == nil {
			return &ConflictError{Field: "sku", ID: dup.ID}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}
	var dup models.Product
	q := tx.Where("lower(name) = ?", strings.ToLower(in.Name))
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.First(&dup).Error; err == nil {
		return &ConflictError{Field: "name", ID: dup.ID}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func (in ProductInput) skuRef() *string {
	if in.SKU == "" {
		return nil
	}
	sku := in.SKU
	return &sku
}

// Create inserts a product after duplicate checks, in one transaction with its
// audit entry.
func (s *ProductService) Create(in ProductInput, actor Actor) (*models.Product, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	var p models.Product
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := findDuplicate(tx, in, 0); err != nil {
			return err
		}
		p = models.Product{
			Name:         in.Name,
			SKU:          in.skuRef(),
			Price:        in.Price,
			Quantity:     in.Quantity,
			MinimumStock: in.MinimumStock,
			CategoryID:   in.CategoryID,
		}
		if err := tx.Create(&p).Error; err != nil {
			return err
		}
		detail := fmt.Sprintf("%s qtd=%d min=%d", p.Name, p.Quantity, p.MinimumStock)
		return s.record(tx, actor, &p.ID, models.ActionCreateProduct, detail)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update rewrites every field of an existing product, with the same duplicate
// checks as Create minus the record itself.
func (s *ProductService) Update(id uint, in ProductInput, actor Actor) (*models.Product, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	var p models.Product
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := findDuplicate(tx, in, id); err != nil {
			return err
		}
		p.Name = in.Name
		p.SKU = in.skuRef()
		p.Price = in.Price
		p.Quantity = in.Quantity
		p.MinimumStock = in.MinimumStock
		p.CategoryID = in.CategoryID
		if err := tx.Save(&p).Error; err != nil {
			return err
		}
		return s.record(tx, actor, &p.ID, models.ActionUpdateProduct, p.Name)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes a product. The name goes into the audit detail before the row
// disappears; the product reference on the entry is cleared by the schema.
func (s *ProductService) Delete(id uint, actor Actor) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var p models.Product
		if err := tx.First(&p, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := s.record(tx, actor, &p.ID, models.ActionDeleteProduct, p.Name); err != nil {
			return err
		}
		return tx.Delete(&p).Error
	})
}

// AdjustStock applies a signed delta. A result below zero is refused and the
// stored quantity keeps its prior value.
func (s *ProductService) AdjustStock(id uint, delta int, reason string, actor Actor) (*models.Product, error) {
	var p models.Product
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		next := p.Quantity + delta
		if next < 0 {
			return ErrNegativeStock
		}
		return s.applyStock(tx, &p, next, reason, actor)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SetStock writes an absolute quantity. A reason is mandatory here: absolute
// corrections always need a paper trail.
func (s *ProductService) SetStock(id uint, quantity int, reason string, actor Actor) (*models.Product, error) {
	reason = validation.NormalizeText(reason)
	if quantity < 0 || reason == "" {
		return nil, ErrInvalidInput
	}
	var p models.Product
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return s.applyStock(tx, &p, quantity, reason, actor)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProductService) applyStock(tx *gorm.DB, p *models.Product, next int, reason string, actor Actor) error {
	before := p.Quantity
	p.Quantity = next
	if err := tx.Save(p).Error; err != nil {
		return err
	}
	detail := fmt.Sprintf("%d -> %d", before, next)
	if reason = validation.NormalizeText(reason); reason != "" {
		detail += " | motivo: " + reason
	}
	return s.record(tx, actor, &p.ID, models.ActionUpdateStock, detail)
}

// ProductFilter narrows the listing. Filters are independent and AND-combined.
type ProductFilter struct {
	Query      string // ci substring on name or sku
	CategoryID uint
	LowOnly    bool
}

// List returns matching products newest first, plus the unfiltered total for
// the "showing X of Y" footer.
func (s *ProductService) List(f ProductFilter) ([]models.Product, int64, error) {
	var total int64
	if err := s.DB.Model(&models.Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	q := s.DB.Model(&models.Product{}).Preload("Category")
	if t := strings.TrimSpace(f.Query); t != "" {
		like := "%" + strings.ToLower(t) + "%"
		q = q.Where("lower(name) LIKE ? OR lower(coalesce(sku, '')) LIKE ?", like, like)
	}
	if f.CategoryID != 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.LowOnly {
		q = q.Where("quantity <= minimum_stock")
	}
	var products []models.Product
	if err := q.Order("id desc").Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// Get loads one product with its category.
func (s *ProductService) Get(id uint) (*models.Product, error) {
	var p models.Product
	if err := s.DB.Preload("Category").First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
