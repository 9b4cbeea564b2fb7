package service

import (
	"time"

	"github.com/lukafrizz/content-api/database"
	"github.com/lukafrizz/content-api/database/model"

	"gorm.io/gorm"
)

// Availability status filters accepted by admin listings.
const (
	StatusAvailable   = "available"
	StatusUnavailable = "unavailable"
)

// ProductService owns the product catalog.
type ProductService struct{}

// ProductInput carries the writable fields of a product.
type ProductInput struct {
	Name           string            `json:"name" binding:"required,max=100"`
	Description    string            `json:"description" binding:"required,max=1000"`
	Price          float64           `json:"price" binding:"min=0"`
	Currency       string            `json:"currency"`
	Images         []string          `json:"images"`
	Category       string            `json:"category" binding:"required"`
	Stock          int               `json:"stock" binding:"min=0"`
	IsAvailable    *bool             `json:"isAvailable"`
	IsFeatured     bool              `json:"isFeatured"`
	Tags           []string          `json:"tags"`
	Specifications map[string]string `json:"specifications"`
}

// ProductQuery carries the public listing filters.
type ProductQuery struct {
	Category string
	Featured bool
	Search   string
	Page     int
	Limit    int
}

// CreateProduct stores a new catalog entry. The category and currency are
// restricted to their closed sets; price and stock are validated non-negative
// at the binding layer.
func (s *ProductService) CreateProduct(in ProductInput) (*model.Product, error) {
	if !model.ValidCategory(in.Category) {
		return nil, ErrInvalidCategory
	}
	if in.Currency == "" {
		in.Currency = model.CurrencyStars
	}
	if !model.ValidCurrency(in.Currency) {
		return nil, ErrInvalidCurrency
	}

	available := true
	if in.IsAvailable != nil {
		available = *in.IsAvailable
	}
	if in.Images == nil {
		in.Images = []string{}
	}
	if in.Tags == nil {
		in.Tags = []string{}
	}

	product := &model.Product{
		Name:           in.Name,
		Description:    in.Description,
		Price:          in.Price,
		Currency:       in.Currency,
		Images:         in.Images,
		Category:       in.Category,
		Stock:          in.Stock,
		IsAvailable:    available,
		IsFeatured:     in.IsFeatured,
		Tags:           in.Tags,
		Specifications: in.Specifications,
	}
	if err := database.GetDB().Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct fetches a product by id without side effects.
func (s *ProductService) GetProduct(id int) (*model.Product, error) {
	db := database.GetDB()

	product := &model.Product{}
	err := db.First(product, id).Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return product, nil
}

// ViewProduct fetches a product and bumps its view counter atomically.
func (s *ProductService) ViewProduct(id int) (*model.Product, error) {
	db := database.GetDB()

	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}
	if err := db.Model(product).UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
		return nil, err
	}
	product.Views++
	return product, nil
}

// ListAvailable returns a page of available products, featured first, with
// optional category, featured and case-insensitive text search filters.
func (s *ProductService) ListAvailable(q ProductQuery) ([]model.Product, int64, error) {
	query := database.GetDB().Model(&model.Product{}).Where("is_available = ?", true)

	if q.Category != "" {
		query = query.Where("category = ?", q.Category)
	}
	if q.Featured {
		query = query.Where("is_featured = ?", true)
	}
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		query = query.Where(
			"name LIKE ? COLLATE NOCASE OR description LIKE ? COLLATE NOCASE OR tags LIKE ? COLLATE NOCASE",
			pattern, pattern, pattern,
		)
	}

	return s.list(query, "is_featured DESC, created_at DESC", q.Page, q.Limit)
}

// ListByStatus returns a page of products filtered by availability; an empty
// status returns all.
func (s *ProductService) ListByStatus(status string, page, limit int) ([]model.Product, int64, error) {
	query := database.GetDB().Model(&model.Product{})
	switch status {
	case StatusAvailable:
		query = query.Where("is_available = ?", true)
	case StatusUnavailable:
		query = query.Where("is_available = ?", false)
	}
	return s.list(query, "created_at DESC", page, limit)
}

func (s *ProductService) list(query *gorm.DB, order string, page, limit int) ([]model.Product, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []model.Product
	err := query.Order(order).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// ProductUpdate carries optional changes; nil fields are left untouched.
type ProductUpdate struct {
	Name           *string            `json:"name" binding:"omitempty,max=100"`
	Description    *string            `json:"description" binding:"omitempty,max=1000"`
	Price          *float64           `json:"price" binding:"omitempty,min=0"`
	Currency       *string            `json:"currency"`
	Images         *[]string          `json:"images"`
	Category       *string            `json:"category"`
	Stock          *int               `json:"stock" binding:"omitempty,min=0"`
	IsAvailable    *bool              `json:"isAvailable"`
	IsFeatured     *bool              `json:"isFeatured"`
	Tags           *[]string          `json:"tags"`
	Specifications *map[string]string `json:"specifications"`
}

// UpdateProduct applies partial changes, holding the closed-set and
// non-negativity invariants.
func (s *ProductService) UpdateProduct(id int, in ProductUpdate) (*model.Product, error) {
	db := database.GetDB()

	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	if in.Category != nil {
		if !model.ValidCategory(*in.Category) {
			return nil, ErrInvalidCategory
		}
		product.Category = *in.Category
	}
	if in.Currency != nil {
		if !model.ValidCurrency(*in.Currency) {
			return nil, ErrInvalidCurrency
		}
		product.Currency = *in.Currency
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Images != nil {
		product.Images = *in.Images
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	if in.IsAvailable != nil {
		product.IsAvailable = *in.IsAvailable
	}
	if in.IsFeatured != nil {
		product.IsFeatured = *in.IsFeatured
	}
	if in.Tags != nil {
		product.Tags = *in.Tags
	}
	if in.Specifications != nil {
		product.Specifications = *in.Specifications
	}

	if err := db.Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product.
func (s *ProductService) DeleteProduct(id int) error {
	result := database.GetDB().Delete(&model.Product{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListCategories returns the distinct categories of available products.
func (s *ProductService) ListCategories() ([]string, error) {
	db := database.GetDB()

	var categories []string
	err := db.Model(&model.Product{}).
		Where("is_available = ?", true).
		Distinct("category").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// ProductStats is the public catalog overview.
type ProductStats struct {
	TotalProducts int64 `json:"totalProducts"`
	TotalViews    int64 `json:"totalViews"`
	TotalSales    int64 `json:"totalSales"`
}

// Stats aggregates counts over available products.
func (s *ProductService) Stats() (*ProductStats, error) {
	db := database.GetDB()

	stats := &ProductStats{}
	err := db.Model(&model.Product{}).
		Where("is_available = ?", true).
		Count(&stats.TotalProducts).Error
	if err != nil {
		return nil, err
	}

	row := db.Model(&model.Product{}).
		Where("is_available = ?", true).
		Select("COALESCE(SUM(views), 0), COALESCE(SUM(sales), 0)").
		Row()
	if err := row.Scan(&stats.TotalViews, &stats.TotalSales); err != nil {
		return nil, err
	}
	return stats, nil
}

// CountProducts returns total, available and recently created product counts.
func (s *ProductService) CountProducts(since time.Time) (total, available, recent int64, err error) {
	db := database.GetDB()

	if err = db.Model(&model.Product{}).Count(&total).Error; err != nil {
		return
	}
	if err = db.Model(&model.Product{}).Where("is_available = ?", true).Count(&available).Error; err != nil {
		return
	}
	err = db.Model(&model.Product{}).Where("created_at >= ?", since).Count(&recent).Error
	return
}
