package service

import (
	"time"

	"github.com/lukafrizz/content-api/database"
	"github.com/lukafrizz/content-api/database/model"

	"gorm.io/gorm"
)

// Publication status filters accepted by admin listings.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

const excerptLimit = 300

// NewsService owns the news collection and its draft/published lifecycle.
type NewsService struct{}

// NewsInput carries the writable fields of a news item.
type NewsInput struct {
	Title       string   `json:"title" binding:"required,max=200"`
	Content     string   `json:"content" binding:"required"`
	Excerpt     string   `json:"excerpt" binding:"max=300"`
	Image       string   `json:"image"`
	Author      string   `json:"author"`
	Tags        []string `json:"tags"`
	IsPublished bool     `json:"isPublished"`
	IsFeatured  bool     `json:"isFeatured"`
}

// CreateNews stores a new item. An omitted excerpt is truncated from the
// content. Creating directly as published stamps PublishedAt.
func (s *NewsService) CreateNews(in NewsInput) (*model.News, error) {
	db := database.GetDB()

	item := &model.News{
		Title:       in.Title,
		Content:     in.Content,
		Excerpt:     in.Excerpt,
		Image:       in.Image,
		Author:      in.Author,
		Tags:        in.Tags,
		IsPublished: in.IsPublished,
		IsFeatured:  in.IsFeatured,
	}
	if item.Excerpt == "" {
		item.Excerpt = truncateExcerpt(in.Content)
	}
	if item.Tags == nil {
		item.Tags = []string{}
	}
	if item.IsPublished {
		now := time.Now()
		item.PublishedAt = &now
	}
	if err := db.Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func truncateExcerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= excerptLimit {
		return content
	}
	return string(runes[:excerptLimit]) + "..."
}

// GetNews fetches an item by id without side effects.
func (s *NewsService) GetNews(id int) (*model.News, error) {
	db := database.GetDB()

	item := &model.News{}
	err := db.First(item, id).Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return item, nil
}

// ViewNews fetches an item and bumps its view counter with the engine's
// atomic increment. The count is best-effort analytics, not exact.
func (s *NewsService) ViewNews(id int) (*model.News, error) {
	db := database.GetDB()

	item, err := s.GetNews(id)
	if err != nil {
		return nil, err
	}
	if err := db.Model(item).UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
		return nil, err
	}
	item.Views++
	return item, nil
}

// LikeNews bumps the like counter and returns the new value.
func (s *NewsService) LikeNews(id int) (int64, error) {
	db := database.GetDB()

	item, err := s.GetNews(id)
	if err != nil {
		return 0, err
	}
	if err := db.Model(item).UpdateColumn("likes", gorm.Expr("likes + 1")).Error; err != nil {
		return 0, err
	}
	return item.Likes + 1, nil
}

// ListPublished returns a page of published items, most recently published
// first, optionally restricted to featured items.
func (s *NewsService) ListPublished(featured bool, page, limit int) ([]model.News, int64, error) {
	query := database.GetDB().Model(&model.News{}).Where("is_published = ?", true)
	if featured {
		query = query.Where("is_featured = ?", true)
	}
	return s.list(query, "published_at DESC, created_at DESC", page, limit)
}

// ListByStatus returns a page of items filtered by publication status; an
// empty status returns all. Admin listings sort by creation time.
func (s *NewsService) ListByStatus(status string, page, limit int) ([]model.News, int64, error) {
	query := database.GetDB().Model(&model.News{})
	switch status {
	case StatusPublished:
		query = query.Where("is_published = ?", true)
	case StatusDraft:
		query = query.Where("is_published = ?", false)
	}
	return s.list(query, "created_at DESC", page, limit)
}

func (s *NewsService) list(query *gorm.DB, order string, page, limit int) ([]model.News, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []model.News
	err := query.Order(order).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// UpdateNews applies partial changes to the writable fields. Publication
// state is not touched here; SetPublished owns that transition.
func (s *NewsService) UpdateNews(id int, in NewsUpdate) (*model.News, error) {
	db := database.GetDB()

	item, err := s.GetNews(id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		item.Title = *in.Title
	}
	if in.Content != nil {
		item.Content = *in.Content
	}
	if in.Excerpt != nil {
		item.Excerpt = *in.Excerpt
	}
	if in.Image != nil {
		item.Image = *in.Image
	}
	if in.Author != nil {
		item.Author = *in.Author
	}
	if in.Tags != nil {
		item.Tags = *in.Tags
	}
	if in.IsFeatured != nil {
		item.IsFeatured = *in.IsFeatured
	}

	if err := db.Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// NewsUpdate carries optional changes; nil fields are left untouched.
type NewsUpdate struct {
	Title      *string   `json:"title" binding:"omitempty,max=200"`
	Content    *string   `json:"content"`
	Excerpt    *string   `json:"excerpt" binding:"omitempty,max=300"`
	Image      *string   `json:"image"`
	Author     *string   `json:"author"`
	Tags       *[]string `json:"tags"`
	IsFeatured *bool     `json:"isFeatured"`
}

// SetPublished transitions the publication state. The publish timestamp is
// stamped exactly once, on the first draft->published transition, and cleared
// when the item returns to draft. Re-publishing keeps the original timestamp.
func (s *NewsService) SetPublished(id int, published bool) (*model.News, error) {
	db := database.GetDB()

	item, err := s.GetNews(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{"is_published": published}
	if published {
		if item.PublishedAt == nil {
			now := time.Now()
			item.PublishedAt = &now
			updates["published_at"] = now
		}
	} else {
		item.PublishedAt = nil
		updates["published_at"] = nil
	}

	if err := db.Model(item).Updates(updates).Error; err != nil {
		return nil, err
	}
	item.IsPublished = published
	return item, nil
}

// DeleteNews removes an item.
func (s *NewsService) DeleteNews(id int) error {
	result := database.GetDB().Delete(&model.News{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountNews returns total, published and recently created item counts.
func (s *NewsService) CountNews(since time.Time) (total, published, recent int64, err error) {
	db := database.GetDB()

	if err = db.Model(&model.News{}).Count(&total).Error; err != nil {
		return
	}
	if err = db.Model(&model.News{}).Where("is_published = ?", true).Count(&published).Error; err != nil {
		return
	}
	err = db.Model(&model.News{}).Where("created_at >= ?", since).Count(&recent).Error
	return
}
