package service

import (
	"time"

	"github.com/lukafrizz/content-api/database"
	"github.com/lukafrizz/content-api/database/model"

	"gorm.io/gorm"
)

// Moderation status filters accepted by admin listings.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)

// CommentService owns the comment collection and its moderation lifecycle:
// comments are created pending and become publicly visible only once approved.
type CommentService struct{}

// CreateComment stores a new comment in the pending state, capturing the
// submitter's address and client signature as metadata.
func (s *CommentService) CreateComment(name, text, email, ip, userAgent string) (*model.Comment, error) {
	db := database.GetDB()

	comment := &model.Comment{
		Name:       name,
		Text:       text,
		Email:      email,
		IP:         ip,
		UserAgent:  userAgent,
		IsApproved: false,
	}
	if err := db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// GetComment fetches a comment by id.
func (s *CommentService) GetComment(id int) (*model.Comment, error) {
	db := database.GetDB()

	comment := &model.Comment{}
	err := db.First(comment, id).Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return comment, nil
}

// ListApproved returns a page of approved comments, newest first. This is the
// only listing exposed publicly.
func (s *CommentService) ListApproved(page, limit int) ([]model.Comment, int64, error) {
	return s.list(database.GetDB().Model(&model.Comment{}).Where("is_approved = ?", true), page, limit)
}

// ListByStatus returns a page of comments filtered by moderation status;
// an empty status returns all.
func (s *CommentService) ListByStatus(status string, page, limit int) ([]model.Comment, int64, error) {
	query := database.GetDB().Model(&model.Comment{})
	switch status {
	case StatusPending:
		query = query.Where("is_approved = ?", false)
	case StatusApproved:
		query = query.Where("is_approved = ?", true)
	}
	return s.list(query, page, limit)
}

func (s *CommentService) list(query *gorm.DB, page, limit int) ([]model.Comment, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []model.Comment
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// SetApproval moves a comment between pending and approved.
func (s *CommentService) SetApproval(id int, approved bool) (*model.Comment, error) {
	db := database.GetDB()

	comment, err := s.GetComment(id)
	if err != nil {
		return nil, err
	}
	if err := db.Model(comment).UpdateColumn("is_approved", approved).Error; err != nil {
		return nil, err
	}
	comment.IsApproved = approved
	return comment, nil
}

// DeleteComment removes a comment from either moderation state.
func (s *CommentService) DeleteComment(id int) error {
	db := database.GetDB()

	result := db.Delete(&model.Comment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountComments returns total, pending and recently created comment counts.
func (s *CommentService) CountComments(since time.Time) (total, pending, recent int64, err error) {
	db := database.GetDB()

	if err = db.Model(&model.Comment{}).Count(&total).Error; err != nil {
		return
	}
	if err = db.Model(&model.Comment{}).Where("is_approved = ?", false).Count(&pending).Error; err != nil {
		return
	}
	err = db.Model(&model.Comment{}).Where("created_at >= ?", since).Count(&recent).Error
	return
}
