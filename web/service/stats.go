package service

import (
	"time"
)

// StatsOverview is the admin dashboard summary: lifetime totals plus counts
// of entities created over the trailing 30 days.
type StatsOverview struct {
	Overview struct {
		TotalUsers        int64 `json:"totalUsers"`
		TotalComments     int64 `json:"totalComments"`
		TotalNews         int64 `json:"totalNews"`
		TotalProducts     int64 `json:"totalProducts"`
		PendingComments   int64 `json:"pendingComments"`
		PublishedNews     int64 `json:"publishedNews"`
		AvailableProducts int64 `json:"availableProducts"`
	} `json:"overview"`
	Recent struct {
		NewUsers    int64 `json:"newUsers"`
		NewComments int64 `json:"newComments"`
		NewNews     int64 `json:"newNews"`
		NewProducts int64 `json:"newProducts"`
	} `json:"recent"`
}

// StatsService aggregates counts across the collections.
type StatsService struct {
	userService    UserService
	commentService CommentService
	newsService    NewsService
	productService ProductService
}

// Overview collects the admin dashboard summary.
func (s *StatsService) Overview() (*StatsOverview, error) {
	since := time.Now().AddDate(0, 0, -30)
	stats := &StatsOverview{}

	totalUsers, newUsers, err := s.userService.CountUsers(since)
	if err != nil {
		return nil, err
	}
	totalComments, pendingComments, newComments, err := s.commentService.CountComments(since)
	if err != nil {
		return nil, err
	}
	totalNews, publishedNews, newNews, err := s.newsService.CountNews(since)
	if err != nil {
		return nil, err
	}
	totalProducts, availableProducts, newProducts, err := s.productService.CountProducts(since)
	if err != nil {
		return nil, err
	}

	stats.Overview.TotalUsers = totalUsers
	stats.Overview.TotalComments = totalComments
	stats.Overview.TotalNews = totalNews
	stats.Overview.TotalProducts = totalProducts
	stats.Overview.PendingComments = pendingComments
	stats.Overview.PublishedNews = publishedNews
	stats.Overview.AvailableProducts = availableProducts
	stats.Recent.NewUsers = newUsers
	stats.Recent.NewComments = newComments
	stats.Recent.NewNews = newNews
	stats.Recent.NewProducts = newProducts
	return stats, nil
}
