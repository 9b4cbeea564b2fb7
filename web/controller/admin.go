package controller

import (
	"net/http"
	"strconv"

	"github.com/lukafrizz/content-api/database/model"
	"github.com/lukafrizz/content-api/web/entity"
	"github.com/lukafrizz/content-api/web/middleware"
	"github.com/lukafrizz/content-api/web/service"

	"github.com/gin-gonic/gin"
)

// AdminController serves the moderation dashboard: cross-collection stats,
// state-filtered listings and user administration. Every route requires the
// admin role.
type AdminController struct {
	users    service.UserService
	comments service.CommentService
	news     service.NewsService
	products service.ProductService
	stats    service.StatsService
}

func NewAdminController(g *gin.RouterGroup, tokens *service.TokenService) *AdminController {
	c := &AdminController{}

	g.Use(middleware.AuthRequired(tokens), middleware.RequireRole(model.RoleAdmin))
	{
		g.GET("/stats", c.overview)

		g.GET("/comments", c.listComments)
		g.PUT("/comments/:id/approve", c.approveComment)
		g.DELETE("/comments/:id", c.deleteComment)

		g.GET("/news", c.listNews)
		g.PUT("/news/:id/publish", c.publishNews)

		g.GET("/products", c.listProducts)

		g.GET("/users", c.listUsers)
		g.PUT("/users/:id/role", c.setUserRole)
		g.PUT("/users/:id/status", c.setUserStatus)
	}

	return c
}

func (ac *AdminController) overview(c *gin.Context) {
	stats, err := ac.stats.Overview()
	if err != nil {
		jsonServiceError(c, err, "stats")
		return
	}
	jsonData(c, http.StatusOK, "", stats)
}

type adminListQuery struct {
	entity.PageQuery
	Status string `form:"status"`
	Role   string `form:"role"`
}

func (ac *AdminController) listComments(c *gin.Context) {
	var q adminListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		jsonBindError(c, err)
		return
	}
	q.Normalize(20, 100)

	comments, total, err := ac.comments.ListByStatus(q.Status, q.Page, q.Limit)
	if err != nil {
		jsonServiceError(c, err, "comment listing")
		return
	}
	jsonData(c, http.StatusOK, "", gin.H{
		"comments":   comments,
		"pagination": entity.NewPagination(q.Page, q.Limit, total),
	})
}

func (ac *AdminController) approveComment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonError(c, http.StatusBadRequest, "invalid id")
		return
	}

	var req approvalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonBindError(c, err)
		return
	}

	comment, err := ac.comments.SetApproval(id, *req.IsApproved)
	if err != nil {
		jsonServiceError(c, err, "comment")
		return
	}

	msg := "comment rejected"
	if comment.IsApproved {
		msg = "comment approved"
	}
	jsonData(c, http.StatusOK, msg, comment)
}

func (ac *AdminController) deleteComment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonError(c, http.StatusBadRequest, "invalid id")
		return
	}

	if err := ac.comments.DeleteComment(id); err != nil {
		jsonServiceError(c, err, "comment")
		return
	}
	jsonMsg(c, "comment deleted")
}

func (ac *AdminController) listNews(c *gin.Context) {
	var q adminListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		jsonBindError(c, err)
		return
	}
	q.Normalize(20, 100)

	items, total, err := ac.news.ListByStatus(q.Status, q.Page, q.Limit)
	if err != nil {
		jsonServiceError(c, err, "news listing")
		return
	}
	jsonData(c, http.StatusOK, "", gin.H{
		"news":       items,
		"pagination": entity.NewPagination(q.Page, q.Limit, total),
	})
}

func (ac *AdminController) publishNews(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonError(c, http.StatusBadRequest, "invalid id")
		return
	}

	var req publishReq
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonBindError(c, err)
		return
	}

	item, err := ac.news.SetPublished(id, *req.IsPublished)
	if err != nil {
		jsonServiceError(c, err, "news item")
		return
	}

	msg := "news unpublished"
	if item.IsPublished {
		msg = "news published"
	}
	jsonData(c, http.StatusOK, msg, item)
}

func (ac *AdminController) listProducts(c *gin.Context) {
	var q adminListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		jsonBindError(c, err)
		return
	}
	q.Normalize(20, 100)

	products, total, err := ac.products.ListByStatus(q.Status, q.Page, q.Limit)
	if err != nil {
		jsonServiceError(c, err, "product listing")
		return
	}
	jsonData(c, http.StatusOK, "", gin.H{
		"products":   products,
		"pagination": entity.NewPagination(q.Page, q.Limit, total),
	})
}

func (ac *AdminController) listUsers(c *gin.Context) {
	var q adminListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		jsonBindError(c, err)
		return
	}
	q.Normalize(20, 100)

	users, total, err := ac.users.ListUsers(q.Role, q.Page, q.Limit)
	if err != nil {
		jsonServiceError(c, err, "user listing")
		return
	}
	jsonData(c, http.StatusOK, "", gin.H{
		"users":      users,
		"pagination": entity.NewPagination(q.Page, q.Limit, total),
	})
}

type roleReq struct {
	Role string `json:"role" binding:"required"`
}

func (ac *AdminController) setUserRole(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonError(c, http.StatusBadRequest, "invalid id")
		return
	}

	var req roleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonBindError(c, err)
		return
	}

	user, err := ac.users.SetRole(id, req.Role)
	if err != nil {
		jsonServiceError(c, err, "user")
		return
	}
	jsonData(c, http.StatusOK, "user role updated", user)
}

type statusReq struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

func (ac *AdminController) setUserStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonError(c, http.StatusBadRequest, "invalid id")
		return
	}

	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonBindError(c, err)
		return
	}

	user, err := ac.users.SetActive(id, *req.IsActive)
	if err != nil {
		jsonServiceError(c, err, "user")
		return
	}

	msg := "user blocked"
	if user.IsActive {
		msg = "user unblocked"
	}
	jsonData(c, http.StatusOK, msg, user)
}
