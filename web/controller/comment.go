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

// CommentController serves the public comment endpoints plus the moderation
// actions gated to admins.
type CommentController struct {
	comments service.CommentService
}

func NewCommentController(g *gin.RouterGroup, tokens *service.TokenService) *CommentController {
	c := &CommentController{}

	g.GET("", c.list)
	g.POST("", c.create)
	g.GET("/:id", c.get)

	admin := g.Group("")
	admin.Use(middleware.AuthRequired(tokens), middleware.RequireRole(model.RoleAdmin))
	{
		admin.PUT("/:id", c.setApproval)
		admin.DELETE("/:id", c.delete)
	}

	return c
}

func (cc *CommentController) list(c *gin.Context) {
	var q entity.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		jsonBindError(c, err)
		return
	}
	q.Normalize(10, 100)

	comments, total, err := cc.comments.ListApproved(q.Page, q.Limit)
	if err != nil {
		jsonServiceError(c, err, "comment listing")
		return
	}
	jsonData(c, http.StatusOK, "", gin.H{
		"comments":   comments,
		"pagination": entity.NewPagination(q.Page, q.Limit, total),
	})
}

type createCommentReq struct {
	Name  string `json:"name" binding:"required,max=50"`
	Text  string `json:"text" binding:"required,max=500"`
	Email string `json:"email" binding:"omitempty,email"`
}

func (cc *CommentController) create(c *gin.Context) {
	var req createCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonBindError(c, err)
		return
	}

	comment, err := cc.comments.CreateComment(
		req.Name, req.Text, req.Email,
		c.ClientIP(), c.GetHeader("User-Agent"),
	)
	if err != nil {
		jsonServiceError(c, err, "comment creation")
		return
	}
	jsonData(c, http.StatusCreated, "comment submitted and awaiting moderation", comment)
}

func (cc *CommentController) get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonError(c, http.StatusBadRequest, "invalid id")
		return
	}

	comment, err := cc.comments.GetComment(id)
	if err != nil {
		jsonServiceError(c, err, "comment")
		return
	}
	jsonData(c, http.StatusOK, "", comment)
}

type approvalReq struct {
	IsApproved *bool `json:"isApproved" binding:"required"`
}

func (cc *CommentController) setApproval(c *gin.Context) {
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

	comment, err := cc.comments.SetApproval(id, *req.IsApproved)
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

func (cc *CommentController) delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonError(c, http.StatusBadRequest, "invalid id")
		return
	}

	if err := cc.comments.DeleteComment(id); err != nil {
		jsonServiceError(c, err, "comment")
		return
	}
	jsonMsg(c, "comment deleted")
}
