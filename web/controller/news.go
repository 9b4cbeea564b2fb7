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

// NewsController serves public news reads and admin article management.
type NewsController struct {
	news service.NewsService
}

func NewNewsController(g *gin.RouterGroup, tokens *service.TokenService) *NewsController {
	c := &NewsController{}

	g.GET("", c.list)
	g.GET("/:id", c.get)
	g.POST("/:id/like", c.like)

	admin := g.Group("")
	admin.Use(middleware.AuthRequired(tokens), middleware.RequireRole(model.RoleAdmin))
	{
		admin.POST("", c.create)
		admin.PUT("/:id", c.update)
		admin.DELETE("/:id", c.delete)
		admin.PUT("/:id/publish", c.publish)
	}

	return c
}

type newsListQuery struct {
	entity.PageQuery
	Featured bool `form:"featured"`
}

func (nc *NewsController) list(c *gin.Context) {
	var q newsListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		jsonBindError(c, err)
		return
	}
	q.Normalize(10, 100)

	items, total, err := nc.news.ListPublished(q.Featured, q.Page, q.Limit)
	if err != nil {
		jsonServiceError(c, err, "news listing")
		return
	}
	jsonData(c, http.StatusOK, "", gin.H{
		"news":       items,
		"pagination": entity.NewPagination(q.Page, q.Limit, total),
	})
}

func (nc *NewsController) get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonError(c, http.StatusBadRequest, "invalid id")
		return
	}

	item, err := nc.news.ViewNews(id)
	if err != nil {
		jsonServiceError(c, err, "news item")
		return
	}
	jsonData(c, http.StatusOK, "", item)
}

func (nc *NewsController) like(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonError(c, http.StatusBadRequest, "invalid id")
		return
	}

	likes, err := nc.news.LikeNews(id)
	if err != nil {
		jsonServiceError(c, err, "news item")
		return
	}
	jsonData(c, http.StatusOK, "like added", gin.H{"likes": likes})
}

func (nc *NewsController) create(c *gin.Context) {
	var in service.NewsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		jsonBindError(c, err)
		return
	}

	item, err := nc.news.CreateNews(in)
	if err != nil {
		jsonServiceError(c, err, "news creation")
		return
	}
	jsonData(c, http.StatusCreated, "news created", item)
}

func (nc *NewsController) update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonError(c, http.StatusBadRequest, "invalid id")
		return
	}

	var in service.NewsUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		jsonBindError(c, err)
		return
	}

	item, err := nc.news.UpdateNews(id, in)
	if err != nil {
		jsonServiceError(c, err, "news item")
		return
	}
	jsonData(c, http.StatusOK, "news updated", item)
}

func (nc *NewsController) delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonError(c, http.StatusBadRequest, "invalid id")
		return
	}

	if err := nc.news.DeleteNews(id); err != nil {
		jsonServiceError(c, err, "news item")
		return
	}
	jsonMsg(c, "news deleted")
}

type publishReq struct {
	IsPublished *bool `json:"isPublished" binding:"required"`
}

func (nc *NewsController) publish(c *gin.Context) {
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

	item, err := nc.news.SetPublished(id, *req.IsPublished)
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
