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

// ProductController serves the public catalog and admin product management.
type ProductController struct {
	products service.ProductService
}

func NewProductController(g *gin.RouterGroup, tokens *service.TokenService) *ProductController {
	c := &ProductController{}

	g.GET("", c.list)
	// Registered before /:id so the literal segments win route matching.
	g.GET("/categories/list", c.categories)
	g.GET("/stats/overview", c.stats)
	g.GET("/:id", c.get)

	admin := g.Group("")
	admin.Use(middleware.AuthRequired(tokens), middleware.RequireRole(model.RoleAdmin))
	{
		admin.POST("", c.create)
		admin.PUT("/:id", c.update)
		admin.DELETE("/:id", c.delete)
	}

	return c
}

type productListQuery struct {
	entity.PageQuery
	Category string `form:"category"`
	Featured bool   `form:"featured"`
	Search   string `form:"search"`
}

func (pc *ProductController) list(c *gin.Context) {
	var q productListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		jsonBindError(c, err)
		return
	}
	q.Normalize(12, 100)

	products, total, err := pc.products.ListAvailable(service.ProductQuery{
		Category: q.Category,
		Featured: q.Featured,
		Search:   q.Search,
		Page:     q.Page,
		Limit:    q.Limit,
	})
	if err != nil {
		jsonServiceError(c, err, "product listing")
		return
	}
	jsonData(c, http.StatusOK, "", gin.H{
		"products":   products,
		"pagination": entity.NewPagination(q.Page, q.Limit, total),
	})
}

func (pc *ProductController) get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonError(c, http.StatusBadRequest, "invalid id")
		return
	}

	product, err := pc.products.ViewProduct(id)
	if err != nil {
		jsonServiceError(c, err, "product")
		return
	}
	jsonData(c, http.StatusOK, "", product)
}

func (pc *ProductController) create(c *gin.Context) {
	var in service.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		jsonBindError(c, err)
		return
	}

	product, err := pc.products.CreateProduct(in)
	if err != nil {
		jsonServiceError(c, err, "product creation")
		return
	}
	jsonData(c, http.StatusCreated, "product created", product)
}

func (pc *ProductController) update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonError(c, http.StatusBadRequest, "invalid id")
		return
	}

	var in service.ProductUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		jsonBindError(c, err)
		return
	}

	product, err := pc.products.UpdateProduct(id, in)
	if err != nil {
		jsonServiceError(c, err, "product")
		return
	}
	jsonData(c, http.StatusOK, "product updated", product)
}

func (pc *ProductController) delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonError(c, http.StatusBadRequest, "invalid id")
		return
	}

	if err := pc.products.DeleteProduct(id); err != nil {
		jsonServiceError(c, err, "product")
		return
	}
	jsonMsg(c, "product deleted")
}

func (pc *ProductController) categories(c *gin.Context) {
	categories, err := pc.products.ListCategories()
	if err != nil {
		jsonServiceError(c, err, "category listing")
		return
	}
	jsonData(c, http.StatusOK, "", categories)
}

func (pc *ProductController) stats(c *gin.Context) {
	stats, err := pc.products.Stats()
	if err != nil {
		jsonServiceError(c, err, "product stats")
		return
	}
	jsonData(c, http.StatusOK, "", stats)
}
