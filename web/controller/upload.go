package controller

import (
	"net/http"

	"github.com/lukafrizz/content-api/database/model"
	"github.com/lukafrizz/content-api/web/middleware"
	"github.com/lukafrizz/content-api/web/service"

	"github.com/gin-gonic/gin"
)

const maxBatchFiles = 10

// UploadController serves the admin-only upload gateway.
type UploadController struct {
	uploads *service.UploadService
}

func NewUploadController(g *gin.RouterGroup, tokens *service.TokenService, uploads *service.UploadService) *UploadController {
	c := &UploadController{uploads: uploads}

	g.Use(middleware.AuthRequired(tokens), middleware.RequireRole(model.RoleAdmin))
	{
		g.POST("/image", c.uploadSingle("image"))
		g.POST("/audio", c.uploadSingle("audio"))
		g.POST("/video", c.uploadSingle("video"))
		g.POST("/document", c.uploadSingle("document"))
		g.POST("/images", c.uploadBatch("image", "images"))
		g.GET("/:type", c.list)
		g.DELETE("/:type/:filename", c.delete)
	}

	return c
}

// uploadSingle accepts one multipart file under the form field named after
// the bucket.
func (uc *UploadController) uploadSingle(bucket string) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile(bucket)
		if err != nil {
			jsonError(c, http.StatusBadRequest, "no file was uploaded")
			return
		}

		stored, err := uc.uploads.Store(bucket, file)
		if err != nil {
			jsonServiceError(c, err, "upload")
			return
		}
		jsonData(c, http.StatusOK, bucket+" uploaded", stored)
	}
}

// uploadBatch accepts up to maxBatchFiles files under the given form field.
// The batch is validated file by file; an invalid file aborts the request
// and nothing from it onwards is stored.
func (uc *UploadController) uploadBatch(bucket, field string) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, err := c.MultipartForm()
		if err != nil {
			jsonError(c, http.StatusBadRequest, "malformed multipart payload")
			return
		}

		files := form.File[field]
		if len(files) == 0 {
			jsonError(c, http.StatusBadRequest, "no files were uploaded")
			return
		}
		if len(files) > maxBatchFiles {
			jsonError(c, http.StatusBadRequest, "too many files")
			return
		}

		stored := make([]*service.StoredFile, 0, len(files))
		for _, file := range files {
			sf, err := uc.uploads.Store(bucket, file)
			if err != nil {
				jsonServiceError(c, err, "upload")
				return
			}
			stored = append(stored, sf)
		}
		jsonData(c, http.StatusOK, "files uploaded", stored)
	}
}

func (uc *UploadController) list(c *gin.Context) {
	files, err := uc.uploads.List(c.Param("type"))
	if err != nil {
		jsonServiceError(c, err, "file listing")
		return
	}
	jsonData(c, http.StatusOK, "", files)
}

func (uc *UploadController) delete(c *gin.Context) {
	err := uc.uploads.Delete(c.Param("type"), c.Param("filename"))
	if err != nil {
		jsonServiceError(c, err, "file")
		return
	}
	jsonMsg(c, "file deleted")
}
