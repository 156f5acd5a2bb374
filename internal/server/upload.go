package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/invoicegen/internal/upload"
)

func (s *Server) UploadLogo(c *gin.Context) {
	fileHeader, err := c.FormFile("logo")
	if err != nil {
		AbortWithError(c, newValidationError("logo", "invalid_request", "logo file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		AbortWithError(c, err)
		return
	}
	defer file.Close()

	url, err := s.uploadSvc.SaveLogo(c.Request.Context(), upload.Upload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Body:        file,
	})
	if err != nil {
		s.metrics.RecordLogoUpload("error")
		AbortWithError(c, err)
		return
	}

	s.metrics.RecordLogoUpload("ok")
	c.JSON(http.StatusOK, gin.H{"logo_url": url})
}
