package handler

import (
	"github.com/gin-gonic/gin"
)

// NewRouter wires the upload endpoint and the health check.
func NewRouter(upload *UploadHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger())

	// 32 MB in memory, larger parts spill to disk
	router.MaxMultipartMemory = 32 << 20

	router.GET("/health", Health)
	router.POST("/uploadfile/", upload.UploadFile)

	return router
}
