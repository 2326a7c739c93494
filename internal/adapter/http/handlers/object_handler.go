package handlers

import (
	"net/http"
	"strings"

	"jardin_services/pkg"

	"github.com/gin-gonic/gin"
)

type ObjectReader interface {
	Get(key string) ([]byte, string, bool)
}

// ObjectHandler serves evidence blobs kept by the in-memory store, so the
// URLs it hands out resolve during local development.
type ObjectHandler struct {
	objects ObjectReader
}

func NewObjectHandler(objects ObjectReader) *ObjectHandler {
	return &ObjectHandler{objects: objects}
}

func (h *ObjectHandler) GetObject(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	data, contentType, ok := h.objects.Get(key)
	if !ok {
		writeAppError(c, pkg.NewDomainErrorSimple("OBJECT_NOT_FOUND", "Fichier introuvable", http.StatusNotFound))
		return
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, data)
}
