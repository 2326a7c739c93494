package handlers

import (
	"fmt"
	"io"
	"strings"

	"jardin_services/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

const (
	payloadField  = "payload"
	evidenceField = "evidence"

	// maxEvidenceRead bounds a single part; the uploader enforces the real limit.
	maxEvidenceRead = 10*1024*1024 + 1
)

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// readEvidence loads every file of the evidence field in upload order.
func readEvidence(c *gin.Context) ([]entities.EvidenceFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}
	headers := form.File[evidenceField]
	files := make([]entities.EvidenceFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open %q: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(io.LimitReader(f, maxEvidenceRead))
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read %q: %w", fh.Filename, err)
		}
		files = append(files, entities.EvidenceFile{Filename: fh.Filename, Data: data})
	}
	return files, nil
}
