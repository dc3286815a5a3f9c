package gateway

import (
	"errors"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/example/mealshop/pkg/apperr"
)

// saveImage stores an optional multipart image and returns its public
// path, or "" when the request carries no file. Only jpeg/png within the
// configured size cap are accepted.
func (g *Gateway) saveImage(c *gin.Context, field string) (string, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return "", nil
	}

	file, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", apperr.Validation("invalid upload: %v", err)
	}

	if file.Size > g.config.Upload.MaxSizeMiB*1024*1024 {
		return "", apperr.Validation("image exceeds %d MiB limit", g.config.Upload.MaxSizeMiB)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png":
	default:
		return "", apperr.Validation("only JPEG and PNG files are allowed")
	}

	if err := os.MkdirAll(g.config.Upload.Dir, 0o755); err != nil {
		return "", apperr.Internal("failed to prepare upload directory", err)
	}

	name := uuid.NewString() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(g.config.Upload.Dir, name)); err != nil {
		return "", apperr.Internal("failed to store upload", err)
	}

	return path.Join(g.config.Upload.PublicPath, name), nil
}
