package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"recipe-api/apperr"

	"github.com/gin-gonic/gin"
)

// readUpload returns the bytes of the named multipart file, or nil when the
// request carries no such part.
func readUpload(c *gin.Context, field string, maxBytes int64) ([]byte, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.InvalidInput("Invalid multipart form").WithDetails(err.Error())
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		return nil, apperr.InvalidInput(fmt.Sprintf("File exceeds the %d byte upload limit", maxBytes))
	}

	f, err := fh.Open()
	if err != nil {
		return nil, apperr.Internal("open upload", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, fh.Size+1))
	if err != nil {
		return nil, apperr.Internal("read upload", err)
	}
	return data, nil
}

func isMultipart(c *gin.Context) bool {
	return c.ContentType() == gin.MIMEMultipartPOSTForm
}
