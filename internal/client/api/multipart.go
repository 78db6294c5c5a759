package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/avelichko/petbook/internal/common"
)

// multipartFile binds an on-disk file to its multipart field name.
type multipartFile struct {
	field string
	path  string
}

// sendMultipart encodes fields and files as multipart/form-data and issues
// the request. Files are read from disk at call time; a missing file is a
// validation error caught before any bytes go out.
func (c *Client) sendMultipart(ctx context.Context, method, path string, fields map[string]string, files []multipartFile, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("%w: %v", common.ErrInternal, err)
		}
	}

	for _, f := range files {
		src, err := os.Open(f.path)
		if err != nil {
			return fmt.Errorf("%w: %v", common.ErrValidation, err)
		}
		part, err := w.CreateFormFile(f.field, filepath.Base(f.path))
		if err == nil {
			_, err = io.Copy(part, src)
		}
		_ = src.Close()
		if err != nil {
			return fmt.Errorf("%w: %v", common.ErrInternal, err)
		}
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInternal, err)
	}

	data, err := c.do(ctx, method, path, w.FormDataContentType(), &buf)
	if err != nil {
		return err
	}
	return decodeBody(data, out)
}
