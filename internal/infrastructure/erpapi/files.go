package erpapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"github.com/jhoicas/erp-admin/internal/application/dto"
	"github.com/jhoicas/erp-admin/internal/domain"
)

// Download descarga un fichero binario. Si el backend responde con un sobre JSON
// en lugar del fichero se aplican las reglas del sobre.
func (c *Client) Download(ctx context.Context, p string) (*dto.Blob, error) {
	resp, err := c.send(ctx, request{method: http.MethodGet, path: p})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := c.readBody(resp, c.maxBlob)
	if err != nil {
		return nil, err
	}

	ct := resp.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		if _, _, err := c.unwrap(data); err != nil {
			return nil, err
		}
		c.notify.Error(msgInvalidResponse)
		return nil, fmt.Errorf("%w: se esperaba un fichero y llegó JSON", domain.ErrInvalidResponse)
	}

	return &dto.Blob{
		Filename:    filenameFrom(resp.Header.Get("Content-Disposition"), path.Base(p)),
		ContentType: ct,
		Data:        data,
	}, nil
}

// filenameFrom extrae el nombre de Content-Disposition (filename* tiene prioridad,
// mime lo decodifica).
func filenameFrom(disposition, fallback string) string {
	if disposition != "" {
		if _, params, err := mime.ParseMediaType(disposition); err == nil {
			if name := params["filename"]; name != "" {
				return path.Base(name)
			}
		}
	}
	return fallback
}

// Form cuerpo multipart/form-data con un único fichero.
type Form struct {
	Fields    map[string]string
	FileField string
	Filename  string
	File      io.Reader
}

func (f Form) encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range f.Fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}
	if f.File != nil {
		field := f.FileField
		if field == "" {
			field = "file"
		}
		part, err := w.CreateFormFile(field, f.Filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, f.File); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// Upload envía un formulario multipart y decodifica data en T.
func Upload[T any](ctx context.Context, c *Client, p string, form Form) (T, error) {
	body, ct, err := form.encode()
	if err != nil {
		var zero T
		return zero, fmt.Errorf("erpapi: construir multipart: %w", err)
	}
	return decode[T](c.roundTrip(ctx, request{
		method:      http.MethodPost,
		path:        p,
		body:        body,
		contentType: ct,
	}))
}
