package httpclient

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"sort"
)

// File is one file part of a multipart upload.
type File struct {
	Field   string
	Name    string
	Content io.Reader
}

// Form is a multipart/form-data payload.
type Form struct {
	Fields map[string]string
	Files  []File
}

// Encode renders the form and returns the body with its content type (boundary included).
func (f Form) Encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(f.Fields))
	for k := range f.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := w.WriteField(k, f.Fields[k]); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", k, err)
		}
	}

	for _, file := range f.Files {
		field := file.Field
		if field == "" {
			field = "file"
		}
		part, err := w.CreateFormFile(field, file.Name)
		if err != nil {
			return nil, "", fmt.Errorf("create part %s: %w", file.Name, err)
		}
		if file.Content != nil {
			if _, err := io.Copy(part, file.Content); err != nil {
				return nil, "", fmt.Errorf("copy %s: %w", file.Name, err)
			}
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
