package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"

	"github.com/inkpress/inkctl/internal/adapter/outbound/rest"
)

// UploadResult describes one stored image.
type UploadResult struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// MultiUploadResult describes a batch of stored images.
type MultiUploadResult struct {
	URLs      []string `json:"urls"`
	Filenames []string `json:"filenames"`
}

// UploadsService sends images to the backend. It is a pass-through: no
// resizing or re-encoding happens on this side.
type UploadsService struct {
	client *rest.Client
}

// NewUploadsService creates an UploadsService over the given client.
func NewUploadsService(client *rest.Client) *UploadsService {
	return &UploadsService{client: client}
}

// UploadSingle stores one image. The backend expects the file under the
// "mainImage" form field.
func (s *UploadsService) UploadSingle(ctx context.Context, filename string, r io.Reader) (*UploadResult, error) {
	body, contentType, err := encodeMultipart("mainImage", map[string]io.Reader{filename: r})
	if err != nil {
		return nil, err
	}

	var out UploadResult
	if err := s.client.Post(ctx, epUploadSingle, nil, &out, rest.WithRawBody(body, contentType)); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadMultiple stores several images in one request. The backend
// expects each file under the "additionalImages" form field.
func (s *UploadsService) UploadMultiple(ctx context.Context, files map[string]io.Reader) (*MultiUploadResult, error) {
	body, contentType, err := encodeMultipart("additionalImages", files)
	if err != nil {
		return nil, err
	}

	var out MultiUploadResult
	if err := s.client.Post(ctx, epUploadMultiple, nil, &out, rest.WithRawBody(body, contentType)); err != nil {
		return nil, err
	}
	return &out, nil
}

// encodeMultipart builds a multipart form with every file under the
// same field name, as the backend expects.
func encodeMultipart(field string, files map[string]io.Reader) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for filename, r := range files {
		part, err := w.CreateFormFile(field, filepath.Base(filename))
		if err != nil {
			return nil, "", fmt.Errorf("create form file: %w", err)
		}
		if _, err := io.Copy(part, r); err != nil {
			return nil, "", fmt.Errorf("encode %s: %w", filename, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("finalize multipart form: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
