package service

import (
	"context"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
)

// TestUploadsService_Single verifies the multipart encoding: one file
// under the "mainImage" field with its base filename.
func TestUploadsService_Single(t *testing.T) {
	var gotField, gotFilename, gotContent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mt, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mt != "multipart/form-data" {
			t.Errorf("Content-Type = %q (%v)", r.Header.Get("Content-Type"), err)
		}
		mr := multipart.NewReader(r.Body, params["boundary"])
		part, err := mr.NextPart()
		if err != nil {
			t.Fatalf("read part: %v", err)
		}
		gotField = part.FormName()
		gotFilename = part.FileName()
		data, _ := io.ReadAll(part)
		gotContent = string(data)
		w.Write([]byte(`{"success": true, "data": {"url": "https://cdn.example.com/m.jpg", "filename": "m.jpg"}}`))
	}))
	defer srv.Close()

	svc := NewUploadsService(testClient(srv))
	res, err := svc.UploadSingle(context.Background(), "/tmp/photos/m.jpg", strings.NewReader("jpegbytes"))
	if err != nil {
		t.Fatalf("UploadSingle() failed: %v", err)
	}

	if gotField != "mainImage" {
		t.Errorf("form field = %q, want mainImage", gotField)
	}
	if gotFilename != "m.jpg" {
		t.Errorf("filename = %q, want base name m.jpg", gotFilename)
	}
	if gotContent != "jpegbytes" {
		t.Errorf("content = %q", gotContent)
	}
	if res.URL != "https://cdn.example.com/m.jpg" {
		t.Errorf("URL = %q", res.URL)
	}
}

// TestUploadsService_Multiple verifies that every file rides under the
// "additionalImages" field of one request.
func TestUploadsService_Multiple(t *testing.T) {
	var fields, names []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, params, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		mr := multipart.NewReader(r.Body, params["boundary"])
		for {
			part, err := mr.NextPart()
			if err != nil {
				break
			}
			fields = append(fields, part.FormName())
			names = append(names, part.FileName())
		}
		w.Write([]byte(`{"success": true, "data": {"urls": ["https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"]}}`))
	}))
	defer srv.Close()

	svc := NewUploadsService(testClient(srv))
	res, err := svc.UploadMultiple(context.Background(), map[string]io.Reader{
		"a.jpg": strings.NewReader("aa"),
		"b.jpg": strings.NewReader("bb"),
	})
	if err != nil {
		t.Fatalf("UploadMultiple() failed: %v", err)
	}

	if len(fields) != 2 {
		t.Fatalf("saw %d parts, want 2", len(fields))
	}
	for _, f := range fields {
		if f != "additionalImages" {
			t.Errorf("form field = %q, want additionalImages", f)
		}
	}
	sort.Strings(names)
	if names[0] != "a.jpg" || names[1] != "b.jpg" {
		t.Errorf("filenames = %v", names)
	}
	if len(res.URLs) != 2 {
		t.Errorf("URLs = %v", res.URLs)
	}
}
