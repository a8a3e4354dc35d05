package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"strings"
	"testing"
)

type fakeStorageProvider struct {
	uploads map[string]string // object name -> content type
}

func newFakeStorageProvider() *fakeStorageProvider {
	return &fakeStorageProvider{uploads: make(map[string]string)}
}

func (p *fakeStorageProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return "", err
	}
	p.uploads[filename] = contentType
	return "/uploads/" + filename, nil
}

func (p *fakeStorageProvider) Delete(ctx context.Context, filename string) error {
	delete(p.uploads, filename)
	return nil
}

func (p *fakeStorageProvider) GetURL(filename string) string {
	return "/uploads/" + filename
}

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", name)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing form: %v", err)
	}

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("ReadForm: %v", err)
	}
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["file"][0]
}

func TestUploadCompanyLogo(t *testing.T) {
	provider := newFakeStorageProvider()
	svc := &StorageService{Provider: provider}

	url, err := svc.UploadCompanyLogo(context.Background(), "hr@acme.test", fileHeader(t, "logo.png", []byte("png-bytes")))
	if err != nil {
		t.Fatalf("UploadCompanyLogo: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/company-logos/hr@acme.test/") {
		t.Errorf("url = %q, want it under company-logos/<owner>/", url)
	}
	if !strings.HasSuffix(url, ".png") {
		t.Errorf("url = %q, want the original extension kept", url)
	}

	for name, contentType := range provider.uploads {
		if contentType != "image/png" {
			t.Errorf("stored %q with content type %q, want image/png", name, contentType)
		}
	}
	if len(provider.uploads) != 1 {
		t.Fatalf("stored %d objects, want 1", len(provider.uploads))
	}
}

func TestUploadCompanyLogoRejectsNonImage(t *testing.T) {
	svc := &StorageService{Provider: newFakeStorageProvider()}

	if _, err := svc.UploadCompanyLogo(context.Background(), "hr@acme.test", fileHeader(t, "logo.pdf", []byte("%PDF"))); err == nil {
		t.Fatal("expected an unsupported file type error for a pdf logo")
	}
}

func TestUploadCompanyLogoRejectsOversized(t *testing.T) {
	svc := &StorageService{Provider: newFakeStorageProvider()}

	big := bytes.Repeat([]byte("x"), maxImageSize+1)
	if _, err := svc.UploadCompanyLogo(context.Background(), "hr@acme.test", fileHeader(t, "logo.png", big)); err == nil {
		t.Fatal("expected a size limit error past 2MB")
	}
}

func TestUploadCVAcceptsDocuments(t *testing.T) {
	provider := newFakeStorageProvider()
	svc := &StorageService{Provider: provider}

	url, err := svc.UploadCV(context.Background(), "user-1", fileHeader(t, "resume.pdf", []byte("%PDF")))
	if err != nil {
		t.Fatalf("UploadCV: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/cv/user-1/") {
		t.Errorf("url = %q, want it under cv/<owner>/", url)
	}
}
