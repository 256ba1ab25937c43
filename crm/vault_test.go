package crm

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/thewalkingjumbo/agency-ops/store"
)

type fakeUploader struct {
	url     string
	err     error
	uploads []string
}

func (f *fakeUploader) Upload(ctx context.Context, name, contentType string, content io.Reader) (string, error) {
	f.uploads = append(f.uploads, name)
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

type fakeDocumentRepo struct {
	addErr error
	docs   []*store.Document
}

func (f *fakeDocumentRepo) Add(ctx context.Context, clientID, name, url string, typ store.DocumentType) (*store.Document, error) {
	if f.addErr != nil {
		return nil, f.addErr
	}
	doc := &store.Document{ID: "d1", ClientID: clientID, Name: name, URL: url, Type: typ}
	f.docs = append(f.docs, doc)
	return doc, nil
}

func (f *fakeDocumentRepo) ListByClient(ctx context.Context, clientID string) ([]*store.Document, error) {
	return f.docs, nil
}

func (f *fakeDocumentRepo) Delete(ctx context.Context, id string) error {
	return nil
}

func TestUploadDocumentHappyPath(t *testing.T) {
	t.Parallel()

	uploader := &fakeUploader{url: "https://files.test/contract.pdf"}
	docs := &fakeDocumentRepo{}
	svc := NewVaultService(uploader, docs)

	result := svc.UploadDocument(context.Background(), "c1", "contract.pdf", "application/pdf", strings.NewReader("%PDF"))
	if !result.Success || result.Message != "Document uploaded successfully." {
		t.Fatalf("UploadDocument failed: %+v", result)
	}
	if len(docs.docs) != 1 {
		t.Fatalf("expected one recorded document, got %d", len(docs.docs))
	}
	doc := docs.docs[0]
	if doc.URL != uploader.url || doc.Type != store.DocPDF {
		t.Fatalf("unexpected document record: %+v", doc)
	}
}

func TestUploadDocumentValidation(t *testing.T) {
	t.Parallel()

	uploader := &fakeUploader{url: "u"}
	svc := NewVaultService(uploader, &fakeDocumentRepo{})

	result := svc.UploadDocument(context.Background(), "", "f.pdf", "application/pdf", strings.NewReader("x"))
	if result.Success || result.Message != "File and client ID are required." {
		t.Fatalf("expected validation failure, got %+v", result)
	}
	result = svc.UploadDocument(context.Background(), "c1", "f.pdf", "application/pdf", nil)
	if result.Success {
		t.Fatalf("expected failure for nil content")
	}
	if len(uploader.uploads) != 0 {
		t.Fatalf("nothing must be uploaded on validation failure")
	}
}

func TestUploadDocumentFailures(t *testing.T) {
	t.Parallel()

	svc := NewVaultService(&fakeUploader{err: errors.New("storage down")}, &fakeDocumentRepo{})
	result := svc.UploadDocument(context.Background(), "c1", "f.pdf", "application/pdf", strings.NewReader("x"))
	if result.Success || result.Message != "Failed to upload document." {
		t.Fatalf("expected upload failure, got %+v", result)
	}

	svc = NewVaultService(&fakeUploader{url: "u"}, &fakeDocumentRepo{addErr: errors.New("db down")})
	result = svc.UploadDocument(context.Background(), "c1", "f.pdf", "application/pdf", strings.NewReader("x"))
	if result.Success || result.Message != "Failed to upload document." {
		t.Fatalf("expected record failure, got %+v", result)
	}
}

func TestDocTypeFor(t *testing.T) {
	t.Parallel()

	cases := map[string]store.DocumentType{
		"application/pdf": store.DocPDF,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document": store.DocDOCX,
		"image/png":      store.DocPNG,
		"image/jpeg":     store.DocJPEG,
		"image/jpg":      store.DocJPEG,
		"text/plain":     store.DocOther,
		"no-slash-value": store.DocOther,
	}
	for in, want := range cases {
		if got := docTypeFor(in); got != want {
			t.Fatalf("docTypeFor(%q) = %s, want %s", in, got, want)
		}
	}
}
