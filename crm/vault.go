package crm

import (
	"context"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/thewalkingjumbo/agency-ops/store"
)

// Uploader pushes a file into object storage and returns its public URL.
// *drive.Client satisfies it.
type Uploader interface {
	Upload(ctx context.Context, name, contentType string, content io.Reader) (string, error)
}

// DocumentRepo records uploaded document metadata. *store.DocumentStore
// satisfies it.
type DocumentRepo interface {
	Add(ctx context.Context, clientID, name, url string, typ store.DocumentType) (*store.Document, error)
	ListByClient(ctx context.Context, clientID string) ([]*store.Document, error)
	Delete(ctx context.Context, id string) error
}

type VaultService struct {
	uploads Uploader
	docs    DocumentRepo
}

func NewVaultService(uploads Uploader, docs DocumentRepo) *VaultService {
	return &VaultService{uploads: uploads, docs: docs}
}

// UploadDocument stores the file in object storage and records its metadata
// against the client.
func (s *VaultService) UploadDocument(ctx context.Context, clientID, filename, contentType string, content io.Reader) Result {
	if strings.TrimSpace(clientID) == "" || strings.TrimSpace(filename) == "" || content == nil {
		return fail("File and client ID are required.")
	}

	publicURL, err := s.uploads.Upload(ctx, filename, contentType, content)
	if err != nil {
		log.Error().Err(err).Str("client_id", clientID).Msg("document upload failed")
		return fail("Failed to upload document.")
	}

	if _, err := s.docs.Add(ctx, clientID, filename, publicURL, docTypeFor(contentType)); err != nil {
		log.Error().Err(err).Str("client_id", clientID).Msg("failed to record document")
		return fail("Failed to upload document.")
	}
	return okMsg("Document uploaded successfully.")
}

func (s *VaultService) ListDocuments(ctx context.Context, clientID string) []*store.Document {
	docs, err := s.docs.ListByClient(ctx, clientID)
	if err != nil {
		log.Error().Err(err).Str("client_id", clientID).Msg("failed to list documents")
		return []*store.Document{}
	}
	return docs
}

func (s *VaultService) DeleteDocument(ctx context.Context, id string) Result {
	if err := s.docs.Delete(ctx, id); err != nil {
		log.Error().Err(err).Str("document_id", id).Msg("failed to delete document")
		return fail("Database error.")
	}
	return ok()
}

// docTypeFor derives the vault document type from the upload's MIME subtype.
func docTypeFor(contentType string) store.DocumentType {
	_, subtype, found := strings.Cut(contentType, "/")
	if !found {
		return store.DocOther
	}
	switch strings.ToUpper(subtype) {
	case "PDF":
		return store.DocPDF
	case "DOCX", "VND.OPENXMLFORMATS-OFFICEDOCUMENT.WORDPROCESSINGML.DOCUMENT":
		return store.DocDOCX
	case "PNG":
		return store.DocPNG
	case "JPEG", "JPG":
		return store.DocJPEG
	default:
		return store.DocOther
	}
}
