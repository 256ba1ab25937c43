package crm

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/thewalkingjumbo/agency-ops/store"
)

// ResourceRepo is the persistence surface the knowledge-hub actions need.
// *store.ResourceStore satisfies it.
type ResourceRepo interface {
	List(ctx context.Context) ([]*store.Resource, error)
	Create(ctx context.Context, res *store.Resource) error
	Delete(ctx context.Context, id string) error
}

type KnowledgeService struct {
	repo ResourceRepo
}

func NewKnowledgeService(repo ResourceRepo) *KnowledgeService {
	return &KnowledgeService{repo: repo}
}

type ResourceForm struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Content     string   `json:"content"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags"`
}

func (s *KnowledgeService) FetchResources(ctx context.Context) []*store.Resource {
	resources, err := s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch resources")
		return []*store.Resource{}
	}
	return resources
}

func (s *KnowledgeService) CreateResource(ctx context.Context, form ResourceForm) Result {
	if strings.TrimSpace(form.Title) == "" || strings.TrimSpace(form.Type) == "" {
		return fail(msgMissingFields)
	}

	res := &store.Resource{
		Title:       form.Title,
		Description: form.Description,
		Type:        store.ResourceType(form.Type),
		Content:     form.Content,
		URL:         form.URL,
		Tags:        form.Tags,
	}
	if res.Tags == nil {
		res.Tags = []string{}
	}

	if err := s.repo.Create(ctx, res); err != nil {
		log.Error().Err(err).Msg("failed to create resource")
		return fail("Failed to create resource.")
	}
	return ok()
}

func (s *KnowledgeService) DeleteResource(ctx context.Context, id string) Result {
	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error().Err(err).Str("resource_id", id).Msg("failed to delete resource")
		return fail("Database error.")
	}
	return ok()
}
