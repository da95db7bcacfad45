package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/jwalitptl/frontdesk-api/internal/model"
	"github.com/jwalitptl/frontdesk-api/internal/repository"
	apperrors "github.com/jwalitptl/frontdesk-api/pkg/errors"
)

const (
	gendersKey = "generos"
	cie10Key   = "cie10"

	DefaultSearchLimit = 50
)

// Service serves the lookup tables from an in-process cache.
type Service struct {
	repo  repository.CatalogRepository
	cache *cache.Cache
	ttl   time.Duration
}

func NewService(repo repository.CatalogRepository, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Service{
		repo:  repo,
		cache: cache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

// TTL is how long a loaded table is served before it is read again.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

func (s *Service) Genders(ctx context.Context) ([]*model.Gender, error) {
	if v, ok := s.cache.Get(gendersKey); ok {
		return v.([]*model.Gender), nil
	}
	genders, err := s.repo.ListGenders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load genders: %w", err)
	}
	s.cache.SetDefault(gendersKey, genders)
	return genders, nil
}

func (s *Service) cie10(ctx context.Context) ([]*model.Cie10Code, error) {
	if v, ok := s.cache.Get(cie10Key); ok {
		return v.([]*model.Cie10Code), nil
	}
	codes, err := s.repo.ListCie10(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load CIE-10 codes: %w", err)
	}
	s.cache.SetDefault(cie10Key, codes)
	return codes, nil
}

// SearchCie10 matches q case-insensitively against code and description.
// An empty q returns the first limit codes.
func (s *Service) SearchCie10(ctx context.Context, q string, limit int) ([]*model.Cie10Code, error) {
	codes, err := s.cie10(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	needle := strings.ToLower(strings.TrimSpace(q))
	out := make([]*model.Cie10Code, 0, limit)
	for _, c := range codes {
		if len(out) == limit {
			break
		}
		if needle == "" ||
			strings.Contains(strings.ToLower(c.Code), needle) ||
			strings.Contains(strings.ToLower(c.Description), needle) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Service) LookupCie10(ctx context.Context, code string) (*model.Cie10Code, error) {
	codes, err := s.cie10(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range codes {
		if strings.EqualFold(c.Code, code) {
			return c, nil
		}
	}

	// the cached list may predate the code
	c, err := s.repo.GetCie10(ctx, code)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("CIE-10 code", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get CIE-10 code: %w", err)
	}
	return c, nil
}

// Invalidate drops every cached table.
func (s *Service) Invalidate() {
	s.cache.Flush()
}
