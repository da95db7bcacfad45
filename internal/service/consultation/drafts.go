package consultation

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/jwalitptl/frontdesk-api/internal/model"
	apperrors "github.com/jwalitptl/frontdesk-api/pkg/errors"
)

// CodeLookup resolves a CIE-10 code against the catalog.
type CodeLookup interface {
	LookupCie10(ctx context.Context, code string) (*model.Cie10Code, error)
}

// Draft is the CIE-10 selection of a consultation that has not been saved
// yet.
type Draft struct {
	ID string `json:"draft_id"`
	model.DiagnosisSelection
}

func (d *Draft) clone() *Draft {
	cp := *d
	cp.Codes = append([]model.Cie10Code{}, d.Codes...)
	return &cp
}

// DraftStore keeps drafts in memory. A draft that is not touched for the
// configured TTL is dropped.
type DraftStore struct {
	mu      sync.Mutex
	cache   *cache.Cache
	catalog CodeLookup
}

func NewDraftStore(catalog CodeLookup, ttl time.Duration) *DraftStore {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &DraftStore{
		cache:   cache.New(ttl, ttl/2),
		catalog: catalog,
	}
}

func (s *DraftStore) New() *Draft {
	d := &Draft{ID: uuid.NewString(), DiagnosisSelection: model.DiagnosisSelection{Codes: []model.Cie10Code{}}}
	s.cache.SetDefault(d.ID, d)
	return d.clone()
}

func (s *DraftStore) load(id string) (*Draft, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, apperrors.NotFound("draft", nil)
	}
	return v.(*Draft), nil
}

func (s *DraftStore) Get(id string) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.load(id)
	if err != nil {
		return nil, err
	}
	return d.clone(), nil
}

// AddCode appends the catalog entry for code. Adding a code twice returns a
// Conflict together with the unchanged draft, whose Notice explains why.
func (s *DraftStore) AddCode(ctx context.Context, id, code string) (*Draft, error) {
	entry, err := s.catalog.LookupCie10(ctx, code)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.load(id)
	if err != nil {
		return nil, err
	}

	addErr := d.Add(*entry)
	s.cache.SetDefault(id, d)
	if errors.Is(addErr, model.ErrDuplicateCode) {
		return d.clone(), apperrors.Conflict(addErr.Error(), addErr)
	}
	return d.clone(), nil
}

func (s *DraftStore) RemoveCode(id, code string) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if !d.Remove(code) {
		return nil, apperrors.NotFound("code in draft", nil)
	}
	s.cache.SetDefault(id, d)
	return d.clone(), nil
}

func (s *DraftStore) Discard(id string) {
	s.cache.Delete(id)
}
