package consultation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/frontdesk-api/internal/model"
	"github.com/jwalitptl/frontdesk-api/internal/repository/memory"
	"github.com/jwalitptl/frontdesk-api/internal/service/catalog"
	apperrors "github.com/jwalitptl/frontdesk-api/pkg/errors"
)

func newDraftStore(t *testing.T) *DraftStore {
	t.Helper()
	store := memory.NewStore()
	store.AddCie10(&model.Cie10Code{Code: "J00", Description: "Rinofaringitis aguda"})
	store.AddCie10(&model.Cie10Code{Code: "R50.9", Description: "Fiebre, no especificada"})
	return NewDraftStore(catalog.NewService(store.Catalog(), time.Minute), time.Hour)
}

func TestDraftAddCode(t *testing.T) {
	drafts := newDraftStore(t)
	ctx := context.Background()
	d := drafts.New()
	assert.NotEmpty(t, d.ID)
	assert.Zero(t, d.Len())

	d, err := drafts.AddCode(ctx, d.ID, "J00")
	require.NoError(t, err)
	assert.Equal(t, 1, d.Len())
	assert.Equal(t, "Rinofaringitis aguda", d.Codes[0].Description)

	d, err = drafts.AddCode(ctx, d.ID, "R50.9")
	require.NoError(t, err)
	assert.Equal(t, []string{"J00", "R50.9"}, []string{d.Codes[0].Code, d.Codes[1].Code})
}

func TestDraftDuplicateCodeLeavesSelection(t *testing.T) {
	drafts := newDraftStore(t)
	ctx := context.Background()
	d := drafts.New()

	_, err := drafts.AddCode(ctx, d.ID, "J00")
	require.NoError(t, err)

	dup, err := drafts.AddCode(ctx, d.ID, "J00")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrConflict))
	require.NotNil(t, dup)
	assert.Equal(t, 1, dup.Len())
	assert.NotEmpty(t, dup.Notice)

	stored, err := drafts.Get(d.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.Notice)

	after, err := drafts.AddCode(ctx, d.ID, "R50.9")
	require.NoError(t, err)
	assert.Equal(t, 2, after.Len())
	assert.Empty(t, after.Notice)
}

func TestDraftUnknownCode(t *testing.T) {
	drafts := newDraftStore(t)
	d := drafts.New()

	_, err := drafts.AddCode(context.Background(), d.ID, "Z99.9")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestDraftRemoveAndDiscard(t *testing.T) {
	drafts := newDraftStore(t)
	ctx := context.Background()
	d := drafts.New()
	_, err := drafts.AddCode(ctx, d.ID, "J00")
	require.NoError(t, err)

	d, err = drafts.RemoveCode(d.ID, "J00")
	require.NoError(t, err)
	assert.Zero(t, d.Len())

	_, err = drafts.RemoveCode(d.ID, "J00")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))

	drafts.Discard(d.ID)
	_, err = drafts.Get(d.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestDraftGetReturnsCopy(t *testing.T) {
	drafts := newDraftStore(t)
	d := drafts.New()
	_, err := drafts.AddCode(context.Background(), d.ID, "J00")
	require.NoError(t, err)

	got, err := drafts.Get(d.ID)
	require.NoError(t, err)
	got.Codes[0].Code = "X"

	again, err := drafts.Get(d.ID)
	require.NoError(t, err)
	assert.Equal(t, "J00", again.Codes[0].Code)
}
