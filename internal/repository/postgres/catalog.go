package postgres

import (
	"context"
	"fmt"

	"github.com/jwalitptl/frontdesk-api/internal/model"
)

func (r *catalogRepository) ListGenders(ctx context.Context) ([]*model.Gender, error) {
	genders := []*model.Gender{}
	if err := r.db.SelectContext(ctx, &genders, `SELECT genero_id, nombre FROM generos ORDER BY genero_id`); err != nil {
		return nil, fmt.Errorf("failed to list genders: %w", err)
	}
	return genders, nil
}

func (r *catalogRepository) ListCie10(ctx context.Context) ([]*model.Cie10Code, error) {
	codes := []*model.Cie10Code{}
	if err := r.db.SelectContext(ctx, &codes, `SELECT codigo, descripcion FROM cie10_codigos ORDER BY codigo`); err != nil {
		return nil, fmt.Errorf("failed to list CIE-10 codes: %w", err)
	}
	return codes, nil
}

func (r *catalogRepository) GetCie10(ctx context.Context, code string) (*model.Cie10Code, error) {
	var c model.Cie10Code
	if err := r.db.GetContext(ctx, &c, `SELECT codigo, descripcion FROM cie10_codigos WHERE codigo = $1`, code); err != nil {
		return nil, notFound(err, "get CIE-10 code")
	}
	return &c, nil
}
