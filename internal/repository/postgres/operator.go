package postgres

import (
	"context"
	"fmt"

	"github.com/jwalitptl/frontdesk-api/internal/model"
)

const operatorColumns = `empleado_id, nombres, apellidos, especialidad, correo`

func (r *operatorRepository) GetByEmail(ctx context.Context, email string) (*model.Operator, error) {
	query := `SELECT ` + operatorColumns + ` FROM empleados WHERE correo = $1`
	var op model.Operator
	if err := r.db.GetContext(ctx, &op, query, email); err != nil {
		return nil, notFound(err, "get operator by email")
	}
	return &op, nil
}

func (r *operatorRepository) Get(ctx context.Context, id int64) (*model.Operator, error) {
	query := `SELECT ` + operatorColumns + ` FROM empleados WHERE empleado_id = $1`
	var op model.Operator
	if err := r.db.GetContext(ctx, &op, query, id); err != nil {
		return nil, notFound(err, "get operator")
	}
	return &op, nil
}

func (r *operatorRepository) List(ctx context.Context) ([]*model.Operator, error) {
	query := `SELECT ` + operatorColumns + ` FROM empleados ORDER BY apellidos, nombres`
	var ops []*model.Operator
	if err := r.db.SelectContext(ctx, &ops, query); err != nil {
		return nil, fmt.Errorf("failed to list operators: %w", err)
	}
	return ops, nil
}
