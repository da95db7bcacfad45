package model

// Gender is a row of the generos lookup.
type Gender struct {
	ID   int64  `db:"genero_id" json:"genero_id"`
	Name string `db:"nombre" json:"nombre"`
}

// Cie10Code is a row of the cie10_codigos lookup.
type Cie10Code struct {
	Code        string `db:"codigo" json:"codigo"`
	Description string `db:"descripcion" json:"descripcion"`
}
