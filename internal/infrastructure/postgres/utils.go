package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// foldedExpr replica en SQL la normalización de textutil.FoldSearch sobre
// una columna: minúsculas y sin tildes, para comparar contra filtros ya
// plegados. Ambos lados de la comparación quedan en la misma forma.
func foldedExpr(col string) string {
	return "translate(lower(" + col + "), 'áéíóúüñ', 'aeiouun')"
}

// isUniqueViolation verifica si un error es una violación de constraint
// único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}
