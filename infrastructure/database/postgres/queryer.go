package postgres

import "database/sql"

// Queryer é o subconjunto de operações usado pelos repositórios.
// *sql.DB e *sql.Tx satisfazem a interface.
type Queryer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}
