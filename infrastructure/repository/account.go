package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/linkedin-ads-api/infrastructure/database/postgres"
	"github.com/vfg2006/linkedin-ads-api/internal/domain"
)

const adAccountsTable = "ad_accounts"

type AdAccountRepository interface {
	SaveOrUpdate(account *domain.AdAccount) error
	List() ([]*domain.AdAccount, error)
	Count() (int64, error)
}

type adAccountRepository struct {
	conn *postgres.Connection
}

func NewAdAccountRepository(conn *postgres.Connection) AdAccountRepository {
	return &adAccountRepository{
		conn: conn,
	}
}

// SaveOrUpdate insere ou atualiza a conta pelo ID externo. created_at é
// definido na inserção e nunca sobrescrito; fetched_at é renovado sempre.
func (r *adAccountRepository) SaveOrUpdate(account *domain.AdAccount) error {
	sqlQuery, args, err := adAccountUpsert(account).ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func adAccountUpsert(account *domain.AdAccount) squirrel.InsertBuilder {
	return squirrel.StatementBuilder.
		Insert(adAccountsTable).
		Columns("id", "name", "status", "currency", "type", "test").
		Values(
			account.ID,
			account.Name,
			string(account.Status),
			account.Currency,
			account.Type,
			account.Test,
		).
		Suffix(`
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				status = EXCLUDED.status,
				currency = EXCLUDED.currency,
				type = EXCLUDED.type,
				test = EXCLUDED.test,
				fetched_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *adAccountRepository) List() ([]*domain.AdAccount, error) {
	query, args, err := squirrel.
		Select("id, name, status, currency, type, test, created_at, fetched_at").
		From(adAccountsTable).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	accounts := make([]*domain.AdAccount, 0)
	for rows.Next() {
		account := &domain.AdAccount{}
		err := rows.Scan(
			&account.ID,
			&account.Name,
			&account.Status,
			&account.Currency,
			&account.Type,
			&account.Test,
			&account.CreatedAt,
			&account.FetchedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear conta: %w", err)
		}
		accounts = append(accounts, account)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return accounts, nil
}

func (r *adAccountRepository) Count() (int64, error) {
	return countTable(r.conn, adAccountsTable)
}

// countTable executa um COUNT(*) simples, compartilhado pelos repositórios
// para o resumo de /v1/status
func countTable(conn *postgres.Connection, table string) (int64, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(table).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int64
	if err := conn.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar linhas de %s: %w", table, err)
	}

	return count, nil
}
