package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/linkedin-ads-api/infrastructure/database/postgres"
	"github.com/vfg2006/linkedin-ads-api/internal/domain"
)

const syncRunsTable = "sync_runs"

type SyncRunRepository interface {
	Create(run *domain.SyncRun) error
	Finish(run *domain.SyncRun) error
	LastSuccessfulAt(accountScope string) (*time.Time, error)
	LastRun() (*domain.SyncRun, error)
}

type syncRunRepository struct {
	conn *postgres.Connection
}

func NewSyncRunRepository(conn *postgres.Connection) SyncRunRepository {
	return &syncRunRepository{
		conn: conn,
	}
}

// Create insere o registro de auditoria no estado running e preenche o ID
// gerado. A linha é criada no início do sync para que uma falha abrupta
// deixe rastro.
func (r *syncRunRepository) Create(run *domain.SyncRun) error {
	query, args, err := squirrel.StatementBuilder.
		Insert(syncRunsTable).
		Columns("account_scope", "started_at", "status", "trigger_type").
		Values(
			run.AccountScope,
			run.StartedAt,
			string(run.Status),
			string(run.Trigger),
		).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.QueryRow(query, args...).Scan(&run.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

// Finish grava o desfecho da execução: status final, contadores e erros
func (r *syncRunRepository) Finish(run *domain.SyncRun) error {
	query, args, err := squirrel.StatementBuilder.
		Update(syncRunsTable).
		Set("finished_at", run.FinishedAt).
		Set("status", string(run.Status)).
		Set("accounts_fetched", run.Stats.AccountsFetched).
		Set("campaigns_fetched", run.Stats.CampaignsFetched).
		Set("creatives_fetched", run.Stats.CreativesFetched).
		Set("metric_rows_fetched", run.Stats.MetricRowsFetched).
		Set("rows_written", run.Stats.RowsWritten).
		Set("errors", pq.Array(run.Errors)).
		Where(squirrel.Eq{"id": run.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

// LastSuccessfulAt retorna quando terminou o último sync bem-sucedido (ou
// parcial) para o escopo dado. Retorna nil quando nunca houve um.
func (r *syncRunRepository) LastSuccessfulAt(accountScope string) (*time.Time, error) {
	query, args, err := squirrel.
		Select("finished_at").
		From(syncRunsTable).
		Where(squirrel.Eq{
			"account_scope": accountScope,
			"status":        []string{string(domain.SyncRunStatusSuccess), string(domain.SyncRunStatusPartial)},
		}).
		OrderBy("finished_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var finishedAt time.Time
	if err := r.conn.QueryRow(query, args...).Scan(&finishedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar último sync: %w", err)
	}

	return &finishedAt, nil
}

// LastRun retorna a execução mais recente registrada, para o /v1/status
func (r *syncRunRepository) LastRun() (*domain.SyncRun, error) {
	query, args, err := squirrel.
		Select(
			"id, account_scope, started_at, finished_at, status, trigger_type,",
			"accounts_fetched, campaigns_fetched, creatives_fetched,",
			"metric_rows_fetched, rows_written, errors",
		).
		From(syncRunsTable).
		OrderBy("started_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	run := &domain.SyncRun{}
	var status, trigger string
	var runErrors pq.StringArray

	err = r.conn.QueryRow(query, args...).Scan(
		&run.ID,
		&run.AccountScope,
		&run.StartedAt,
		&run.FinishedAt,
		&status,
		&trigger,
		&run.Stats.AccountsFetched,
		&run.Stats.CampaignsFetched,
		&run.Stats.CreativesFetched,
		&run.Stats.MetricRowsFetched,
		&run.Stats.RowsWritten,
		&runErrors,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar última execução: %w", err)
	}

	run.Status = domain.SyncRunStatus(status)
	run.Trigger = domain.SyncTrigger(trigger)
	run.Errors = runErrors

	return run, nil
}
