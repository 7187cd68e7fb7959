package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/business-model-api/infrastructure/database"
	"github.com/vfg2006/business-model-api/internal/domain"
)

var (
	ErrUnknownKind   = errors.New("coleção desconhecida")
	ErrOwnerMismatch = errors.New("registro pertence a outro usuário")
)

// PlatformTotals são os números brutos do painel administrativo, somados sobre todos os usuários
type PlatformTotals struct {
	TotalUsers       int
	TotalRevenue     float64
	TotalSubscribers int64
	AverageChurnRate float64
}

type ModelRepository interface {
	ListByOwner(ctx context.Context, kind domain.EntityKind, ownerID int) ([]domain.Record, error)
	LoadModel(ctx context.Context, ownerID int) (*domain.Model, error)
	Upsert(ctx context.Context, ownerID int, record domain.Record) error
	DeleteByID(ctx context.Context, ownerID int, kind domain.EntityKind, id string) error
	ApplyChanges(ctx context.Context, ownerID int, changes []domain.Change) error
	SeedDefaults(ctx context.Context, ownerID int, model *domain.Model) (bool, error)
	ListOwners(ctx context.Context) ([]int, error)
	PlatformTotals(ctx context.Context) (*PlatformTotals, error)
}

type modelRepository struct {
	conn database.Conn
}

func NewModelRepository(conn database.Conn) ModelRepository {
	return &modelRepository{
		conn: conn,
	}
}

func (r *modelRepository) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(r.conn.Placeholder())
}

func (r *modelRepository) ListByOwner(ctx context.Context, kind domain.EntityKind, ownerID int) ([]domain.Record, error) {
	return r.listByOwner(ctx, r.conn, kind, ownerID)
}

func (r *modelRepository) listByOwner(ctx context.Context, q database.Queryer, kind domain.EntityKind, ownerID int) ([]domain.Record, error) {
	mapper, err := mapperFor(kind)
	if err != nil {
		return nil, err
	}

	query, args, err := r.builder().
		Select(mapper.columnNames()...).
		From(mapper.tableName()).
		Where(squirrel.Eq{"user_id": ownerID}).
		OrderBy("position ASC", "created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError(err, "listar "+mapper.tableName())
	}
	defer rows.Close()

	records := make([]domain.Record, 0)
	for rows.Next() {
		record, err := mapper.scan(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return records, nil
}

func (r *modelRepository) LoadModel(ctx context.Context, ownerID int) (*domain.Model, error) {
	model := domain.NewModel(ownerID)

	for _, kind := range domain.AllKinds {
		records, err := r.ListByOwner(ctx, kind, ownerID)
		if err != nil {
			return nil, err
		}

		for _, record := range records {
			model.Add(record)
		}
	}

	return model, nil
}

func (r *modelRepository) Upsert(ctx context.Context, ownerID int, record domain.Record) error {
	return r.upsert(ctx, r.conn, ownerID, record)
}

// upsert é idempotente: regravar o mesmo registro não altera o estado
func (r *modelRepository) upsert(ctx context.Context, q database.Queryer, ownerID int, record domain.Record) error {
	if record.RecordOwner() != ownerID {
		return fmt.Errorf("%w: %s %s", ErrOwnerMismatch, record.RecordKind(), record.RecordID())
	}

	mapper, err := mapperFor(record.RecordKind())
	if err != nil {
		return err
	}

	values, err := mapper.values(record)
	if err != nil {
		return err
	}

	assignments := make([]string, 0, len(mapper.updatableColumns())+1)
	for _, name := range mapper.updatableColumns() {
		assignments = append(assignments, fmt.Sprintf("%s = excluded.%s", name, name))
	}
	assignments = append(assignments, "updated_at = CURRENT_TIMESTAMP")

	query, args, err := r.builder().
		Insert(mapper.tableName()).
		Columns(mapper.columnNames()...).
		Values(values...).
		Suffix(fmt.Sprintf(
			"ON CONFLICT (id) DO UPDATE SET %s WHERE %s.user_id = excluded.user_id",
			strings.Join(assignments, ", "),
			mapper.tableName(),
		)).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapDBError(err, "gravar "+mapper.tableName())
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}

	// O id existe mas é de outro usuário: o WHERE do upsert bloqueou a escrita
	if affected == 0 {
		return fmt.Errorf("%w: %s %s", ErrOwnerMismatch, record.RecordKind(), record.RecordID())
	}

	return nil
}

func (r *modelRepository) DeleteByID(ctx context.Context, ownerID int, kind domain.EntityKind, id string) error {
	return r.deleteByID(ctx, r.conn, ownerID, kind, id)
}

// deleteByID não falha quando o registro já não existe, repetir a exclusão é seguro
func (r *modelRepository) deleteByID(ctx context.Context, q database.Queryer, ownerID int, kind domain.EntityKind, id string) error {
	mapper, err := mapperFor(kind)
	if err != nil {
		return err
	}

	query, args, err := r.builder().
		Delete(mapper.tableName()).
		Where(squirrel.Eq{"id": id, "user_id": ownerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return wrapDBError(err, "excluir de "+mapper.tableName())
	}

	return nil
}

// ApplyChanges grava todas as alterações de uma edição numa única transação
func (r *modelRepository) ApplyChanges(ctx context.Context, ownerID int, changes []domain.Change) error {
	if len(changes) == 0 {
		return nil
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, change := range changes {
			var err error
			if change.Delete {
				err = r.deleteByID(ctx, tx, ownerID, change.Kind, change.ID)
			} else {
				err = r.upsert(ctx, tx, ownerID, change.Record)
			}

			if err != nil {
				return err
			}
		}
		return nil
	})
}

// SeedDefaults insere o modelo padrão somente se nenhuma coleção do usuário tiver linhas.
// Verificação e inserção acontecem na mesma transação, sob o lock do usuário.
func (r *modelRepository) SeedDefaults(ctx context.Context, ownerID int, model *domain.Model) (bool, error) {
	seeded := false

	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if err := r.conn.LockOwner(ctx, tx, ownerID); err != nil {
			return wrapDBError(err, "obter lock do usuário")
		}

		for _, kind := range domain.AllKinds {
			count, err := r.countByOwner(ctx, tx, kind, ownerID)
			if err != nil {
				return err
			}

			if count > 0 {
				logrus.WithFields(logrus.Fields{
					"user_id": ownerID,
					"kind":    kind,
				}).Debug("Usuário já possui dados, seed ignorado")
				return nil
			}
		}

		for _, record := range model.AllRecords() {
			if err := r.upsert(ctx, tx, ownerID, record); err != nil {
				return err
			}
		}

		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return seeded, nil
}

func (r *modelRepository) countByOwner(ctx context.Context, q database.Queryer, kind domain.EntityKind, ownerID int) (int, error) {
	mapper, err := mapperFor(kind)
	if err != nil {
		return 0, err
	}

	query, args, err := r.builder().
		Select("COUNT(*)").
		From(mapper.tableName()).
		Where(squirrel.Eq{"user_id": ownerID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int
	if err := q.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, wrapDBError(err, "contar "+mapper.tableName())
	}

	return count, nil
}

// ListOwners devolve, em ordem crescente, os usuários com ao menos uma linha no modelo
func (r *modelRepository) ListOwners(ctx context.Context) ([]int, error) {
	owners := make(map[int]struct{})

	for _, kind := range domain.AllKinds {
		mapper, err := mapperFor(kind)
		if err != nil {
			return nil, err
		}

		query, args, err := r.builder().
			Select("DISTINCT user_id").
			From(mapper.tableName()).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("erro ao construir a query: %w", err)
		}

		rows, err := r.conn.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, wrapDBError(err, "listar usuários de "+mapper.tableName())
		}

		for rows.Next() {
			var ownerID int
			if err := rows.Scan(&ownerID); err != nil {
				rows.Close()
				return nil, fmt.Errorf("erro ao escanear usuário: %w", err)
			}
			owners[ownerID] = struct{}{}
		}
		rows.Close()

		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
		}
	}

	result := make([]int, 0, len(owners))
	for ownerID := range owners {
		result = append(result, ownerID)
	}
	sort.Ints(result)

	return result, nil
}

func (r *modelRepository) PlatformTotals(ctx context.Context) (*PlatformTotals, error) {
	totals := &PlatformTotals{}

	usersSQL, usersArgs, err := r.builder().
		Select("COUNT(*)").
		From(usersTable).
		Where(squirrel.Eq{"deleted": false}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}
	if err := r.conn.QueryRowContext(ctx, usersSQL, usersArgs...).Scan(&totals.TotalUsers); err != nil {
		return nil, wrapDBError(err, "contar usuários")
	}

	subsSQL, subsArgs, err := r.builder().
		Select("COALESCE(SUM(mrr), 0)", "COALESCE(SUM(subscriber_count), 0)").
		From(tables[domain.KindSubscription].tableName()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}
	if err := r.conn.QueryRowContext(ctx, subsSQL, subsArgs...).Scan(&totals.TotalRevenue, &totals.TotalSubscribers); err != nil {
		return nil, wrapDBError(err, "somar assinaturas")
	}

	// Períodos sem assinantes existentes contam como churn zero, mas entram na média
	churnSQL, churnArgs, err := r.builder().
		Select("COALESCE(AVG(CASE WHEN existing_subs > 0 THEN churned_subs * 100.0 / existing_subs ELSE 0 END), 0)").
		From(tables[domain.KindActiveSubscribers].tableName()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}
	if err := r.conn.QueryRowContext(ctx, churnSQL, churnArgs...).Scan(&totals.AverageChurnRate); err != nil {
		return nil, wrapDBError(err, "calcular churn médio")
	}

	return totals, nil
}

func wrapDBError(err error, action string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("database error ao %s: %w (code: %s)", action, err, pqErr.Code)
	}
	return fmt.Errorf("erro ao %s: %w", action, err)
}
