package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"edurooms/infras/otel"
	"edurooms/infras/postgres"
	"edurooms/internal/domains/reservation/model"
	"edurooms/shared/constant"
	gDto "edurooms/shared/dto"
	"edurooms/shared/logger"
	gRepo "edurooms/shared/repository"

	"github.com/jmoiron/sqlx"
)

const returningColumns = "id, user_id, room_id, date, start_time, end_time, status, created_at, modified_at, created_by, modified_by"

type Reservation interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx *sqlx.Tx) error) error
	InsertTx(ctx context.Context, tx *sqlx.Tx, reservation model.Reservation) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	ExistTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) (int64, error)
	HasOverlap(ctx context.Context, tx *sqlx.Tx, query model.OverlapQuery) (bool, error)
	ListConfirmedByRoomDate(ctx context.Context, roomID int64, date string) ([]model.Reservation, error)
	CompleteExpired(ctx context.Context, today string, userID int64, actor string, now time.Time) ([]model.Reservation, error)
	CancelConfirmedByRoomTx(ctx context.Context, tx *sqlx.Tx, roomID int64, actor string, now time.Time) ([]model.Reservation, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// ConfirmedFilter matches confirmed reservations.
func ConfirmedFilter() gDto.Filter {
	return gDto.Filter{
		Field:    model.FieldStatus,
		Value:    model.StatusConfirmed,
		Operator: gDto.FilterOperatorEq,
		Table:    model.TableName,
	}
}

// OverlapFilter matches the confirmed reservations intersecting query. Touching ranges do not match.
func OverlapFilter(query model.OverlapQuery) gDto.FilterGroup {
	filter := gDto.FilterGroup{}

	filter.Add(
		gDto.Filter{Field: string(query.Scope), Value: query.ScopeID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		gDto.Filter{Field: model.FieldDate, Value: query.Date, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		ConfirmedFilter(),
		gDto.Filter{Field: model.FieldStartTime, Value: query.Slot.End, Operator: gDto.FilterOperatorLess, Table: model.TableName},
		gDto.Filter{Field: model.FieldEndTime, Value: query.Slot.Start, Operator: gDto.FilterOperatorGreater, Table: model.TableName},
	)

	if query.ExcludeID > 0 {
		filter.Add(gDto.Filter{Field: model.FieldID, Value: query.ExcludeID, Operator: gDto.FilterOperatorNotEq, Table: model.TableName})
	}

	return filter
}

// HasOverlap runs inside tx when one is given so the answer sees the transaction's locks.
func (r *repositoryImpl) HasOverlap(ctx context.Context, tx *sqlx.Tx, query model.OverlapQuery) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.HasOverlap")
	defer scope.End()

	scope.SetAttributes(map[string]any{
		"overlap.scope":    string(query.Scope),
		"overlap.scope_id": query.ScopeID,
		"overlap.date":     query.Date.String(),
	})

	if tx == nil {
		return r.Exist(ctx, OverlapFilter(query)) //nolint:wrapcheck
	}

	return r.ExistTx(ctx, tx, OverlapFilter(query)) //nolint:wrapcheck
}

func (r *repositoryImpl) ListConfirmedByRoomDate(ctx context.Context, roomID int64, date string) ([]model.Reservation, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.ListConfirmedByRoomDate")
	defer scope.End()

	filter := gDto.FilterGroup{}
	filter.Add(
		gDto.Filter{Field: model.FieldRoomID, Value: roomID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		gDto.Filter{Field: model.FieldDate, Value: date, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		ConfirmedFilter(),
	)

	params := gDto.QueryParams{
		SortBy:  model.TableName + "." + model.FieldStartTime,
		SortDir: gDto.SortDirAsc,
	}

	return r.GetAll(ctx, params, filter) //nolint:wrapcheck
}

// CompleteExpired marks every confirmed reservation dated before today as completed and returns
// the rows it changed. A positive userID limits the update to that user's reservations.
func (r *repositoryImpl) CompleteExpired(ctx context.Context, today string, userID int64, actor string, now time.Time) ([]model.Reservation, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.CompleteExpired")
	defer scope.End()

	query := fmt.Sprintf(`UPDATE %s SET status = :completed, modified_at = :now, modified_by = :actor
		WHERE status = :confirmed AND date < :today AND (:user_id = 0 OR user_id = :user_id)
		RETURNING %s`, model.TableName, returningColumns)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"completed": model.StatusCompleted,
		"confirmed": model.StatusConfirmed,
		"today":     today,
		"user_id":   userID,
		"actor":     actor,
		"now":       now,
	}

	return r.updateReturning(ctx, r.db.Write, query, args)
}

// CancelConfirmedByRoomTx cancels every confirmed reservation of a room and returns the rows it changed.
func (r *repositoryImpl) CancelConfirmedByRoomTx(ctx context.Context, tx *sqlx.Tx, roomID int64, actor string, now time.Time) ([]model.Reservation, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.CancelConfirmedByRoomTx")
	defer scope.End()

	query := fmt.Sprintf(`UPDATE %s SET status = :cancelled, modified_at = :now, modified_by = :actor
		WHERE status = :confirmed AND room_id = :room_id
		RETURNING %s`, model.TableName, returningColumns)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"cancelled": model.StatusCancelled,
		"confirmed": model.StatusConfirmed,
		"room_id":   roomID,
		"actor":     actor,
		"now":       now,
	}

	return r.updateReturning(ctx, tx, query, args)
}

type namedPreparer interface {
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
}

func (r *repositoryImpl) updateReturning(ctx context.Context, exec namedPreparer, query string, args map[string]any) ([]model.Reservation, error) {
	models := []model.Reservation{}

	prepare, err := exec.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)

		return models, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	if err = prepare.SelectContext(ctx, &models, args); err != nil {
		logger.ErrorWithStack(err)

		return models, fmt.Errorf("failed to update data (%s): %w", model.EntityName, err)
	}

	return models, nil
}
