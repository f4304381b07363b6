package repository_test

import (
	"errors"
	"fmt"
	"testing"

	"edurooms/infras/otel/mocks"
	"edurooms/shared/constant"
	"edurooms/shared/model"
	"edurooms/shared/repository"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

type sampleRow struct {
	ID       int64  `db:"id"`
	RoomID   int64  `db:"room_id"`
	RoomName string `column:"name"   db:"room_name" table:"rooms"`
	Skipped  string `db:"-"`
	Plain    string
	model.Metadata
}

func TestNewRepository_InsertColumns(t *testing.T) {
	repo := repository.NewRepository[sampleRow]("sample", "samples", "id", nil, mocks.NewOtel())

	assert.Equal(t, []string{"room_id", "created_at", "modified_at", "created_by", "modified_by"}, repo.InsertColumns)
}

func TestIsPqError(t *testing.T) {
	err := fmt.Errorf("failed to insert data (reservation): %w", &pq.Error{Code: "23P01"})

	assert.True(t, repository.IsPqError(err, constant.PqErrorCodeExclusionViolation))
	assert.False(t, repository.IsPqError(err, constant.PqErrorCodeUniqueViolation))
	assert.False(t, repository.IsPqError(errors.New("plain"), constant.PqErrorCodeExclusionViolation))
}
