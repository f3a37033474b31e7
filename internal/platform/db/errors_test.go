package db

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{name: "nil", err: nil, want: KindUnknown},
		{name: "translated duplicated key", err: gorm.ErrDuplicatedKey, want: KindConflict},
		{name: "wrapped duplicated key", err: fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), want: KindConflict},
		{name: "sqlite unique violation", err: errors.New("UNIQUE constraint failed: stocks.symbol"), want: KindConflict},
		{name: "postgres unique violation", err: errors.New(`duplicate key value violates unique constraint "price_sym_date"`), want: KindConflict},
		{name: "context deadline", err: context.DeadlineExceeded, want: KindTransientIO},
		{name: "context canceled", err: context.Canceled, want: KindTransientIO},
		{name: "bad connection", err: driver.ErrBadConn, want: KindTransientIO},
		{name: "sqlite busy", err: errors.New("database is locked"), want: KindTransientIO},
		{name: "tcp failure", err: errors.New("dial tcp 127.0.0.1:5432: connection refused"), want: KindTransientIO},
		{name: "gorm invalid data", err: gorm.ErrInvalidData, want: KindValidation},
		{name: "sqlite not null violation", err: errors.New("NOT NULL constraint failed: stocks.name"), want: KindValidation},
		{name: "postgres not null violation", err: errors.New(`null value in column "name" violates not-null constraint`), want: KindValidation},
		{name: "anything else", err: errors.New("mystery failure"), want: KindUnknown},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}
