package db

import (
	"context"
	"database/sql/driver"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorKind は永続化層で発生したエラーの分類です。
// リコンサイラが文字列検査ではなく種別で分岐できるようにします。
type ErrorKind int

const (
	// KindUnknown は分類できないエラーです。
	KindUnknown ErrorKind = iota
	// KindConflict は一意制約違反です。
	KindConflict
	// KindTransientIO は接続断・タイムアウトなどの一過性エラーです。
	KindTransientIO
	// KindValidation は不正なデータによるエラーです。
	KindValidation
)

// Classify は永続化エラーをErrorKindに分類します。
// gorm.Config.TranslateErrorが有効なら一意制約違反は
// gorm.ErrDuplicatedKeyとして届きますが、念のためドライバ固有の
// メッセージも検査します。
func Classify(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return KindConflict
	case errors.Is(err, gorm.ErrInvalidData),
		errors.Is(err, gorm.ErrInvalidValue),
		errors.Is(err, gorm.ErrInvalidField):
		return KindValidation
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		errors.Is(err, driver.ErrBadConn):
		return KindTransientIO
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"), // sqlite
		strings.Contains(msg, "duplicate key value"): // postgres
		return KindConflict
	case strings.Contains(msg, "database is locked"),
		strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "connection reset"):
		return KindTransientIO
	case strings.Contains(msg, "NOT NULL constraint failed"),
		strings.Contains(msg, "violates not-null constraint"):
		return KindValidation
	}
	return KindUnknown
}
