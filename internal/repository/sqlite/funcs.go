package sqlite

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"jobflix-backend/internal/domain"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

func init() {
	// contains_fold(haystack, needle) uses the same case folding as the in-memory
	// store, which LIKE (ASCII only) does not.
	msqlite.MustRegisterDeterministicScalarFunction("contains_fold", 2,
		func(ctx *msqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
			haystack, ok1 := args[0].(string)
			needle, ok2 := args[1].(string)
			if !ok1 || !ok2 {
				return int64(0), nil
			}
			if domain.ContainsFold(haystack, needle) {
				return int64(1), nil
			}
			return int64(0), nil
		},
	)
}

// jsonList stores a string list as a JSON array in a TEXT column.
type jsonList []string

func (l jsonList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *jsonList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = jsonList{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("jsonList: unsupported source %T", src)
	}
	out := []string{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*l = out
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
