package postgres

import "time"

// TIMESTAMPTZ keeps microseconds. Records handed back from a write must carry the
// same instants a later read returns.
func dbTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

func dbNow() time.Time {
	return dbTime(time.Now())
}

func dbTimePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := dbTime(*t)
	return &v
}
