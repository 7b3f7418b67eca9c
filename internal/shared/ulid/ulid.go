package ulid

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// NewULIDAt returns a ULID string whose timestamp part is t, so event ids sort by the
// instant the event occurred. Ids minted within the same millisecond stay monotonic.
var NewULIDAt = func(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), ulid.DefaultEntropy()).String()
}

// Time extracts the timestamp part of a ULID string.
func Time(id string) (time.Time, error) {
	parsed, err := ulid.ParseStrict(id)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}
