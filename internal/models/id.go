package models

import "strconv"

// TimeID renders a millisecond timestamp as a record id. User and page ids
// are generation-time timestamps, so a record's id orders it in time.
func TimeID(unixMilli int64) string {
	return strconv.FormatInt(unixMilli, 10)
}

// TimestampFromID recovers the embedded timestamp from a TimeID. Returns 0
// for ids that do not parse (foreign or corrupted records).
func TimestampFromID(id string) int64 {
	ts, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0
	}
	return ts
}
