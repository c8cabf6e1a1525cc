package constants

import "time"

const (
	RequestTimeout = 30 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
	DBBatchSize       = 100
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	// RollLookupLimit caps roll_info rows fetched per turn so duplicates can be detected.
	RollLookupLimit = 2
)
