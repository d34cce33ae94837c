package internal

import "errors"

var (
	ErrInvalidRuleFormat = errors.New("invalid rule format")
	ErrSourceNotFound    = errors.New("source directory not found")
	ErrScanIO            = errors.New("scan source directory")
	ErrDirectoryCreate   = errors.New("create directory")
	ErrMove              = errors.New("move file")
	ErrStatsRead         = errors.New("read category for stats")
	ErrClearRead         = errors.New("clear category")
	ErrInvalidFolder     = errors.New("invalid category folder")
)
