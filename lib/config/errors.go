package config

import "github.com/samber/oops"

// ErrConfigNotFound is returned when the persisted config file is missing,
// unreadable or cannot be parsed.
var ErrConfigNotFound = oops.New("config file not found or not readable")
