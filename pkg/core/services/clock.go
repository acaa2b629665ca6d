package services

import (
	"time"

	"github.com/google/uuid"
)

// Overridable in tests for a fixed clock and deterministic ids.
var (
	timeNow = time.Now
	newID   = uuid.NewString
)
