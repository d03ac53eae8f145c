package config

import (
	"context"
)

// Loader is the interface for a format-specific worksheet loader.
type Loader interface {
	// Load reads worksheets from the given files or directories and
	// translates them into the format-agnostic model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
