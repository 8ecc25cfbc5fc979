package exporter

import (
	"cellgrep/internal/config"
	"cellgrep/internal/model"
)

// Exporter is the unified interface for all report strategies
type Exporter interface {
	Export(summary *model.Summary, cfg *config.Config) error
}
