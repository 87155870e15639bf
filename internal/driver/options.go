package driver

import (
	"tidy/internal/optable"
	"tidy/internal/pipeline"
)

// SourceExt is the extension of tidy source files picked up in directory mode.
const SourceExt = ".td"

// Options настраивает все команды драйвера.
type Options struct {
	MaxDiagnostics int                   // <= 0: без лимита
	Table          *optable.Table        // nil: optable.Default()
	Cache          *DiskCache            // nil: кэш выключен
	Jobs           int                   // <= 0: GOMAXPROCS
	Progress       pipeline.ProgressSink // nil: без событий
}

func (o Options) table() *optable.Table {
	if o.Table == nil {
		return optable.Default()
	}
	return o.Table
}
