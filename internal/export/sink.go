package export

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/celerix-dev/ivr-reports/internal/metrics"
	"github.com/celerix-dev/ivr-reports/pkg/schema"
)

// Sink receives a finished report.
type Sink interface {
	Deliver(filename string, content []byte) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(filename string, content []byte) error

// Deliver calls f.
func (f SinkFunc) Deliver(filename string, content []byte) error { return f(filename, content) }

// DirSink writes reports into a directory.
type DirSink struct {
	Dir string
}

// Deliver writes content to Dir/filename, replacing any earlier report.
func (s DirSink) Deliver(filename string, content []byte) error {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create export dir %s", s.Dir)
	}
	path := filepath.Join(s.Dir, filepath.Base(filename))
	if err := os.WriteFile(path, content, 0644); err != nil {
		return errors.Wrapf(err, "failed to write report %s", path)
	}
	return nil
}

// Path returns where Deliver puts filename.
func (s DirSink) Path(filename string) string {
	return filepath.Join(s.Dir, filepath.Base(filename))
}

// Export builds the report for records and hands it to sink.
// The sink is not called when there is nothing to export.
func Export(records []schema.InteractionRecord, filename string, sink Sink) error {
	content, err := Build(records)
	if errors.Is(err, ErrNothingToExport) {
		metrics.ExportsTotal.WithLabelValues(metrics.ResultEmpty).Inc()
		return err
	}
	if err != nil {
		metrics.ExportsTotal.WithLabelValues(metrics.ResultError).Inc()
		return err
	}

	if err := sink.Deliver(filename, content); err != nil {
		metrics.ExportsTotal.WithLabelValues(metrics.ResultError).Inc()
		log.Error().Err(err).Str("file", filename).Msg("report delivery failed")
		return err
	}
	metrics.ExportsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	log.Info().Str("file", filename).Int("records", len(records)).Msg("report exported")
	return nil
}
