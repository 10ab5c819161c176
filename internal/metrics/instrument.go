package metrics

import (
	"context"
	"errors"
	"time"

	"folio/internal/domain"
	"folio/internal/ports"
)

// InstrumentedRepository records every LoadIndex call on a Recorder.
type InstrumentedRepository struct {
	ports.ContentRepository
	rec Recorder
}

// Instrument wraps repo. A nil recorder yields repo unchanged.
func Instrument(repo ports.ContentRepository, rec Recorder) ports.ContentRepository {
	if rec == nil {
		return repo
	}
	return &InstrumentedRepository{ContentRepository: repo, rec: rec}
}

func (r *InstrumentedRepository) LoadIndex(ctx context.Context) ([]domain.Entry, error) {
	start := time.Now()
	entries, err := r.ContentRepository.LoadIndex(ctx)
	r.rec.ObserveIndexBuild(time.Since(start), len(entries), Result(err))
	return entries, err
}

// Unwrap returns the wrapped repository
func (r *InstrumentedRepository) Unwrap() ports.ContentRepository {
	return r.ContentRepository
}

// Result classifies an index build error.
func Result(err error) ResultLabel {
	switch {
	case err == nil:
		return ResultSuccess
	case errors.Is(err, domain.ErrNotFound):
		return ResultNotFound
	case errors.Is(err, domain.ErrMalformedContent):
		return ResultMalformed
	}
	return ResultError
}
