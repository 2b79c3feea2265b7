package service

import (
	"context"
	"errors"
	"log"
	"strconv"

	errorvalues "github.com/limbo/fittrack/internal/error_values"
	"github.com/limbo/fittrack/internal/provider"
	"github.com/limbo/fittrack/pkg/entity"
	"go.uber.org/zap"
)

type SamplesService struct {
	store  provider.SampleStoreI
	logger *zap.Logger
}

func NewSamplesService(store provider.SampleStoreI, logger *zap.Logger) *SamplesService {
	if store == nil {
		log.Fatal("provided nil sample store")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SamplesService{
		store:  store,
		logger: logger,
	}
}

// Ingest rejects the whole batch when any sample is invalid.
func (ss *SamplesService) Ingest(ctx context.Context, samples []entity.HealthSample) (int64, error) {
	if len(samples) == 0 {
		return 0, errorvalues.ErrNoSamples
	}
	for i := range samples {
		if err := validateStruct(&samples[i]); err != nil {
			return 0, errors.Join(errors.New("sample "+strconv.Itoa(i)+" is invalid"), err)
		}
	}
	n, err := ss.store.AddSamples(ctx, samples)
	if err != nil {
		return 0, &errorvalues.StorageError{Op: "add samples", Err: err}
	}
	ss.logger.Info("health samples ingested", zap.Int64("count", n))
	return n, nil
}
