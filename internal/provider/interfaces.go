package provider

import (
	"context"
	"time"

	"github.com/limbo/fittrack/pkg/entity"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks SampleProviderI,SampleStoreI

// SampleProviderI is the read-only view of an external health data source.
// Every query is scoped to one calendar day and may fail independently.
type SampleProviderI interface {
	// Sum of step samples starting within the day
	StepsTotal(ctx context.Context, day time.Time) (int, error)
	// Sum of water intake samples starting within the day, in liters
	HydrationLiters(ctx context.Context, day time.Time) (float64, error)
	// Most recent body mass sample ending before the day after upTo. Nil upTo means
	// no date bound. Nil result means no sample
	LatestWeightKg(ctx context.Context, upTo *time.Time) (*float64, error)
	// Span from the earliest start to the latest end of asleep samples inside the
	// night window of the day. Nil result means no sample
	MainSleepInterval(ctx context.Context, day time.Time) (*entity.SleepInterval, error)
}

type SampleStoreI interface {
	// Bulk inserts raw samples. Returns the number of stored samples
	AddSamples(ctx context.Context, samples []entity.HealthSample) (int64, error)
}
