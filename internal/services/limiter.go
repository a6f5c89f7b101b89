package services

import (
	"context"
	"log"
)

type limitedRoastService struct {
	inner RoastService
	slots chan struct{}
}

// NewLimitedRoastService caps how many roasts run at once. Callers beyond
// the cap wait for a slot until their context ends. A concurrency of zero
// or less returns inner unchanged.
func NewLimitedRoastService(inner RoastService, concurrency int) RoastService {
	if concurrency <= 0 {
		return inner
	}

	log.Printf("🚦 Roasts limited to %d at a time\n", concurrency)
	return &limitedRoastService{
		inner: inner,
		slots: make(chan struct{}, concurrency),
	}
}

// RequestRoast implements RoastService.
func (l *limitedRoastService) RequestRoast(ctx context.Context, file UploadedFile, intensity int) (*RoastOutcome, error) {
	select {
	case l.slots <- struct{}{}:
	case <-ctx.Done():
		log.Printf("⚠️  Gave up waiting for a roast slot: %v\n", ctx.Err())
		return nil, &RoastError{Kind: KindRequestTimeout, Err: ctx.Err()}
	}
	defer func() { <-l.slots }()

	return l.inner.RequestRoast(ctx, file, intensity)
}
