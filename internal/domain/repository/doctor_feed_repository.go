package repository

import "context"

// DoctorFeedRepository fetches the raw doctor feed document. The body is
// returned undecoded; shaping it is the converter's job.
type DoctorFeedRepository interface {
	FetchFeed(ctx context.Context) ([]byte, error)
}

// FeedCacheInvalidator is implemented by feed repositories that cache the
// document and can drop it on a manual refresh.
type FeedCacheInvalidator interface {
	Invalidate(ctx context.Context) error
}
