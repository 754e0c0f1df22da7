package entity

import "time"

type FeedState string

const (
	FeedStateIdle    FeedState = "idle"
	FeedStateLoading FeedState = "loading"
	FeedStateReady   FeedState = "ready"
	FeedStateFailed  FeedState = "failed"
)

// FeedStatus describes the last fetch of the doctor feed.
type FeedStatus struct {
	State       FeedState
	DoctorCount int
	LastError   string
	FetchedAt   time.Time
}
