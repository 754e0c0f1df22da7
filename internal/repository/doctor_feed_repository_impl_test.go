package repository

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	domainRepo "doctor-search/internal/domain/repository"
	"doctor-search/internal/infrastructure/httpclient"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFeed = `[{"id":"1","name":"Dr. Anita","fees":"₹ 500","experience":"10 Years","specialities":[{"name":"Dentist"}]}]`

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

type stubFeedRepository struct {
	body  []byte
	err   error
	calls atomic.Int32
}

func (s *stubFeedRepository) FetchFeed(ctx context.Context) ([]byte, error) {
	s.calls.Add(1)
	return s.body, s.err
}

func TestDoctorFeedRepository_FetchFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(testFeed))
	}))
	defer server.Close()

	repo := NewDoctorFeedRepository(httpclient.NewClient(time.Second), server.URL, newTestLogger())
	body, err := repo.FetchFeed(context.Background())

	require.NoError(t, err)
	assert.JSONEq(t, testFeed, string(body))
}

func TestDoctorFeedRepository_FetchFeedBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	repo := NewDoctorFeedRepository(httpclient.NewClient(time.Second), server.URL, newTestLogger())
	_, err := repo.FetchFeed(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnexpectedStatus))
}

func TestDoctorFeedRepository_FetchFeedSizeLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testFeed))
	}))
	defer server.Close()

	size := int64(len(testFeed))
	tests := []struct {
		name    string
		maxSize int64
		wantErr bool
	}{
		{"exactly at limit", size, false},
		{"one byte over", size - 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewDoctorFeedRepository(httpclient.NewClient(time.Second), server.URL, newTestLogger())
			repo.(*doctorFeedRepository).maxSize = tt.maxSize

			body, err := repo.FetchFeed(context.Background())

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrFeedTooLarge)
				assert.Nil(t, body)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testFeed, string(body))
		})
	}
}

func TestDoctorFeedRepository_FetchFeedUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	repo := NewDoctorFeedRepository(httpclient.NewClient(time.Second), url, newTestLogger())
	_, err := repo.FetchFeed(context.Background())

	assert.Error(t, err)
}

func TestCachedDoctorFeedRepository_MissThenHit(t *testing.T) {
	mr, client := setupRedis(t)
	upstream := &stubFeedRepository{body: []byte(testFeed)}
	repo := NewCachedDoctorFeedRepository(upstream, client, time.Minute, newTestLogger())

	body, err := repo.FetchFeed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testFeed, string(body))
	assert.True(t, mr.Exists(FeedCacheKey))

	body, err = repo.FetchFeed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testFeed, string(body))
	assert.Equal(t, int32(1), upstream.calls.Load())
}

func TestCachedDoctorFeedRepository_TTLExpiry(t *testing.T) {
	mr, client := setupRedis(t)
	upstream := &stubFeedRepository{body: []byte(testFeed)}
	repo := NewCachedDoctorFeedRepository(upstream, client, time.Minute, newTestLogger())

	_, err := repo.FetchFeed(context.Background())
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = repo.FetchFeed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), upstream.calls.Load())
}

func TestCachedDoctorFeedRepository_UpstreamErrorNotCached(t *testing.T) {
	mr, client := setupRedis(t)
	upstream := &stubFeedRepository{err: errors.New("boom")}
	repo := NewCachedDoctorFeedRepository(upstream, client, time.Minute, newTestLogger())

	_, err := repo.FetchFeed(context.Background())
	assert.Error(t, err)
	assert.False(t, mr.Exists(FeedCacheKey))
}

func TestCachedDoctorFeedRepository_RedisDownFallsThrough(t *testing.T) {
	mr, client := setupRedis(t)
	mr.Close()

	upstream := &stubFeedRepository{body: []byte(testFeed)}
	repo := NewCachedDoctorFeedRepository(upstream, client, time.Minute, newTestLogger())

	body, err := repo.FetchFeed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testFeed, string(body))
}

func TestCachedDoctorFeedRepository_Invalidate(t *testing.T) {
	mr, client := setupRedis(t)
	upstream := &stubFeedRepository{body: []byte(testFeed)}
	repo := NewCachedDoctorFeedRepository(upstream, client, time.Minute, newTestLogger())

	_, err := repo.FetchFeed(context.Background())
	require.NoError(t, err)

	invalidator, ok := repo.(domainRepo.FeedCacheInvalidator)
	require.True(t, ok)
	require.NoError(t, invalidator.Invalidate(context.Background()))
	assert.False(t, mr.Exists(FeedCacheKey))
}
