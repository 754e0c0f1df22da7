package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	domainRepo "doctor-search/internal/domain/repository"
	"doctor-search/internal/infrastructure/httpclient"

	"github.com/sirupsen/logrus"
)

// DefaultMaxFeedSize bounds how much of the upstream body is accepted.
const DefaultMaxFeedSize = 16 << 20

var (
	ErrUnexpectedStatus = errors.New("unexpected feed status")
	ErrFeedTooLarge     = errors.New("doctor feed too large")
)

type doctorFeedRepository struct {
	client  *httpclient.Client
	url     string
	maxSize int64
	log     *logrus.Logger
}

func NewDoctorFeedRepository(client *httpclient.Client, url string, log *logrus.Logger) domainRepo.DoctorFeedRepository {
	return &doctorFeedRepository{
		client:  client,
		url:     url,
		maxSize: DefaultMaxFeedSize,
		log:     log,
	}
}

func (r *doctorFeedRepository) FetchFeed(ctx context.Context) ([]byte, error) {
	resp, err := r.client.Get(ctx, r.url)
	if err != nil {
		r.log.Warnf("Failed to fetch doctor feed: %+v", err)
		return nil, fmt.Errorf("fetch doctor feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		r.log.Warnf("Doctor feed returned status %d", resp.StatusCode)
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, r.maxSize+1))
	if err != nil {
		r.log.Warnf("Failed to read doctor feed: %+v", err)
		return nil, fmt.Errorf("read doctor feed: %w", err)
	}
	if int64(len(body)) > r.maxSize {
		r.log.Warnf("Doctor feed exceeds %d bytes", r.maxSize)
		return nil, fmt.Errorf("%w: over %d bytes", ErrFeedTooLarge, r.maxSize)
	}

	r.log.Debugf("Fetched doctor feed: %d bytes", len(body))
	return body, nil
}
