package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"doctor-search/internal/converter"
	"doctor-search/internal/delivery/dto"
	"doctor-search/internal/domain/entity"
	"doctor-search/internal/domain/repository"
	"doctor-search/internal/infrastructure/metrics"
	"doctor-search/internal/service"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

var (
	ErrFeedUnavailable     = errors.New("doctor feed unavailable")
	ErrInvalidFilterAction = errors.New("invalid filter action")
	ErrInvalidFilterValue  = errors.New("invalid filter value")
)

const feedFetchKey = "doctor-feed"

type DoctorSearchUsecase interface {
	LoadDoctors(ctx context.Context) ([]entity.Doctor, error)
	RefreshDoctors(ctx context.Context) (*dto.FeedStatusResponse, error)
	SearchDoctors(ctx context.Context, state entity.FilterState) (*dto.DoctorSearchResponse, error)
	ApplyFilterAction(ctx context.Context, req *dto.FilterActionRequest) (*dto.DoctorSearchResponse, error)
	GetSuggestions(ctx context.Context, term string) (*dto.SuggestionListResponse, error)
	GetSpecialties(ctx context.Context) (*dto.SpecialtyListResponse, error)
	GetFeedStatus(ctx context.Context) *dto.FeedStatusResponse
}

// doctorSearchUsecase fetches the feed once and keeps the normalized doctors
// in memory. A failed fetch stays failed until RefreshDoctors is called.
type doctorSearchUsecase struct {
	log      *logrus.Logger
	feedRepo repository.DoctorFeedRepository
	rater    converter.RatingSource

	fetchGroup singleflight.Group

	mu      sync.RWMutex
	doctors []entity.Doctor
	status  entity.FeedStatus
}

func NewDoctorSearchUsecase(
	log *logrus.Logger,
	feedRepo repository.DoctorFeedRepository,
	rater converter.RatingSource,
) DoctorSearchUsecase {
	return &doctorSearchUsecase{
		log:      log,
		feedRepo: feedRepo,
		rater:    rater,
		status:   entity.FeedStatus{State: entity.FeedStateIdle},
	}
}

func (u *doctorSearchUsecase) LoadDoctors(ctx context.Context) ([]entity.Doctor, error) {
	u.mu.RLock()
	state, doctors, lastError := u.status.State, u.doctors, u.status.LastError
	u.mu.RUnlock()

	switch state {
	case entity.FeedStateReady:
		return doctors, nil
	case entity.FeedStateFailed:
		return nil, fmt.Errorf("%w: %s", ErrFeedUnavailable, lastError)
	}

	return u.fetch(ctx)
}

func (u *doctorSearchUsecase) RefreshDoctors(ctx context.Context) (*dto.FeedStatusResponse, error) {
	if invalidator, ok := u.feedRepo.(repository.FeedCacheInvalidator); ok {
		if err := invalidator.Invalidate(ctx); err != nil {
			u.log.Warnf("Failed to invalidate doctor feed cache: %+v", err)
		}
	}

	if _, err := u.fetch(ctx); err != nil {
		return u.GetFeedStatus(ctx), err
	}
	return u.GetFeedStatus(ctx), nil
}

// fetch runs at most one upstream request at a time; concurrent callers share
// its result. The request is detached from the caller's cancellation so one
// client going away does not fail the others.
func (u *doctorSearchUsecase) fetch(ctx context.Context) ([]entity.Doctor, error) {
	result, err, _ := u.fetchGroup.Do(feedFetchKey, func() (interface{}, error) {
		u.mu.Lock()
		u.status.State = entity.FeedStateLoading
		u.mu.Unlock()

		body, err := u.feedRepo.FetchFeed(context.WithoutCancel(ctx))
		if err != nil {
			metrics.FeedFetchTotal.WithLabelValues(metrics.OutcomeFailure).Inc()
			u.log.Warnf("Failed to load doctor feed: %+v", err)

			u.mu.Lock()
			u.doctors = nil
			u.status = entity.FeedStatus{State: entity.FeedStateFailed, LastError: err.Error()}
			u.mu.Unlock()
			return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
		}

		doctors := converter.RawFeedToDoctors(body, u.rater)
		metrics.FeedFetchTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
		metrics.FeedDoctors.Set(float64(len(doctors)))
		u.log.Infof("Doctor feed loaded: %d doctors", len(doctors))

		u.mu.Lock()
		u.doctors = doctors
		u.status = entity.FeedStatus{
			State:       entity.FeedStateReady,
			DoctorCount: len(doctors),
			FetchedAt:   time.Now().UTC(),
		}
		u.mu.Unlock()
		return doctors, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]entity.Doctor), nil
}

func (u *doctorSearchUsecase) SearchDoctors(ctx context.Context, state entity.FilterState) (*dto.DoctorSearchResponse, error) {
	doctors, err := u.LoadDoctors(ctx)
	if err != nil {
		return nil, err
	}

	state = converter.NormalizeFilterState(state)
	filtered := service.FilterDoctorsByState(doctors, state)

	metrics.SearchTotal.WithLabelValues(strconv.FormatBool(state.HasActiveFilters())).Inc()
	metrics.SearchResults.Observe(float64(len(filtered)))

	return &dto.DoctorSearchResponse{
		Doctors: converter.DoctorsToResponses(filtered),
		Total:   len(filtered),
		Filters: converter.FilterStateToResponse(state),
	}, nil
}

func (u *doctorSearchUsecase) ApplyFilterAction(ctx context.Context, req *dto.FilterActionRequest) (*dto.DoctorSearchResponse, error) {
	manager, err := service.NewFilterStateManagerFromQuery(req.Query)
	if err != nil {
		u.log.Warnf("Ignoring malformed filter query %q: %+v", req.Query, err)
	}

	latest := manager.State()
	manager.Subscribe(func(state entity.FilterState, query string) {
		latest = state
		u.log.Debugf("Filter state changed: %q", query)
	})

	switch req.Action {
	case dto.FilterActionSetSearch:
		manager.SetSearchTerm(req.Value)
	case dto.FilterActionSetConsultationMode:
		mode := entity.ConsultationMode(req.Value)
		if mode != "" && !mode.IsValid() {
			return nil, ErrInvalidFilterValue
		}
		manager.SetConsultationMode(mode)
	case dto.FilterActionSetSpecialties:
		manager.SetSpecialties(req.Specialties)
	case dto.FilterActionSetSort:
		option := entity.SortOption(req.Value)
		if option != "" && !option.IsValid() {
			return nil, ErrInvalidFilterValue
		}
		manager.SetSortOption(option)
	case dto.FilterActionReset:
		if err := manager.ResetFilter(entity.FilterKind(req.Kind), req.Value); err != nil {
			return nil, err
		}
	case dto.FilterActionClearAll:
		manager.ClearAll()
	default:
		return nil, ErrInvalidFilterAction
	}

	return u.SearchDoctors(ctx, latest)
}

func (u *doctorSearchUsecase) GetSuggestions(ctx context.Context, term string) (*dto.SuggestionListResponse, error) {
	doctors, err := u.LoadDoctors(ctx)
	if err != nil {
		return nil, err
	}

	matches := service.SuggestDoctors(doctors, term, service.DefaultSuggestionLimit)
	suggestions := make([]dto.SuggestionResponse, len(matches))
	for i, doctor := range matches {
		suggestions[i] = dto.SuggestionResponse{ID: doctor.ID, Name: doctor.Name}
	}

	return &dto.SuggestionListResponse{Suggestions: suggestions}, nil
}

func (u *doctorSearchUsecase) GetSpecialties(ctx context.Context) (*dto.SpecialtyListResponse, error) {
	doctors, err := u.LoadDoctors(ctx)
	if err != nil {
		return nil, err
	}

	specialties := service.UniqueSpecialties(doctors)
	return &dto.SpecialtyListResponse{
		Specialties: specialties,
		Total:       len(specialties),
	}, nil
}

func (u *doctorSearchUsecase) GetFeedStatus(ctx context.Context) *dto.FeedStatusResponse {
	u.mu.RLock()
	status := u.status
	u.mu.RUnlock()

	resp := &dto.FeedStatusResponse{
		State:       string(status.State),
		DoctorCount: status.DoctorCount,
		LastError:   status.LastError,
	}
	if !status.FetchedAt.IsZero() {
		resp.FetchedAt = status.FetchedAt.Format(time.RFC3339)
	}
	return resp
}
