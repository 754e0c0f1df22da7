package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"doctor-search/internal/converter"
	"doctor-search/internal/delivery/dto"
	"doctor-search/internal/usecase"
	"doctor-search/pkg/validator"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestFeed = `[
	{"id": "1", "name": "Anita", "fees": "₹ 100", "experience": "5 Years", "specialities": [{"name": "Dentist"}]},
	{"id": "2", "name": "Sanjay", "fees": "₹ 500", "experience": "12 Years", "specialities": [{"name": "Cardiologist"}]},
	{"id": "3", "name": "Ravi", "fees": "₹ 300", "experience": "8 Years", "specialities": [{"name": "ENT"}]}
]`

type stubFeedRepository struct {
	body []byte
	err  error
}

func (s *stubFeedRepository) FetchFeed(ctx context.Context) ([]byte, error) {
	return s.body, s.err
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
	Meta    *struct {
		Total int `json:"total"`
	} `json:"meta"`
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestHandlers(repo *stubFeedRepository) (*DoctorHandler, *FilterHandler) {
	log := newTestLogger()
	searchUsecase := usecase.NewDoctorSearchUsecase(log, repo, converter.UnknownRatingSource{})
	return NewDoctorHandler(log, searchUsecase), NewFilterHandler(log, searchUsecase, validator.NewValidator())
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestDoctorHandler_SearchDoctors(t *testing.T) {
	doctorHandler, _ := newTestHandlers(&stubFeedRepository{body: []byte(handlerTestFeed)})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/doctors?search=an&sort=fees", nil)
	rec := httptest.NewRecorder()
	doctorHandler.SearchDoctors(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)

	var result dto.DoctorSearchResponse
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.Len(t, result.Doctors, 2)
	assert.Equal(t, "Anita", result.Doctors[0].Name)
	assert.Equal(t, "Sanjay", result.Doctors[1].Name)
	assert.Equal(t, "search=an&sort=fees", result.Filters.Query)
	assert.False(t, result.Doctors[0].RatingAvailable)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 2, env.Meta.Total)
}

func TestDoctorHandler_SearchDoctorsMalformedQueryKeepsValidPairs(t *testing.T) {
	doctorHandler, _ := newTestHandlers(&stubFeedRepository{body: []byte(handlerTestFeed)})

	tests := []struct {
		name     string
		rawQuery string
		wantSort string
	}{
		{"semicolon separator", "search=a;b&sort=fees", "fees"},
		{"bad escape", "search=%zz&sort=fees", "fees"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/doctors", nil)
			req.URL.RawQuery = tt.rawQuery
			rec := httptest.NewRecorder()
			doctorHandler.SearchDoctors(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			var result dto.DoctorSearchResponse
			require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &result))
			assert.Empty(t, result.Filters.Search)
			assert.Equal(t, tt.wantSort, result.Filters.Sort)
			require.Len(t, result.Doctors, 3)
			assert.Equal(t, 100, result.Doctors[0].Fee)
		})
	}
}

func TestDoctorHandler_SearchDoctorsMalformedQueryAppliesMode(t *testing.T) {
	doctorHandler, _ := newTestHandlers(&stubFeedRepository{body: []byte(`[
		{"id": "1", "name": "Anita", "video_consult": true, "in_clinic": false},
		{"id": "2", "name": "Sanjay", "video_consult": false, "in_clinic": true}
	]`)})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/doctors", nil)
	req.URL.RawQuery = "search=a;b&consultationMode=Video+Consult"
	rec := httptest.NewRecorder()
	doctorHandler.SearchDoctors(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var result dto.DoctorSearchResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &result))
	assert.Equal(t, "Video Consult", result.Filters.ConsultationMode)
	require.Len(t, result.Doctors, 1)
	assert.Equal(t, "Anita", result.Doctors[0].Name)
}

func TestDoctorHandler_FeedUnavailable(t *testing.T) {
	doctorHandler, _ := newTestHandlers(&stubFeedRepository{err: errors.New("dial tcp: connection refused")})

	for _, call := range []http.HandlerFunc{doctorHandler.SearchDoctors, doctorHandler.GetSpecialties, doctorHandler.GetSuggestions} {
		rec := httptest.NewRecorder()
		call(rec, httptest.NewRequest(http.MethodGet, "/api/v1/doctors", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.False(t, env.Success)
		assert.Equal(t, FeedUnavailableMessage, env.Message)
	}

	rec := httptest.NewRecorder()
	doctorHandler.RefreshDoctors(rec, httptest.NewRequest(http.MethodPost, "/api/v1/doctors/refresh", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var status dto.FeedStatusResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Error, &status))
	assert.Equal(t, "failed", status.State)
}

func TestDoctorHandler_SuggestionsAndSpecialties(t *testing.T) {
	doctorHandler, _ := newTestHandlers(&stubFeedRepository{body: []byte(handlerTestFeed)})

	rec := httptest.NewRecorder()
	doctorHandler.GetSuggestions(rec, httptest.NewRequest(http.MethodGet, "/api/v1/doctors/suggestions?search=RA", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var suggestions dto.SuggestionListResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &suggestions))
	require.Len(t, suggestions.Suggestions, 1)
	assert.Equal(t, "Ravi", suggestions.Suggestions[0].Name)

	rec = httptest.NewRecorder()
	doctorHandler.GetSpecialties(rec, httptest.NewRequest(http.MethodGet, "/api/v1/doctors/specialties", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var specialties dto.SpecialtyListResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &specialties))
	assert.Equal(t, []string{"Cardiologist", "Dentist", "ENT"}, specialties.Specialties)
}

func TestFilterHandler_ApplyAction(t *testing.T) {
	_, filterHandler := newTestHandlers(&stubFeedRepository{body: []byte(handlerTestFeed)})

	body := `{"query": "specialty=Dentist&specialty=ENT", "action": "reset", "kind": "specialty", "value": "Dentist"}`
	rec := httptest.NewRecorder()
	filterHandler.ApplyAction(rec, httptest.NewRequest(http.MethodPost, "/api/v1/filters/actions", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	var result dto.DoctorSearchResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &result))
	assert.Equal(t, "specialty=ENT", result.Filters.Query)
	require.Len(t, result.Doctors, 1)
	assert.Equal(t, "Ravi", result.Doctors[0].Name)
}

func TestFilterHandler_ApplyActionRejectsBadRequests(t *testing.T) {
	_, filterHandler := newTestHandlers(&stubFeedRepository{body: []byte(handlerTestFeed)})

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"not json", `{`, ""},
		{"missing action", `{"query": ""}`, "action"},
		{"unknown action", `{"action": "explode"}`, "action"},
		{"reset without kind", `{"action": "reset"}`, "kind"},
		{"reset unknown kind", `{"action": "reset", "kind": "rating"}`, "kind"},
		{"invalid mode", `{"action": "set_consultation_mode", "value": "Home Visit"}`, ""},
		{"invalid sort", `{"action": "set_sort", "value": "rating"}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			filterHandler.ApplyAction(rec, httptest.NewRequest(http.MethodPost, "/api/v1/filters/actions", strings.NewReader(tt.body)))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			env := decodeEnvelope(t, rec)
			assert.False(t, env.Success)
			if tt.field != "" {
				var fields map[string]string
				require.NoError(t, json.Unmarshal(env.Error, &fields))
				assert.Contains(t, fields, tt.field)
			}
		})
	}
}
