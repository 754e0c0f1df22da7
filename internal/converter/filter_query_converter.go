package converter

import (
	"net/url"
	"strings"

	"doctor-search/internal/delivery/dto"
	"doctor-search/internal/domain/entity"

	"github.com/gorilla/schema"
)

// singleValueKeys are read like URLSearchParams.get: the first value wins.
var singleValueKeys = []string{"search", "consultationMode", "sort"}

func newQueryDecoder() *schema.Decoder {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	return decoder
}

// FilterStateToValues encodes state as query parameters. Empty dimensions are
// left out entirely.
func FilterStateToValues(state entity.FilterState) url.Values {
	values := url.Values{}
	state = NormalizeFilterState(state)
	if err := schema.NewEncoder().Encode(state, values); err != nil {
		// Every FilterState field is string-backed; the encoder cannot fail.
		return url.Values{}
	}
	return values
}

// FilterStateToQuery returns the encoded query without a leading "?".
func FilterStateToQuery(state entity.FilterState) string {
	return FilterStateToValues(state).Encode()
}

// FilterStateFromValues decodes query parameters into a normalized state.
// Unknown parameters are ignored.
func FilterStateFromValues(values url.Values) (entity.FilterState, error) {
	trimmed := make(url.Values, len(values))
	for k, v := range values {
		trimmed[k] = v
	}
	for _, key := range singleValueKeys {
		if v := trimmed[key]; len(v) > 1 {
			trimmed[key] = v[:1]
		}
	}

	var state entity.FilterState
	if err := newQueryDecoder().Decode(&state, trimmed); err != nil {
		return entity.FilterState{}, err
	}
	return NormalizeFilterState(state), nil
}

// FilterStateFromQuery parses a raw query string, with or without a leading
// "?". Malformed pairs are dropped; the returned error reports the first one
// alongside the state decoded from the rest.
func FilterStateFromQuery(raw string) (entity.FilterState, error) {
	values, parseErr := url.ParseQuery(strings.TrimPrefix(raw, "?"))

	state, err := FilterStateFromValues(values)
	if err != nil {
		return state, err
	}
	return state, parseErr
}

// NormalizeFilterState drops values that cannot filter anything: unknown
// consultation modes and sort options, blank and repeated specialties.
func NormalizeFilterState(state entity.FilterState) entity.FilterState {
	normalized := entity.FilterState{
		SearchTerm: state.SearchTerm,
	}

	if state.ConsultationMode.IsValid() {
		normalized.ConsultationMode = state.ConsultationMode
	}
	if state.SortOption.IsValid() {
		normalized.SortOption = state.SortOption
	}

	if len(state.Specialties) > 0 {
		seen := make(map[string]struct{}, len(state.Specialties))
		for _, s := range state.Specialties {
			if s == "" {
				continue
			}
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			normalized.Specialties = append(normalized.Specialties, s)
		}
	}

	return normalized
}

// FilterStateToResponse converts a FilterState to its response DTO, including
// the removable chips for each active filter.
func FilterStateToResponse(state entity.FilterState) dto.FilterStateResponse {
	specialties := state.Specialties
	if specialties == nil {
		specialties = []string{}
	}

	active := make([]dto.ActiveFilterResponse, 0, len(specialties)+2)
	if state.SearchTerm != "" {
		active = append(active, dto.ActiveFilterResponse{
			Kind:  string(entity.FilterKindSearch),
			Value: state.SearchTerm,
			Label: "Search: " + state.SearchTerm,
		})
	}
	if state.ConsultationMode != "" {
		active = append(active, dto.ActiveFilterResponse{
			Kind:  string(entity.FilterKindConsultationMode),
			Value: string(state.ConsultationMode),
			Label: string(state.ConsultationMode),
		})
	}
	for _, s := range specialties {
		active = append(active, dto.ActiveFilterResponse{
			Kind:  string(entity.FilterKindSpecialty),
			Value: s,
			Label: s,
		})
	}

	return dto.FilterStateResponse{
		Search:           state.SearchTerm,
		ConsultationMode: string(state.ConsultationMode),
		Specialties:      specialties,
		Sort:             string(state.SortOption),
		Query:            FilterStateToQuery(state),
		HasActiveFilters: state.HasActiveFilters(),
		ActiveFilters:    active,
	}
}
