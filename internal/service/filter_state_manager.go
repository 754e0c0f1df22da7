package service

import (
	"errors"

	"doctor-search/internal/converter"
	"doctor-search/internal/domain/entity"
)

var ErrUnknownFilterKind = errors.New("unknown filter kind")

// FilterStateListener is called after every mutation with the new state and
// its query string.
type FilterStateListener func(state entity.FilterState, query string)

// FilterStateManager owns one FilterState and is the only way to change it.
// It is not safe for concurrent use; each request or page session gets its
// own manager.
type FilterStateManager struct {
	state     entity.FilterState
	listeners []FilterStateListener
}

func NewFilterStateManager(initial entity.FilterState, listeners ...FilterStateListener) *FilterStateManager {
	return &FilterStateManager{
		state:     converter.NormalizeFilterState(initial.Clone()),
		listeners: listeners,
	}
}

// NewFilterStateManagerFromQuery starts from a URL query string. A malformed
// query still yields a manager built from whatever could be decoded.
func NewFilterStateManagerFromQuery(query string, listeners ...FilterStateListener) (*FilterStateManager, error) {
	state, err := converter.FilterStateFromQuery(query)
	return NewFilterStateManager(state, listeners...), err
}

// Subscribe registers a listener for future mutations.
func (m *FilterStateManager) Subscribe(listener FilterStateListener) {
	m.listeners = append(m.listeners, listener)
}

// State returns a copy of the current state.
func (m *FilterStateManager) State() entity.FilterState {
	return m.state.Clone()
}

func (m *FilterStateManager) SetSearchTerm(text string) {
	m.state.SearchTerm = text
	m.changed()
}

// SetConsultationMode selects mode; an empty or unrecognized mode clears it.
func (m *FilterStateManager) SetConsultationMode(mode entity.ConsultationMode) {
	if !mode.IsValid() {
		mode = ""
	}
	m.state.ConsultationMode = mode
	m.changed()
}

// SetSpecialties replaces the whole selection.
func (m *FilterStateManager) SetSpecialties(specialties []string) {
	m.state.Specialties = converter.NormalizeFilterState(entity.FilterState{Specialties: specialties}).Specialties
	m.changed()
}

// SetSortOption selects option; an empty or unrecognized option clears it.
func (m *FilterStateManager) SetSortOption(option entity.SortOption) {
	if !option.IsValid() {
		option = ""
	}
	m.state.SortOption = option
	m.changed()
}

// ResetFilter clears one dimension. For specialties only value is removed and
// an empty value changes nothing.
func (m *FilterStateManager) ResetFilter(kind entity.FilterKind, value string) error {
	switch kind {
	case entity.FilterKindSearch:
		m.state.SearchTerm = ""
	case entity.FilterKindConsultationMode:
		m.state.ConsultationMode = ""
	case entity.FilterKindSpecialty:
		if value == "" {
			return nil
		}
		remaining := make([]string, 0, len(m.state.Specialties))
		for _, s := range m.state.Specialties {
			if s != value {
				remaining = append(remaining, s)
			}
		}
		if len(remaining) == 0 {
			remaining = nil
		}
		m.state.Specialties = remaining
	case entity.FilterKindSort:
		m.state.SortOption = ""
	default:
		return ErrUnknownFilterKind
	}

	m.changed()
	return nil
}

// ClearAll resets every dimension in a single update.
func (m *FilterStateManager) ClearAll() {
	m.state = entity.FilterState{}
	m.changed()
}

// SerializeToQuery encodes the current state, without a leading "?".
func (m *FilterStateManager) SerializeToQuery() string {
	return converter.FilterStateToQuery(m.state)
}

// HasActiveFilters reports whether search, mode or specialty is set.
func (m *FilterStateManager) HasActiveFilters() bool {
	return m.state.HasActiveFilters()
}

func (m *FilterStateManager) changed() {
	if len(m.listeners) == 0 {
		return
	}

	query := m.SerializeToQuery()
	for _, listener := range m.listeners {
		listener(m.state.Clone(), query)
	}
}
