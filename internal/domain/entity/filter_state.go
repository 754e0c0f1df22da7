package entity

// FilterKind names one filter dimension.
type FilterKind string

const (
	FilterKindSearch           FilterKind = "search"
	FilterKindConsultationMode FilterKind = "consultationMode"
	FilterKindSpecialty        FilterKind = "specialty"
	FilterKindSort             FilterKind = "sort"
)

// FilterState is the current search selection. The schema tags define its
// query string form: empty dimensions are omitted and specialties repeat
// under one key.
type FilterState struct {
	SearchTerm       string           `schema:"search,omitempty" json:"search"`
	ConsultationMode ConsultationMode `schema:"consultationMode,omitempty" json:"consultation_mode"`
	Specialties      []string         `schema:"specialty,omitempty" json:"specialties"`
	SortOption       SortOption       `schema:"sort,omitempty" json:"sort"`
}

// HasActiveFilters reports whether any filter dimension is set. Sorting is not
// a filter.
func (s FilterState) HasActiveFilters() bool {
	return s.SearchTerm != "" || s.ConsultationMode != "" || len(s.Specialties) > 0
}

// IsEmpty reports whether every dimension, sort included, is unset.
func (s FilterState) IsEmpty() bool {
	return !s.HasActiveFilters() && s.SortOption == ""
}

// Clone returns a copy that shares no memory with s.
func (s FilterState) Clone() FilterState {
	clone := s
	if s.Specialties != nil {
		clone.Specialties = append([]string(nil), s.Specialties...)
	}
	return clone
}

// HasSpecialty reports whether name is selected.
func (s FilterState) HasSpecialty(name string) bool {
	for _, sp := range s.Specialties {
		if sp == name {
			return true
		}
	}
	return false
}
