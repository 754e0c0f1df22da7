package service

import (
	"cmp"
	"slices"
	"sort"
	"strings"

	"doctor-search/internal/domain/entity"
)

const DefaultSuggestionLimit = 3

// FilterDoctors runs the filter and sort stages over doctors and returns a new
// slice; doctors is never modified. Stages run in order: name search
// (case-insensitive substring), consultation mode, specialty (a doctor
// matches if it has any selected specialty), then a stable sort. An unset or
// unrecognized mode or sort option skips that stage.
func FilterDoctors(
	doctors []entity.Doctor,
	searchTerm string,
	mode entity.ConsultationMode,
	specialties []string,
	sortOption entity.SortOption,
) []entity.Doctor {
	if len(doctors) == 0 {
		return []entity.Doctor{}
	}

	filtered := make([]entity.Doctor, 0, len(doctors))
	needle := strings.ToLower(searchTerm)

	var wanted map[string]struct{}
	if len(specialties) > 0 {
		wanted = make(map[string]struct{}, len(specialties))
		for _, s := range specialties {
			wanted[s] = struct{}{}
		}
	}

	for _, doctor := range doctors {
		if needle != "" && !strings.Contains(strings.ToLower(doctor.Name), needle) {
			continue
		}
		if mode.IsValid() && !doctor.HasConsultationMode(mode) {
			continue
		}
		if wanted != nil && !doctor.HasAnySpecialty(wanted) {
			continue
		}
		filtered = append(filtered, doctor)
	}

	switch sortOption {
	case entity.SortByFees:
		slices.SortStableFunc(filtered, func(a, b entity.Doctor) int {
			return cmp.Compare(a.Fee, b.Fee)
		})
	case entity.SortByExperience:
		slices.SortStableFunc(filtered, func(a, b entity.Doctor) int {
			return cmp.Compare(b.ExperienceYears, a.ExperienceYears)
		})
	}

	return filtered
}

// FilterDoctorsByState is FilterDoctors parameterized by a FilterState.
func FilterDoctorsByState(doctors []entity.Doctor, state entity.FilterState) []entity.Doctor {
	return FilterDoctors(doctors, state.SearchTerm, state.ConsultationMode, state.Specialties, state.SortOption)
}

// UniqueSpecialties lists every specialty offered by any doctor, sorted.
func UniqueSpecialties(doctors []entity.Doctor) []string {
	seen := make(map[string]struct{})
	for _, doctor := range doctors {
		for _, s := range doctor.Specialties {
			seen[s] = struct{}{}
		}
	}

	specialties := make([]string, 0, len(seen))
	for s := range seen {
		specialties = append(specialties, s)
	}
	sort.Strings(specialties)
	return specialties
}

// SuggestDoctors returns up to limit doctors, in feed order, whose name
// contains term. A blank term suggests nothing.
func SuggestDoctors(doctors []entity.Doctor, term string, limit int) []entity.Doctor {
	if strings.TrimSpace(term) == "" || limit <= 0 {
		return []entity.Doctor{}
	}

	needle := strings.ToLower(term)
	suggestions := make([]entity.Doctor, 0, limit)
	for _, doctor := range doctors {
		if !strings.Contains(strings.ToLower(doctor.Name), needle) {
			continue
		}
		suggestions = append(suggestions, doctor)
		if len(suggestions) == limit {
			break
		}
	}
	return suggestions
}
