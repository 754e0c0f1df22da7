package converter

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"doctor-search/internal/delivery/dto"
	"doctor-search/internal/domain/entity"

	"github.com/goccy/go-json"
)

var experienceDigits = regexp.MustCompile(`\d+`)

// RawFeedToDoctors decodes and normalizes a feed document. A document that is
// not a JSON array yields an empty list; elements that are not objects are
// skipped.
func RawFeedToDoctors(data []byte, rater RatingSource) []entity.Doctor {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return []entity.Doctor{}
	}

	raws := make([]entity.RawDoctor, 0, len(items))
	for _, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '{' {
			continue
		}
		var raw entity.RawDoctor
		if err := json.Unmarshal(item, &raw); err != nil {
			continue
		}
		raws = append(raws, raw)
	}

	return RawDoctorsToDoctors(raws, rater)
}

// RawDoctorsToDoctors normalizes every record. It never fails: unparsable
// fields resolve to their defaults.
func RawDoctorsToDoctors(raws []entity.RawDoctor, rater RatingSource) []entity.Doctor {
	doctors := make([]entity.Doctor, len(raws))
	for i, raw := range raws {
		doctors[i] = RawDoctorToDoctor(raw, rater)
	}
	return doctors
}

func RawDoctorToDoctor(raw entity.RawDoctor, rater RatingSource) entity.Doctor {
	if rater == nil {
		rater = UnknownRatingSource{}
	}

	specialties := make([]string, len(raw.Specialities))
	for i, s := range raw.Specialities {
		specialties[i] = s.Name
	}

	languages := raw.Languages
	if languages == nil {
		languages = []string{}
	}

	return entity.Doctor{
		ID:                raw.ID,
		Name:              raw.Name,
		Specialties:       specialties,
		ExperienceYears:   ParseExperience(raw.Experience),
		Fee:               ParseFee(raw.Fees),
		ClinicAddress:     ResolveClinicAddress(raw.Clinic),
		ConsultationModes: resolveConsultationModes(raw),
		Rating:            rater.Rate(raw),
		Availability:      entity.AvailabilityToday,
		PhotoURL:          raw.Photo,
		Languages:         languages,
	}
}

// ParseFee keeps only the ASCII digits of s. No digits, or a value too large
// for an int, gives 0.
func ParseFee(s string) int {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)

	fee, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return fee
}

// ParseExperience returns the first run of digits in s, or 0.
func ParseExperience(s string) int {
	match := experienceDigits.FindString(s)
	if match == "" {
		return 0
	}

	years, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	return years
}

// ResolveClinicAddress picks, in order: the structured address, the flat
// address string, the clinic name, then the fixed fallback.
func ResolveClinicAddress(clinic *entity.RawClinic) string {
	if clinic == nil {
		return entity.ClinicAddressUnavailable
	}

	if clinic.HasStructuredAddress() {
		parts := make([]string, 0, 3)
		for _, p := range []string{clinic.AddressLine1, clinic.Locality, clinic.City} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		return strings.Join(parts, ", ")
	}

	if clinic.Address != "" {
		return clinic.Address
	}

	if clinic.Name != "" {
		return clinic.Name
	}

	return entity.ClinicAddressUnavailable
}

// resolveConsultationModes uses the feed's explicit flags when it has any and
// otherwise assumes both modes are offered.
func resolveConsultationModes(raw entity.RawDoctor) []entity.ConsultationMode {
	if raw.VideoConsult == nil && raw.InClinic == nil {
		return entity.AllConsultationModes()
	}

	modes := make([]entity.ConsultationMode, 0, 2)
	if raw.VideoConsult != nil && *raw.VideoConsult {
		modes = append(modes, entity.ConsultationModeVideo)
	}
	if raw.InClinic != nil && *raw.InClinic {
		modes = append(modes, entity.ConsultationModeInClinic)
	}
	return modes
}

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor entity.Doctor) dto.DoctorResponse {
	modes := make([]string, len(doctor.ConsultationModes))
	for i, m := range doctor.ConsultationModes {
		modes[i] = string(m)
	}

	return dto.DoctorResponse{
		ID:                doctor.ID,
		Name:              doctor.Name,
		Specialties:       doctor.Specialties,
		ExperienceYears:   doctor.ExperienceYears,
		Fee:               doctor.Fee,
		ClinicAddress:     doctor.ClinicAddress,
		ConsultationModes: modes,
		Rating:            doctor.Rating.Score,
		Reviews:           doctor.Rating.Reviews,
		RatingAvailable:   doctor.Rating.Available,
		Availability:      doctor.Availability,
		PhotoURL:          doctor.PhotoURL,
		Languages:         doctor.Languages,
	}
}

// DoctorsToResponses converts a slice of Doctor entities to slice of DoctorResponse DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i, doctor := range doctors {
		responses[i] = DoctorToResponse(doctor)
	}
	return responses
}
