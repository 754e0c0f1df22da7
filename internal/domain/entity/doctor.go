package entity

type ConsultationMode string

const (
	ConsultationModeVideo    ConsultationMode = "Video Consult"
	ConsultationModeInClinic ConsultationMode = "In Clinic"
)

// IsValid reports whether m is one of the supported modes.
func (m ConsultationMode) IsValid() bool {
	return m == ConsultationModeVideo || m == ConsultationModeInClinic
}

// AllConsultationModes returns the supported modes in display order.
func AllConsultationModes() []ConsultationMode {
	return []ConsultationMode{ConsultationModeVideo, ConsultationModeInClinic}
}

type SortOption string

const (
	SortByFees       SortOption = "fees"
	SortByExperience SortOption = "experience"
)

func (s SortOption) IsValid() bool {
	return s == SortByFees || s == SortByExperience
}

const (
	ClinicAddressUnavailable = "Address not available"
	AvailabilityToday        = "Available Today"
)

// Rating is a doctor's score and review count. Available is false when the
// value is a stand-in for data the feed does not provide.
type Rating struct {
	Score     float64
	Reviews   int
	Available bool
}

// Doctor is the normalized view of a feed record used by filtering, sorting
// and responses.
type Doctor struct {
	ID                string
	Name              string
	Specialties       []string
	ExperienceYears   int
	Fee               int
	ClinicAddress     string
	ConsultationModes []ConsultationMode
	Rating            Rating
	Availability      string
	PhotoURL          string
	Languages         []string
}

// HasConsultationMode reports whether the doctor offers mode.
func (d Doctor) HasConsultationMode(mode ConsultationMode) bool {
	for _, m := range d.ConsultationModes {
		if m == mode {
			return true
		}
	}
	return false
}

// HasAnySpecialty reports whether at least one of the doctor's specialties is
// in wanted.
func (d Doctor) HasAnySpecialty(wanted map[string]struct{}) bool {
	for _, s := range d.Specialties {
		if _, ok := wanted[s]; ok {
			return true
		}
	}
	return false
}
