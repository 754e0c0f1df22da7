package dto

// Response DTOs

type DoctorResponse struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Specialties       []string `json:"specialties"`
	ExperienceYears   int      `json:"experience_years"`
	Fee               int      `json:"fee"`
	ClinicAddress     string   `json:"clinic_address"`
	ConsultationModes []string `json:"consultation_modes"`
	Rating            float64  `json:"rating"`
	Reviews           int      `json:"reviews"`
	RatingAvailable   bool     `json:"rating_available"`
	Availability      string   `json:"availability"`
	PhotoURL          string   `json:"photo_url,omitempty"`
	Languages         []string `json:"languages,omitempty"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}

// DoctorSearchResponse is one evaluation of the pipeline for a filter state.
type DoctorSearchResponse struct {
	Doctors []DoctorResponse    `json:"doctors"`
	Total   int                 `json:"total"`
	Filters FilterStateResponse `json:"filters"`
}

type SuggestionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type SuggestionListResponse struct {
	Suggestions []SuggestionResponse `json:"suggestions"`
}

type SpecialtyListResponse struct {
	Specialties []string `json:"specialties"`
	Total       int      `json:"total"`
}

type FeedStatusResponse struct {
	State       string `json:"state"`
	DoctorCount int    `json:"doctor_count"`
	LastError   string `json:"last_error,omitempty"`
	FetchedAt   string `json:"fetched_at,omitempty"`
}
