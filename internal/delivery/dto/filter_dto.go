package dto

const (
	FilterActionSetSearch           = "set_search"
	FilterActionSetConsultationMode = "set_consultation_mode"
	FilterActionSetSpecialties      = "set_specialties"
	FilterActionSetSort             = "set_sort"
	FilterActionReset               = "reset"
	FilterActionClearAll            = "clear_all"
)

// Request DTOs

// FilterActionRequest applies one filter-state mutation to the state encoded
// in Query and returns the resulting state.
type FilterActionRequest struct {
	Query       string   `json:"query" validate:"omitempty,max=4096"`
	Action      string   `json:"action" validate:"required,oneof=set_search set_consultation_mode set_specialties set_sort reset clear_all"`
	Kind        string   `json:"kind" validate:"required_if=Action reset,omitempty,oneof=search consultationMode specialty sort"`
	Value       string   `json:"value" validate:"omitempty,max=256"`
	Specialties []string `json:"specialties" validate:"omitempty,dive,max=256"`
}

// Response DTOs

type ActiveFilterResponse struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
	Label string `json:"label"`
}

type FilterStateResponse struct {
	Search           string                 `json:"search"`
	ConsultationMode string                 `json:"consultation_mode"`
	Specialties      []string               `json:"specialties"`
	Sort             string                 `json:"sort"`
	Query            string                 `json:"query"`
	HasActiveFilters bool                   `json:"has_active_filters"`
	ActiveFilters    []ActiveFilterResponse `json:"active_filters"`
}
