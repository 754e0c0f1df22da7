package entity

import (
	"bytes"
	"strings"

	"github.com/goccy/go-json"
)

// RawDoctor is a record as published by the upstream feed. The feed is not
// under our control, so decoding never fails on a field of the wrong type:
// such fields are left at their zero value.
type RawDoctor struct {
	ID           string
	Name         string
	Specialities []RawSpecialty
	Fees         string
	Experience   string
	Clinic       *RawClinic
	Photo        string
	Languages    []string
	VideoConsult *bool
	InClinic     *bool
}

type RawSpecialty struct {
	Name string
}

// RawClinic holds whichever address shape the feed used. Structured fields may
// come directly on the clinic or nested in an "address" object; Address is
// only set when "address" was a plain string.
type RawClinic struct {
	Name         string
	AddressLine1 string
	Locality     string
	City         string
	Address      string
}

// HasStructuredAddress reports whether any structured address part is set.
func (c RawClinic) HasStructuredAddress() bool {
	return c.AddressLine1 != "" || c.Locality != "" || c.City != ""
}

func (d *RawDoctor) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*d = RawDoctor{
		ID:           lenientString(fields["id"]),
		Name:         lenientString(fields["name"]),
		Specialities: lenientSpecialities(fields["specialities"]),
		Fees:         lenientString(fields["fees"]),
		Experience:   lenientString(fields["experience"]),
		Clinic:       lenientClinic(fields["clinic"]),
		Photo:        lenientString(fields["photo"]),
		Languages:    lenientStrings(fields["languages"]),
		VideoConsult: lenientBool(fields["video_consult"]),
		InClinic:     lenientBool(fields["in_clinic"]),
	}
	return nil
}

// lenientString accepts a JSON string or number; anything else is "".
func lenientString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return strings.TrimSpace(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return ""
		}
		return n.String()
	}
	return ""
}

func lenientBool(raw json.RawMessage) *bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil
	}
	return &b
}

func lenientStrings(raw json.RawMessage) []string {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}

	values := make([]string, 0, len(items))
	for _, item := range items {
		if s := lenientString(item); s != "" {
			values = append(values, s)
		}
	}
	return values
}

// lenientSpecialities accepts [{"name": "..."}] and, for robustness, plain
// strings. Entries without a usable name are dropped.
func lenientSpecialities(raw json.RawMessage) []RawSpecialty {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}

	specialities := make([]RawSpecialty, 0, len(items))
	for _, item := range items {
		name := lenientString(item)
		if name == "" {
			var obj map[string]json.RawMessage
			if err := json.Unmarshal(item, &obj); err == nil {
				name = lenientString(obj["name"])
			}
		}
		if name != "" {
			specialities = append(specialities, RawSpecialty{Name: name})
		}
	}
	return specialities
}

func lenientClinic(raw json.RawMessage) *RawClinic {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return nil
	}

	clinic := &RawClinic{
		Name:         lenientString(fields["name"]),
		AddressLine1: lenientString(fields["address_line1"]),
		Locality:     lenientString(fields["locality"]),
		City:         lenientString(fields["city"]),
		Address:      lenientString(fields["address"]),
	}

	var nested map[string]json.RawMessage
	if err := json.Unmarshal(fields["address"], &nested); err == nil && nested != nil {
		if clinic.AddressLine1 == "" {
			clinic.AddressLine1 = lenientString(nested["address_line1"])
		}
		if clinic.Locality == "" {
			clinic.Locality = lenientString(nested["locality"])
		}
		if clinic.City == "" {
			clinic.City = lenientString(nested["city"])
		}
	}

	return clinic
}
