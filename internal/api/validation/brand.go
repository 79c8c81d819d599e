package validation

import (
	"encoding/json"
	"strings"
)

// CreateBrandRequest mirrors the fields needed for create brand validation.
type CreateBrandRequest struct {
	Name       string
	Slug       string
	Config     json.RawMessage
	Enrichment json.RawMessage
}

// ValidateCreateBrandRequest validates the fields of a create brand request.
func ValidateCreateBrandRequest(req CreateBrandRequest) []FieldError {
	var errs []FieldError

	name := strings.TrimSpace(req.Name)
	if name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	} else if len(name) > 255 {
		errs = append(errs, FieldError{Field: "name", Message: "name must be at most 255 characters"})
	}

	if req.Slug == "" {
		errs = append(errs, FieldError{Field: "slug", Message: "slug is required"})
	} else if !ValidSlug(req.Slug) {
		errs = append(errs, FieldError{Field: "slug", Message: "slug must contain only lowercase letters, digits, and hyphens"})
	}

	errs = append(errs, validateBlob("config", req.Config)...)
	errs = append(errs, validateBlob("enrichment", req.Enrichment)...)

	return errs
}

// UpdateBrandRequest mirrors the fields needed for update brand validation.
type UpdateBrandRequest struct {
	Name       *string
	Config     json.RawMessage
	Enrichment json.RawMessage
}

// ValidateUpdateBrandRequest validates the fields of a partial brand update.
func ValidateUpdateBrandRequest(req UpdateBrandRequest) []FieldError {
	var errs []FieldError

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			errs = append(errs, FieldError{Field: "name", Message: "name must not be empty"})
		} else if len(name) > 255 {
			errs = append(errs, FieldError{Field: "name", Message: "name must be at most 255 characters"})
		}
	}

	errs = append(errs, validateBlob("config", req.Config)...)
	errs = append(errs, validateBlob("enrichment", req.Enrichment)...)

	return errs
}

// validateBlob checks that a free-form JSON blob, when present, is a JSON
// object. The blobs are stored as JSONB and passed through untouched.
func validateBlob(field string, raw json.RawMessage) []FieldError {
	if raw == nil {
		return nil
	}

	var blob map[string]any
	if err := json.Unmarshal(raw, &blob); err != nil {
		return []FieldError{{Field: field, Message: field + " must be a JSON object"}}
	}
	return nil
}
