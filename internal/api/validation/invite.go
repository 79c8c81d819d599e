package validation

import "net/mail"

// InviteRequest mirrors the fields needed for invite validation.
type InviteRequest struct {
	Email string
}

// ValidateInviteRequest validates the fields of an invite request.
func ValidateInviteRequest(req InviteRequest) []FieldError {
	var errs []FieldError

	if req.Email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "email is required"})
	} else if _, err := mail.ParseAddress(req.Email); err != nil {
		errs = append(errs, FieldError{Field: "email", Message: "email must be a valid address"})
	}

	return errs
}
