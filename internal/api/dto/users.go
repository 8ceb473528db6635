package dto

import "github.com/farhan/hrmtrack/internal/api/validation"

// UpdateUserRequest carries the profile fields a caller may change. Role is
// honored only for admin callers; password changes are never accepted here.
type UpdateUserRequest struct {
	Name           *string `json:"name,omitempty"`
	Email          *string `json:"email,omitempty"`
	PhoneNumber    *string `json:"phone_number,omitempty"`
	Designation    *string `json:"designation,omitempty"`
	ProfilePicture *string `json:"profile_picture,omitempty"`
	Role           *string `json:"role,omitempty"`

	// Accepted and discarded so clients sending it do not get a 400.
	Password *string `json:"password,omitempty"`
}

func (r UpdateUserRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Name != nil && *r.Name == "" {
		errors["name"] = "Name cannot be empty"
	}
	if r.Email != nil && !validation.IsValidEmail(*r.Email) {
		errors["email"] = "Email is invalid"
	}

	return errors
}

type UploadURLResponse struct {
	Success   bool   `json:"success"`
	UploadURL string `json:"upload_url"`
	Key       string `json:"key"`
}
