package models

// Admin is the signed-in institute administrator.
type Admin struct {
	ID            string `json:"_id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	InstituteName string `json:"institute_name,omitempty"`
}
