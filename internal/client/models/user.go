package models

// User is the profile record returned by the backend. Field names follow the
// backend's wire contract, which mixes French and English identifiers.
type User struct {
	ID            string `json:"_id,omitempty"`
	FirstName     string `json:"prenom,omitempty"`
	LastName      string `json:"nom,omitempty"`
	Email         string `json:"email,omitempty"`
	BirthDate     string `json:"age,omitempty"`
	Phone         string `json:"tel,omitempty"`
	Role          string `json:"role,omitempty"`
	EmailVerified bool   `json:"emailVerified,omitempty"`
	IsVerified    bool   `json:"isVerified,omitempty"`
}
