package model

import "time"

// Account types stored in users.user_type. A user is either a farmer or a
// researcher/policymaker; policymakers are researchers whose profile carries
// the is_policymaker flag.
const (
	UserTypeFarmer     = "FARMER"
	UserTypeResearcher = "RESEARCHER"
)

// ValidUserType reports whether s is one of the known account types.
func ValidUserType(s string) bool {
	return s == UserTypeFarmer || s == UserTypeResearcher
}

// User represents a row of the `users` table. Email is the sole lookup key
// for authentication and is stored lowercased. The json tags are omitted
// here; handlers expose separate response types that never include
// PasswordHash.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique, normalized email address.
//  PasswordHash – bcrypt hashed password.
//  Name         – optional display name (empty when not provided).
//  UserType     – FARMER or RESEARCHER.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64
	Email        string
	PasswordHash string
	Name         string
	UserType     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FarmerProfile models a row of `farmer_profiles`. At most one row exists
// per user, and only when the owning user's type is FARMER. The row is
// created empty at signup and filled in by a later profile edit.
type FarmerProfile struct {
	UserID    uint64   `json:"-"`
	FarmName  string   `json:"farmName"`
	Location  string   `json:"location"`
	FarmSize  float64  `json:"farmSize"` // hectares; must be positive once set
	CropTypes []string `json:"cropTypes"`
}

// ResearcherProfile models a row of `researcher_profiles`. Same ownership
// rule as FarmerProfile, bound to RESEARCHER users.
type ResearcherProfile struct {
	UserID         uint64   `json:"-"`
	Institution    string   `json:"institution"`
	Specialization string   `json:"specialization"`
	ResearchFocus  []string `json:"researchFocus"`
	IsPolicymaker  bool     `json:"isPolicymaker"`
}

// AnalysisRequest is the audit row written for every call to the analysis
// endpoint. Datasets is persisted as a JSON array of dataset identifiers.
type AnalysisRequest struct {
	ID          uint64    `json:"id"`
	UserID      uint64    `json:"-"`
	Datasets    []string  `json:"datasets"`
	Region      string    `json:"region"`
	RequestedAt time.Time `json:"requestedAt"`
}
