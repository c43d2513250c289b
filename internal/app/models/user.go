package models

// Role identifies which profile a user carries
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
	RoleMentor  Role = "mentor"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStudent, RoleMentor:
		return true
	}
	return false
}

// User is an entry of the users document, keyed by username.
// Exactly one of StudentProfile or MentorProfile is set for the matching role;
// admins carry neither. Profile fields are flattened into the user object when
// encoded.
type User struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Role      Role   `json:"role"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at,omitempty"`

	*StudentProfile
	*MentorProfile
}

// StudentProfile holds the student specific fields of a user
type StudentProfile struct {
	StudentID  string `json:"student_id"`
	Department string `json:"department"`
	Year       int    `json:"year"`
}

// MentorProfile holds the mentor specific fields of a user
type MentorProfile struct {
	MentorID       string   `json:"mentor_id"`
	Specialization string   `json:"specialization"`
	Experience     int      `json:"experience"`
	HourlyRate     float64  `json:"hourly_rate"`
	Availability   []string `json:"availability"`
	Rating         float64  `json:"rating"`
	PaymentDetails string   `json:"payment_details,omitempty"`
}

// DisplayName falls back to the username when no name was given
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}

// RoleID returns the student or mentor id, empty for admins
func (u *User) RoleID() string {
	switch u.Role {
	case RoleStudent:
		if u.StudentProfile != nil {
			return u.StudentProfile.StudentID
		}
	case RoleMentor:
		if u.MentorProfile != nil {
			return u.MentorProfile.MentorID
		}
	case RoleAdmin:
	}
	return ""
}
