package auth

import (
	"fmt"

	"github.com/edupulse/edupulse/internal/app/models"
	"github.com/edupulse/edupulse/internal/pkg/apperrors"
	pkgauth "github.com/edupulse/edupulse/internal/pkg/auth"
)

// Identity is the caller of a request. It is built from a validated token and
// passed explicitly to every service call.
type Identity struct {
	Username  string
	Name      string
	Role      models.Role
	StudentID string
	MentorID  string
	TokenID   string
}

// IdentityFromClaims converts validated token claims
func IdentityFromClaims(claims *pkgauth.Claims) Identity {
	return Identity{
		Username:  claims.Username,
		Name:      claims.Name,
		Role:      models.Role(claims.Role),
		StudentID: claims.StudentID,
		MentorID:  claims.MentorID,
		TokenID:   claims.ID,
	}
}

// DisplayName is the name shown in chat lines
func (i Identity) DisplayName() string {
	if i.Name != "" {
		return i.Name
	}
	return i.Username
}

func (i Identity) IsAdmin() bool { return i.Role == models.RoleAdmin }

// RequireRole fails with a permission error when the caller has another role
func (i Identity) RequireRole(role models.Role, action string) error {
	if i.Role != role {
		return apperrors.NewForbiddenError(fmt.Sprintf("You must be logged in as a %s to %s", role, action))
	}
	return nil
}

// AuthorizeSessionStudent allows only the student who owns the session
func AuthorizeSessionStudent(id Identity, session *models.MentorshipSession, action string) error {
	if err := id.RequireRole(models.RoleStudent, action); err != nil {
		return err
	}
	if id.StudentID == "" || session.StudentID != id.StudentID {
		return apperrors.NewForbiddenError("You are not authorized to " + action + " for this session")
	}
	return nil
}

// AuthorizeSessionMentor allows only the mentor the session was requested from
func AuthorizeSessionMentor(id Identity, session *models.MentorshipSession, action string) error {
	if err := id.RequireRole(models.RoleMentor, action); err != nil {
		return err
	}
	if id.MentorID == "" || session.MentorID != id.MentorID {
		return apperrors.NewForbiddenError("You are not authorized to " + action + " for this session")
	}
	return nil
}

// AuthorizeSessionParty allows the session's student or mentor
func AuthorizeSessionParty(id Identity, session *models.MentorshipSession) error {
	switch id.Role {
	case models.RoleStudent:
		if id.StudentID != "" && session.StudentID == id.StudentID {
			return nil
		}
	case models.RoleMentor:
		if id.MentorID != "" && session.MentorID == id.MentorID {
			return nil
		}
	case models.RoleAdmin:
	}
	return apperrors.NewForbiddenError("You are not a participant of this session")
}

// AuthorizeSessionViewer allows the session's parties and admins
func AuthorizeSessionViewer(id Identity, session *models.MentorshipSession) error {
	if id.IsAdmin() {
		return nil
	}
	return AuthorizeSessionParty(id, session)
}

// AuthorizeStudentRecords allows admins and the student the records belong to
func AuthorizeStudentRecords(id Identity, studentID string) error {
	switch id.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleStudent:
		if id.StudentID != "" && id.StudentID == studentID {
			return nil
		}
	case models.RoleMentor:
	}
	return apperrors.NewForbiddenError("You are not authorized to view these records")
}
