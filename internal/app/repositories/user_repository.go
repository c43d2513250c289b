package repositories

import (
	"context"
	"sort"

	"github.com/edupulse/edupulse/internal/app/models"
	"github.com/edupulse/edupulse/internal/pkg/apperrors"
	"github.com/edupulse/edupulse/internal/pkg/docstore"
)

// UserRepository reads and writes the users document
type UserRepository struct {
	doc *docstore.Document[models.UserMap]
}

func NewUserRepository(doc *docstore.Document[models.UserMap]) *UserRepository {
	return &UserRepository{doc: doc}
}

// GetByUsername returns apperrors.ErrResourceNotFound for unknown usernames
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	users, err := r.doc.Load(ctx)
	if err != nil {
		return nil, err
	}
	user, ok := users[username]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	if user.Username == "" {
		user.Username = username
	}
	return &user, nil
}

// GetMentorByID looks a mentor up by mentor_id
func (r *UserRepository) GetMentorByID(ctx context.Context, mentorID string) (*models.User, error) {
	users, err := r.doc.Load(ctx)
	if err != nil {
		return nil, err
	}
	for username, user := range users {
		if user.Role == models.RoleMentor && user.MentorProfile != nil && user.MentorID == mentorID {
			if user.Username == "" {
				user.Username = username
			}
			return &user, nil
		}
	}
	return nil, apperrors.ErrResourceNotFound
}

// ListByRole returns users of one role ordered by username
func (r *UserRepository) ListByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	users, err := r.doc.Load(ctx)
	if err != nil {
		return nil, err
	}

	var out []models.User
	for username, user := range users {
		if user.Role != role {
			continue
		}
		if user.Username == "" {
			user.Username = username
		}
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

// Create adds a user, failing with apperrors.ErrResourceAlreadyExists on a taken username
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	_, err := r.doc.Update(ctx, func(users models.UserMap) (models.UserMap, error) {
		if _, exists := users[user.Username]; exists {
			return users, apperrors.NewConflictError("Username already exists")
		}
		users[user.Username] = *user
		return users, nil
	})
	return err
}

// UpdateMentorProfile applies fn to the profile of the mentor with mentorID
func (r *UserRepository) UpdateMentorProfile(ctx context.Context, mentorID string, fn func(*models.MentorProfile)) (*models.User, error) {
	var updated models.User
	_, err := r.doc.Update(ctx, func(users models.UserMap) (models.UserMap, error) {
		for username, user := range users {
			if user.Role != models.RoleMentor || user.MentorProfile == nil || user.MentorID != mentorID {
				continue
			}
			profile := *user.MentorProfile
			fn(&profile)
			user.MentorProfile = &profile
			users[username] = user
			updated = user
			return users, nil
		}
		return users, apperrors.NewResourceNotFoundError("Mentor not found")
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
