package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/marketfeed/internal/client/media"
	"github.com/dmitrijs2005/marketfeed/internal/client/models"
	"github.com/dmitrijs2005/marketfeed/internal/client/repositories/users"
	"github.com/dmitrijs2005/marketfeed/internal/client/session"
	"github.com/dmitrijs2005/marketfeed/internal/logging"
)

// ProfileUpdate lists profile changes. A blank field means "leave as is".
type ProfileUpdate struct {
	Name  string
	Email string
}

// ProfileService edits the record of the logged-in user.
type ProfileService interface {
	UpdateProfile(ctx context.Context, upd ProfileUpdate) (*models.User, error)
	SetAvatar(ctx context.Context, imageRef string) (*models.User, error)
	SetAvatarFromFile(ctx context.Context, path string) (*models.User, error)
}

// AvatarOptions controls how avatar files are normalised.
type AvatarOptions struct {
	Size     int
	MaxBytes int64
}

type profileService struct {
	users   users.Repository
	session *session.Manager
	avatar  AvatarOptions
	log     logging.Logger
}

func NewProfileService(repo users.Repository, sess *session.Manager, avatar AvatarOptions, log logging.Logger) ProfileService {
	return &profileService{users: repo, session: sess, avatar: avatar, log: log.With("service", "profile")}
}

// UpdateProfile applies upd to the current user. A changed email moves the
// record to the new key and the session follows it, keeping its
// persistence mode. An email owned by another user fails with
// common.ErrEmailConflict before anything is written.
func (s *profileService) UpdateProfile(ctx context.Context, upd ProfileUpdate) (*models.User, error) {
	user, err := currentUser(ctx, s.users, s.session)
	if err != nil {
		return nil, err
	}

	oldEmail := user.Email
	newEmail := users.Normalize(upd.Email)
	if newEmail != "" && newEmail != oldEmail {
		if err := s.users.Rekey(ctx, oldEmail, newEmail); err != nil {
			return nil, err
		}
		if err := s.session.Establish(ctx, newEmail, s.session.Persistent()); err != nil {
			// The session still points at oldEmail; move the record back.
			if rbErr := s.users.Rekey(ctx, newEmail, oldEmail); rbErr != nil {
				s.log.Error(ctx, "failed to restore user record after session error", "email", oldEmail, "error", rbErr)
				return nil, errors.Join(err, rbErr)
			}
			return nil, err
		}
		user.Email = newEmail
		s.log.Info(ctx, "email changed", "from", oldEmail, "to", newEmail)
	}

	if name := strings.TrimSpace(upd.Name); name != "" {
		user.Name = name
	}
	if err := s.users.Upsert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetAvatar stores imageRef as the avatar of the current user.
func (s *profileService) SetAvatar(ctx context.Context, imageRef string) (*models.User, error) {
	user, err := currentUser(ctx, s.users, s.session)
	if err != nil {
		return nil, err
	}
	user.Avatar = imageRef
	if err := s.users.Upsert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetAvatarFromFile turns the image at path into a square PNG thumbnail and
// stores it as the avatar.
func (s *profileService) SetAvatarFromFile(ctx context.Context, path string) (*models.User, error) {
	if _, err := currentUser(ctx, s.users, s.session); err != nil {
		return nil, err
	}

	m, err := media.Load(path, s.avatar.MaxBytes)
	if err != nil {
		return nil, err
	}
	ref, err := media.AvatarDataURL(m.Data, s.avatarSize())
	if err != nil {
		return nil, err
	}
	s.log.Debug(ctx, "avatar normalised", "source", m.Name, "mime", m.MIME)
	return s.SetAvatar(ctx, ref)
}

func (s *profileService) avatarSize() int {
	if s.avatar.Size > 0 {
		return s.avatar.Size
	}
	return media.DefaultAvatarSize
}
