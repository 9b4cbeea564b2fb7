package service

import (
	"strings"
	"time"

	"github.com/lukafrizz/content-api/database"
	"github.com/lukafrizz/content-api/database/model"
	"github.com/lukafrizz/content-api/logger"
	"github.com/lukafrizz/content-api/util/crypto"
)

// UserService covers registration, authentication and account administration.
type UserService struct{}

// Register creates a new account with a hashed password and the default user
// role. Username/email collisions surface as ErrConflict.
func (s *UserService) Register(username, email, password string) (*model.User, error) {
	db := database.GetDB()

	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleUser,
		IsActive:     true,
	}
	if err := db.Create(user).Error; err != nil {
		if database.IsDuplicate(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return user, nil
}

// Authenticate looks an account up by email and checks the password. The
// failure is uniform whether the account is missing or the password is wrong.
// On success lastLogin is updated before the caller issues a token.
func (s *UserService) Authenticate(email, password string) (*model.User, error) {
	db := database.GetDB()

	email = strings.ToLower(strings.TrimSpace(email))

	user := &model.User{}
	err := db.Where("email = ?", email).First(user).Error
	if database.IsNotFound(err) {
		return nil, ErrInvalidCredentials
	} else if err != nil {
		return nil, err
	}

	if !crypto.CheckPasswordHash(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	user.LastLogin = &now
	if err := db.Model(user).UpdateColumn("last_login", now).Error; err != nil {
		logger.Warning("update last login:", err)
	}
	return user, nil
}

// GetUser fetches an account by id.
func (s *UserService) GetUser(id int) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.First(user, id).Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies optional username/email/profile changes.
func (s *UserService) UpdateProfile(id int, username, email *string, profile *model.Profile) (*model.User, error) {
	db := database.GetDB()

	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	if username != nil {
		user.Username = strings.TrimSpace(*username)
	}
	if email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*email))
	}
	if profile != nil {
		user.Profile = *profile
	}

	if err := db.Save(user).Error; err != nil {
		if database.IsDuplicate(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return user, nil
}

// ChangePassword re-verifies the current password before re-hashing the new one.
func (s *UserService) ChangePassword(id int, currentPassword, newPassword string) error {
	db := database.GetDB()

	user, err := s.GetUser(id)
	if err != nil {
		return err
	}

	if !crypto.CheckPasswordHash(user.PasswordHash, currentPassword) {
		return ErrInvalidCredentials
	}

	hash, err := crypto.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return db.Model(user).UpdateColumn("password_hash", hash).Error
}

// SetRole assigns a role from the closed role set.
func (s *UserService) SetRole(id int, role string) (*model.User, error) {
	if !model.ValidRole(role) {
		return nil, ErrInvalidRole
	}
	db := database.GetDB()

	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}
	if err := db.Model(user).UpdateColumn("role", role).Error; err != nil {
		return nil, err
	}
	user.Role = role
	return user, nil
}

// SetActive toggles the active flag.
func (s *UserService) SetActive(id int, active bool) (*model.User, error) {
	db := database.GetDB()

	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}
	if err := db.Model(user).UpdateColumn("is_active", active).Error; err != nil {
		return nil, err
	}
	user.IsActive = active
	return user, nil
}

// ListUsers returns a page of accounts, optionally filtered by role.
func (s *UserService) ListUsers(role string, page, limit int) ([]model.User, int64, error) {
	db := database.GetDB()

	query := db.Model(&model.User{})
	if role != "" {
		query = query.Where("role = ?", role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// CountUsers returns the total number of accounts and how many were created
// since the given time.
func (s *UserService) CountUsers(since time.Time) (total int64, recent int64, err error) {
	db := database.GetDB()

	if err = db.Model(&model.User{}).Count(&total).Error; err != nil {
		return
	}
	err = db.Model(&model.User{}).Where("created_at >= ?", since).Count(&recent).Error
	return
}
