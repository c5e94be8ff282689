// Package service provides the business logic behind the web controllers:
// user accounts and stored predictions.
package service

import (
	"errors"
	"time"

	"github.com/Rajeshwari-1K/AgriSense-AI/database"
	"github.com/Rajeshwari-1K/AgriSense-AI/database/model"
	"github.com/Rajeshwari-1K/AgriSense-AI/logger"
	"github.com/Rajeshwari-1K/AgriSense-AI/util/crypto"

	"github.com/google/uuid"
)

// ErrEmailTaken is returned by CreateUser when the email is already
// registered.
var ErrEmailTaken = errors.New("email already registered")

type UserService struct{}

// CreateUser registers a new account with a bcrypt-hashed password and
// returns its id. The existence pre-check gives the friendly duplicate
// message; the unique index on email closes the race two concurrent
// signups would otherwise win together.
func (s *UserService) CreateUser(name string, email string, password string) (string, error) {
	db := database.GetDB()

	var count int64
	if err := db.Model(model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return "", err
	}
	if count > 0 {
		return "", ErrEmailTaken
	}

	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return "", err
	}

	user := &model.User{
		Id:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Password:  hash,
		CreatedAt: time.Now().UTC(),
		LastLogin: nil,
	}
	if err := db.Create(user).Error; err != nil {
		if database.IsDuplicate(err) {
			return "", ErrEmailTaken
		}
		return "", err
	}
	return user.Id, nil
}

// GetUserByEmail returns the user with the given email, or nil if none
// exists.
func (s *UserService) GetUserByEmail(email string) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).Where("email = ?", email).First(user).Error
	if database.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CheckUser verifies the credentials and returns the matching user, or nil
// on any failure. Callers must not distinguish a wrong email from a wrong
// password.
func (s *UserService) CheckUser(email string, password string) *model.User {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		logger.Warning("check user err:", err)
		return nil
	}
	if user == nil {
		return nil
	}
	if !crypto.CheckPasswordHash(user.Password, password) {
		return nil
	}
	return user
}

// TouchLastLogin stamps the user's last successful login.
func (s *UserService) TouchLastLogin(userId string) error {
	db := database.GetDB()
	now := time.Now().UTC()
	return db.Model(model.User{}).
		Where("id = ?", userId).
		Update("last_login", &now).
		Error
}

// CountUsers returns the total number of accounts.
func (s *UserService) CountUsers() (int64, error) {
	db := database.GetDB()
	var count int64
	err := db.Model(model.User{}).Count(&count).Error
	return count, err
}

// ListUsers returns up to limit users, for the check subcommand. Password
// hashes are blanked.
func (s *UserService) ListUsers(limit int) ([]*model.User, error) {
	db := database.GetDB()
	var users []*model.User
	err := db.Model(model.User{}).Limit(limit).Find(&users).Error
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		user.Password = ""
	}
	return users, nil
}
