// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package user holds the User bean and credential handling. Passwords
// are stored as pbkdf2 hashes with a per-user random salt.
package user

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"code.questhq.io/quest/models/db"
	"code.questhq.io/quest/modules/timeutil"
	"code.questhq.io/quest/modules/util"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltByteLength   = 16
	pbkdf2Iterations = 10000
	pbkdf2KeyLength  = 50
)

// ErrUserNotExist represents a "UserNotExist" kind of error.
type ErrUserNotExist struct {
	UID   int64
	Email string
}

// IsErrUserNotExist checks if an error is a ErrUserNotExist.
func IsErrUserNotExist(err error) bool {
	_, ok := err.(ErrUserNotExist)
	return ok
}

func (err ErrUserNotExist) Error() string {
	return fmt.Sprintf("user does not exist [uid: %d, email: %s]", err.UID, err.Email)
}

func (err ErrUserNotExist) Unwrap() error {
	return util.ErrNotExist
}

// ErrUserAlreadyExist represents a "UserAlreadyExist" kind of error.
type ErrUserAlreadyExist struct {
	Email string
}

// IsErrUserAlreadyExist checks if an error is a ErrUserAlreadyExist.
func IsErrUserAlreadyExist(err error) bool {
	_, ok := err.(ErrUserAlreadyExist)
	return ok
}

func (err ErrUserAlreadyExist) Error() string {
	return fmt.Sprintf("user already exists [email: %s]", err.Email)
}

func (err ErrUserAlreadyExist) Unwrap() error {
	return util.ErrAlreadyExist
}

// User represents a registered account
type User struct {
	ID     int64  `xorm:"pk autoincr" json:"id"`
	Name   string `xorm:"NOT NULL" json:"name"`
	Email  string `xorm:"UNIQUE NOT NULL" json:"email"`
	Passwd string `xorm:"NOT NULL" json:"-"`
	Salt   string `xorm:"VARCHAR(32)" json:"-"`
	Avatar string `xorm:"VARCHAR(2048)" json:"image,omitempty"`

	CreatedUnix timeutil.TimeStamp `xorm:"INDEX created" json:"created"`
	UpdatedUnix timeutil.TimeStamp `xorm:"INDEX updated" json:"-"`
}

func init() {
	db.RegisterModel(new(User))
}

func hashPassword(passwd, salt string) string {
	tempPasswd := pbkdf2.Key([]byte(passwd), []byte(salt), pbkdf2Iterations, pbkdf2KeyLength, sha256.New)
	return hex.EncodeToString(tempPasswd)
}

// SetPassword hashes a password using pbkdf2 with a fresh salt
func (u *User) SetPassword(passwd string) error {
	salt := make([]byte, saltByteLength)
	if _, err := rand.Read(salt); err != nil {
		return err
	}
	u.Salt = hex.EncodeToString(salt)
	u.Passwd = hashPassword(passwd, u.Salt)
	return nil
}

// ValidatePassword checks if the given password matches the stored hash
func (u *User) ValidatePassword(passwd string) bool {
	return subtle.ConstantTimeCompare([]byte(u.Passwd), []byte(hashPassword(passwd, u.Salt))) == 1
}

// NormalizeEmail lower-cases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser creates a record for the new user. The email must not be
// registered yet.
func CreateUser(ctx context.Context, u *User) error {
	u.Email = NormalizeEmail(u.Email)
	if u.Email == "" || !strings.Contains(u.Email, "@") {
		return util.NewInvalidArgumentErrorf("email address is not valid")
	}
	if u.Name == "" {
		return util.NewInvalidArgumentErrorf("name is empty")
	}

	return db.WithTx(ctx, func(ctx context.Context) error {
		has, err := db.GetEngine(ctx).Where("email = ?", u.Email).Exist(new(User))
		if err != nil {
			return err
		}
		if has {
			return ErrUserAlreadyExist{Email: u.Email}
		}
		return db.Insert(ctx, u)
	})
}

// GetUserByID returns the user object by given ID if exists.
func GetUserByID(ctx context.Context, id int64) (*User, error) {
	u := new(User)
	has, err := db.GetEngine(ctx).ID(id).Get(u)
	if err != nil {
		return nil, err
	} else if !has {
		return nil, ErrUserNotExist{UID: id}
	}
	return u, nil
}

// GetUserByEmail returns the user object by given email if exists.
func GetUserByEmail(ctx context.Context, email string) (*User, error) {
	email = NormalizeEmail(email)
	u := new(User)
	has, err := db.GetEngine(ctx).Where("email = ?", email).Get(u)
	if err != nil {
		return nil, err
	} else if !has {
		return nil, ErrUserNotExist{Email: email}
	}
	return u, nil
}

// GetUsersByIDs returns users keyed by id, missing ids are skipped
func GetUsersByIDs(ctx context.Context, ids []int64) (map[int64]*User, error) {
	users := make([]*User, 0, len(ids))
	if len(ids) > 0 {
		if err := db.GetEngine(ctx).In("id", ids).Find(&users); err != nil {
			return nil, err
		}
	}
	userMap := make(map[int64]*User, len(users))
	for _, u := range users {
		userMap[u.ID] = u
	}
	return userMap, nil
}

// UpdateUserCols updates the given columns of the user record
func UpdateUserCols(ctx context.Context, u *User, cols ...string) error {
	_, err := db.GetEngine(ctx).ID(u.ID).Cols(cols...).Update(u)
	return err
}
