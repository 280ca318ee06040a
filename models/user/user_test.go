// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package user_test

import (
	"testing"

	"code.questhq.io/quest/models/db"
	"code.questhq.io/quest/models/unittest"
	user_model "code.questhq.io/quest/models/user"

	"github.com/stretchr/testify/assert"
)

func TestSetPassword(t *testing.T) {
	u := &user_model.User{}
	assert.NoError(t, u.SetPassword("s3cretpass"))
	assert.NotEmpty(t, u.Salt)
	assert.NotEmpty(t, u.Passwd)

	assert.True(t, u.ValidatePassword("s3cretpass"))
	assert.False(t, u.ValidatePassword("wrong"))
	assert.False(t, u.ValidatePassword(""))
}

func TestCreateUser(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	u := &user_model.User{Name: "dave", Email: "Dave@Example.COM"}
	assert.NoError(t, u.SetPassword("s3cretpass"))
	assert.NoError(t, user_model.CreateUser(db.DefaultContext, u))
	assert.EqualValues(t, "dave@example.com", u.Email)

	fetched, err := user_model.GetUserByEmail(db.DefaultContext, "dave@example.com")
	assert.NoError(t, err)
	assert.Equal(t, u.ID, fetched.ID)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	u := &user_model.User{Name: "other alice", Email: "ALICE@example.com"}
	assert.NoError(t, u.SetPassword("s3cretpass"))
	err := user_model.CreateUser(db.DefaultContext, u)
	assert.Error(t, err)
	assert.True(t, user_model.IsErrUserAlreadyExist(err))
}

func TestGetUserByID(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	u, err := user_model.GetUserByID(db.DefaultContext, 1)
	assert.NoError(t, err)
	assert.Equal(t, "alice", u.Name)

	_, err = user_model.GetUserByID(db.DefaultContext, 999)
	assert.True(t, user_model.IsErrUserNotExist(err))
}

func TestGetUsersByIDs(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	users, err := user_model.GetUsersByIDs(db.DefaultContext, []int64{1, 2, 999})
	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "alice", users[1].Name)
	assert.Equal(t, "bob", users[2].Name)
}
