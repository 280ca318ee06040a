// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package issues_test

import (
	"testing"

	"code.questhq.io/quest/models/db"
	issues_model "code.questhq.io/quest/models/issues"
	"code.questhq.io/quest/models/unittest"
	"code.questhq.io/quest/modules/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateComment(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	comment := &issues_model.Comment{
		IssueID:  1,
		PosterID: 1,
		Content:  "merged upstream",
	}
	assert.NoError(t, issues_model.CreateComment(db.DefaultContext, comment))
	assert.NotZero(t, comment.ID)

	err := issues_model.CreateComment(db.DefaultContext, &issues_model.Comment{
		IssueID:  1,
		PosterID: 1,
	})
	assert.ErrorIs(t, err, util.ErrInvalidArgument)
}

func TestFindComments(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	second := &issues_model.Comment{IssueID: 1, PosterID: 1, Content: "still failing"}
	require.NoError(t, issues_model.CreateComment(db.DefaultContext, second))

	comments, err := issues_model.FindComments(db.DefaultContext, 1)
	assert.NoError(t, err)
	require.Len(t, comments, 2)
	// oldest first, posters loaded
	assert.Equal(t, "On it", comments[0].Content)
	require.NotNil(t, comments[0].Poster)
	assert.Equal(t, "bob", comments[0].Poster.Name)
	assert.Equal(t, "still failing", comments[1].Content)
}

func TestUpdateComment(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	comment, err := issues_model.GetCommentByID(db.DefaultContext, 1)
	require.NoError(t, err)

	comment.Content = "On it, fix incoming"
	assert.NoError(t, issues_model.UpdateComment(db.DefaultContext, comment))

	fetched, err := issues_model.GetCommentByID(db.DefaultContext, 1)
	assert.NoError(t, err)
	assert.Equal(t, "On it, fix incoming", fetched.Content)
}

func TestDeleteComment(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	comment, err := issues_model.GetCommentByID(db.DefaultContext, 1)
	require.NoError(t, err)
	assert.NoError(t, issues_model.DeleteComment(db.DefaultContext, comment))

	_, err = issues_model.GetCommentByID(db.DefaultContext, 1)
	assert.True(t, issues_model.IsErrCommentNotExist(err))
}

func TestAttachments(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	attach := &issues_model.Attachment{
		IssueID:    1,
		UploaderID: 1,
		Name:       "stacktrace.txt",
		Size:       2048,
	}
	assert.NoError(t, issues_model.CreateAttachment(db.DefaultContext, attach))
	assert.NotEmpty(t, attach.UUID)

	attachments, err := issues_model.FindAttachments(db.DefaultContext, 1)
	assert.NoError(t, err)
	assert.Len(t, attachments, 2)

	byUUID, err := issues_model.GetAttachmentByUUID(db.DefaultContext, attach.UUID)
	assert.NoError(t, err)
	assert.Equal(t, attach.ID, byUUID.ID)

	assert.NoError(t, issues_model.DeleteAttachment(db.DefaultContext, attach))
	_, err = issues_model.GetAttachmentByID(db.DefaultContext, attach.ID)
	assert.True(t, issues_model.IsErrAttachmentNotExist(err))
}
