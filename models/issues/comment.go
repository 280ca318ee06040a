// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package issues

import (
	"context"
	"fmt"

	"code.questhq.io/quest/models/db"
	user_model "code.questhq.io/quest/models/user"
	"code.questhq.io/quest/modules/timeutil"
	"code.questhq.io/quest/modules/util"
)

// ErrCommentNotExist represents a "CommentNotExist" kind of error.
type ErrCommentNotExist struct {
	ID      int64
	IssueID int64
}

// IsErrCommentNotExist checks if an error is a ErrCommentNotExist.
func IsErrCommentNotExist(err error) bool {
	_, ok := err.(ErrCommentNotExist)
	return ok
}

func (err ErrCommentNotExist) Error() string {
	return fmt.Sprintf("comment does not exist [id: %d, issue_id: %d]", err.ID, err.IssueID)
}

func (err ErrCommentNotExist) Unwrap() error {
	return util.ErrNotExist
}

// Comment represents a comment on an issue
type Comment struct {
	ID       int64  `xorm:"pk autoincr" json:"id"`
	IssueID  int64  `xorm:"INDEX NOT NULL" json:"issueId"`
	PosterID int64  `xorm:"INDEX NOT NULL" json:"posterId"`
	Content  string `xorm:"TEXT NOT NULL" json:"content"`

	Poster *user_model.User `xorm:"-" json:"poster,omitempty"`

	CreatedUnix timeutil.TimeStamp `xorm:"INDEX created" json:"created"`
	UpdatedUnix timeutil.TimeStamp `xorm:"INDEX updated" json:"updated"`
}

func init() {
	db.RegisterModel(new(Comment))
}

// CreateComment creates a comment on an issue
func CreateComment(ctx context.Context, comment *Comment) error {
	if comment.Content == "" {
		return util.NewInvalidArgumentErrorf("comment content is empty")
	}
	return db.Insert(ctx, comment)
}

// GetCommentByID returns the comment by given ID if exists.
func GetCommentByID(ctx context.Context, id int64) (*Comment, error) {
	comment := new(Comment)
	has, err := db.GetEngine(ctx).ID(id).Get(comment)
	if err != nil {
		return nil, err
	} else if !has {
		return nil, ErrCommentNotExist{ID: id}
	}
	return comment, nil
}

// FindComments returns the comments of an issue, oldest first
func FindComments(ctx context.Context, issueID int64) ([]*Comment, error) {
	comments := make([]*Comment, 0, 10)
	if err := db.GetEngine(ctx).
		Where("issue_id = ?", issueID).
		Asc("created_unix", "id").
		Find(&comments); err != nil {
		return nil, err
	}
	return comments, loadCommentPosters(ctx, comments)
}

func loadCommentPosters(ctx context.Context, comments []*Comment) error {
	if len(comments) == 0 {
		return nil
	}
	posterIDs := make([]int64, 0, len(comments))
	for _, comment := range comments {
		posterIDs = append(posterIDs, comment.PosterID)
	}
	posters, err := user_model.GetUsersByIDs(ctx, posterIDs)
	if err != nil {
		return err
	}
	for _, comment := range comments {
		comment.Poster = posters[comment.PosterID]
	}
	return nil
}

// UpdateComment changes the content of a comment
func UpdateComment(ctx context.Context, comment *Comment) error {
	if comment.Content == "" {
		return util.NewInvalidArgumentErrorf("comment content is empty")
	}
	_, err := db.GetEngine(ctx).ID(comment.ID).Cols("content").Update(comment)
	return err
}

// DeleteComment removes a comment
func DeleteComment(ctx context.Context, comment *Comment) error {
	_, err := db.GetEngine(ctx).ID(comment.ID).NoAutoCondition().Delete(comment)
	return err
}
