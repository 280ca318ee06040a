// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package issues

import (
	"context"
	"fmt"

	"code.questhq.io/quest/models/db"
	"code.questhq.io/quest/modules/timeutil"
	"code.questhq.io/quest/modules/util"

	"github.com/google/uuid"
)

// ErrAttachmentNotExist represents a "AttachmentNotExist" kind of error.
type ErrAttachmentNotExist struct {
	ID   int64
	UUID string
}

// IsErrAttachmentNotExist checks if an error is a ErrAttachmentNotExist.
func IsErrAttachmentNotExist(err error) bool {
	_, ok := err.(ErrAttachmentNotExist)
	return ok
}

func (err ErrAttachmentNotExist) Error() string {
	return fmt.Sprintf("attachment does not exist [id: %d, uuid: %s]", err.ID, err.UUID)
}

func (err ErrAttachmentNotExist) Unwrap() error {
	return util.ErrNotExist
}

// Attachment represents a file attached to an issue. Only the metadata
// lives here; the bytes are stored under the uuid by the storage layer.
type Attachment struct {
	ID         int64  `xorm:"pk autoincr" json:"id"`
	UUID       string `xorm:"uuid UNIQUE NOT NULL" json:"uuid"`
	IssueID    int64  `xorm:"INDEX NOT NULL" json:"issueId"`
	UploaderID int64  `xorm:"NOT NULL" json:"uploaderId"`
	Name       string `xorm:"NOT NULL" json:"name"`
	Size       int64  `xorm:"NOT NULL DEFAULT 0" json:"size"`

	CreatedUnix timeutil.TimeStamp `xorm:"created" json:"created"`
}

func init() {
	db.RegisterModel(new(Attachment))
}

// CreateAttachment inserts the attachment metadata, allocating its uuid
func CreateAttachment(ctx context.Context, attach *Attachment) error {
	if attach.Name == "" {
		return util.NewInvalidArgumentErrorf("attachment name is empty")
	}
	attach.UUID = uuid.New().String()
	return db.Insert(ctx, attach)
}

// GetAttachmentByID returns the attachment by given ID if exists.
func GetAttachmentByID(ctx context.Context, id int64) (*Attachment, error) {
	attach := new(Attachment)
	has, err := db.GetEngine(ctx).ID(id).Get(attach)
	if err != nil {
		return nil, err
	} else if !has {
		return nil, ErrAttachmentNotExist{ID: id}
	}
	return attach, nil
}

// GetAttachmentByUUID returns the attachment with the given uuid if exists.
func GetAttachmentByUUID(ctx context.Context, uuid string) (*Attachment, error) {
	attach := new(Attachment)
	has, err := db.GetEngine(ctx).Where("uuid = ?", uuid).Get(attach)
	if err != nil {
		return nil, err
	} else if !has {
		return nil, ErrAttachmentNotExist{UUID: uuid}
	}
	return attach, nil
}

// FindAttachments returns the attachments of an issue, oldest first
func FindAttachments(ctx context.Context, issueID int64) ([]*Attachment, error) {
	attachments := make([]*Attachment, 0, 5)
	return attachments, db.GetEngine(ctx).
		Where("issue_id = ?", issueID).
		Asc("created_unix", "id").
		Find(&attachments)
}

// DeleteAttachment removes the attachment metadata row
func DeleteAttachment(ctx context.Context, attach *Attachment) error {
	_, err := db.GetEngine(ctx).ID(attach.ID).NoAutoCondition().Delete(attach)
	return err
}
