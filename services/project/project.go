// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package project orchestrates project lifecycle operations that span
// model packages.
package project

import (
	"context"

	"code.questhq.io/quest/models/db"
	issues_model "code.questhq.io/quest/models/issues"
	project_model "code.questhq.io/quest/models/project"
	user_model "code.questhq.io/quest/models/user"
	workspace_model "code.questhq.io/quest/models/workspace"
	"code.questhq.io/quest/modules/notification"
)

// NewProject creates a project in the workspace and notifies
func NewProject(ctx context.Context, doer *user_model.User, w *workspace_model.Workspace, p *project_model.Project) error {
	if err := project_model.NewProject(ctx, p); err != nil {
		return err
	}

	notification.NotifyNewProject(ctx, doer, w, p)
	return nil
}

// DeleteProject removes the project with every issue, label and sprint
// in one transaction, then notifies. Issues carry their own per-issue
// cascade so comments, attachments and notifications go with them.
func DeleteProject(ctx context.Context, doer *user_model.User, w *workspace_model.Workspace, p *project_model.Project) error {
	if err := deleteProject(ctx, p); err != nil {
		return err
	}

	notification.NotifyDeleteProject(ctx, doer, w, p)
	return nil
}

func deleteProject(ctx context.Context, p *project_model.Project) error {
	return db.AutoTx(ctx, func(ctx context.Context) error {
		if err := issues_model.DeleteProjectIssues(ctx, p.ID); err != nil {
			return err
		}
		return project_model.DeleteProject(ctx, p)
	})
}
