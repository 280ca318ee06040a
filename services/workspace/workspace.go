// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package workspace orchestrates workspace lifecycle operations that
// span model packages.
package workspace

import (
	"context"

	"code.questhq.io/quest/models/db"
	issues_model "code.questhq.io/quest/models/issues"
	project_model "code.questhq.io/quest/models/project"
	user_model "code.questhq.io/quest/models/user"
	workspace_model "code.questhq.io/quest/models/workspace"
	"code.questhq.io/quest/modules/util"
)

// DeleteWorkspace removes the workspace and everything under it in one
// transaction: every project with its issues, the membership rows and
// the pending invitations. Only the owner may do this.
func DeleteWorkspace(ctx context.Context, doer *user_model.User, w *workspace_model.Workspace) error {
	if w.OwnerID != doer.ID {
		return util.NewPermissionDeniedErrorf("only the workspace owner can delete workspace %d", w.ID)
	}

	ctx, committer, err := db.TxContext(ctx)
	if err != nil {
		return err
	}
	defer committer.Close()

	projects, err := project_model.FindProjects(ctx, w.ID)
	if err != nil {
		return err
	}
	for _, p := range projects {
		if err := issues_model.DeleteProjectIssues(ctx, p.ID); err != nil {
			return err
		}
		if err := project_model.DeleteProject(ctx, p); err != nil {
			return err
		}
	}
	if err := workspace_model.DeleteWorkspace(ctx, w); err != nil {
		return err
	}
	return committer.Commit()
}
