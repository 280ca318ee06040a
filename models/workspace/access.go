// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package workspace

import (
	"context"
)

// HasWorkspaceAccess reports whether the user is the workspace owner or
// appears in its member list. Every read and write below a workspace is
// guarded by this check. It is recomputed from fresh rows on every call:
// membership can change between requests and a stale answer would be a
// security defect, so there is no caching layer.
func HasWorkspaceAccess(ctx context.Context, userID int64, w *Workspace) (bool, error) {
	if userID <= 0 || w == nil {
		return false, nil
	}
	if w.OwnerID == userID {
		return true, nil
	}
	return IsWorkspaceMember(ctx, w.ID, userID)
}
