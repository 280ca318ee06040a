// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package unittest

import (
	activities_model "code.questhq.io/quest/models/activities"
	issues_model "code.questhq.io/quest/models/issues"
	project_model "code.questhq.io/quest/models/project"
	user_model "code.questhq.io/quest/models/user"
	workspace_model "code.questhq.io/quest/models/workspace"

	"xorm.io/xorm"
)

// The fixture scenario: user 1 owns workspace 1 with user 2 as a
// developer member; project 1 "ENG" holds two issues; user 3 has an
// account but no membership anywhere.
func fixtureBeans() []any {
	users := []*user_model.User{
		{ID: 1, Name: "alice", Email: "alice@example.com"},
		{ID: 2, Name: "bob", Email: "bob@example.com"},
		{ID: 3, Name: "charlie", Email: "charlie@example.com"},
	}
	for _, u := range users {
		if err := u.SetPassword("password"); err != nil {
			panic(err)
		}
	}

	return []any{
		users[0], users[1], users[2],

		&workspace_model.Workspace{ID: 1, Name: "Acme", Slug: "acme", OwnerID: 1, CreatedUnix: 1700000000},
		&workspace_model.WorkspaceMember{ID: 1, WorkspaceID: 1, UserID: 1, Role: workspace_model.RoleAdmin},
		&workspace_model.WorkspaceMember{ID: 2, WorkspaceID: 1, UserID: 2, Role: workspace_model.RoleDeveloper},

		&workspace_model.Invitation{
			ID: 1, WorkspaceID: 1, Email: "dave@example.com", Role: workspace_model.RoleTester,
			Token: "11111111-2222-3333-4444-555555555555", InviterID: 1, CreatedUnix: 1700000100,
		},

		&project_model.Project{ID: 1, WorkspaceID: 1, Name: "Engine", Key: "ENG", NumIssues: 2, CreatedUnix: 1700000200},
		&project_model.Label{ID: 1, ProjectID: 1, Name: "backend", Color: "#00aabb", CreatedUnix: 1700000300},
		&project_model.Label{ID: 2, ProjectID: 1, Name: "frontend", Color: "#bb00aa", CreatedUnix: 1700000300},
		&project_model.Sprint{ID: 1, ProjectID: 1, Name: "Sprint 1", Status: project_model.SprintStatusPlanned, CreatedUnix: 1700000400},

		&issues_model.Issue{
			ID: 1, ProjectID: 1, Num: 1, Key: "ENG-1", Title: "First issue",
			Type: issues_model.TypeTask, Status: issues_model.StatusTodo,
			Priority: issues_model.PriorityMedium, Sorting: 1,
			ReporterID: 1, CreatedUnix: 1700001000, UpdatedUnix: 1700001000,
		},
		&issues_model.Issue{
			ID: 2, ProjectID: 1, Num: 2, Key: "ENG-2", Title: "Second issue",
			Type: issues_model.TypeBug, Status: issues_model.StatusBacklog,
			Priority: issues_model.PriorityHigh, Sorting: 1,
			AssigneeID: 2, ReporterID: 1, CreatedUnix: 1700002000, UpdatedUnix: 1700002000,
		},

		&issues_model.IssueLabel{ID: 1, IssueID: 1, LabelID: 1},
		&issues_model.Comment{ID: 1, IssueID: 1, PosterID: 2, Content: "On it", CreatedUnix: 1700003000},
		&issues_model.Attachment{
			ID: 1, UUID: "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee",
			IssueID: 1, UploaderID: 1, Name: "design.pdf", Size: 1024, CreatedUnix: 1700003100,
		},

		&activities_model.Activity{
			ID: 1, OpType: activities_model.ActivityOpCreateIssue, ActUserID: 1,
			WorkspaceID: 1, ProjectID: 1, IssueID: 1, Content: "ENG-1", CreatedUnix: 1700001001,
		},
		&activities_model.Notification{
			ID: 1, UserID: 2, Status: activities_model.NotificationStatusUnread,
			IssueID: 2, UpdatedBy: 1, CreatedUnix: 1700002001, UpdatedUnix: 1700002001,
		},
	}
}

func loadFixtures(e *xorm.Engine) error {
	sess := e.NewSession()
	defer sess.Close()
	if err := sess.Begin(); err != nil {
		return err
	}
	for _, bean := range fixtureBeans() {
		if _, err := sess.NoAutoTime().Insert(bean); err != nil {
			return err
		}
	}
	return sess.Commit()
}
