// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package v1 registers the HTTP surface. Handlers authenticate the
// session, authorize through workspace membership, validate the request
// body and delegate to the models or services.
package v1

import (
	"net/http"
	"reflect"

	issues_model "code.questhq.io/quest/models/issues"
	project_model "code.questhq.io/quest/models/project"
	workspace_model "code.questhq.io/quest/models/workspace"
	"code.questhq.io/quest/modules/context"
	"code.questhq.io/quest/modules/setting"
	api "code.questhq.io/quest/modules/structs"
	"code.questhq.io/quest/modules/web"
	"code.questhq.io/quest/routers/api/v1/issue"
	"code.questhq.io/quest/routers/api/v1/notify"
	"code.questhq.io/quest/routers/api/v1/project"
	"code.questhq.io/quest/routers/api/v1/user"
	"code.questhq.io/quest/routers/api/v1/workspace"
	"code.questhq.io/quest/routers/common"

	"gitea.com/go-chi/binding"
	"gitea.com/go-chi/session"
	"github.com/go-chi/cors"
)

// bind binding an obj to a func(ctx *context.APIContext)
func bind(obj any) http.HandlerFunc {
	tp := reflect.TypeOf(obj)
	for tp.Kind() == reflect.Ptr {
		tp = tp.Elem()
	}
	return web.Wrap(func(ctx *context.APIContext) {
		theObj := reflect.New(tp).Interface() // create a new form obj for every request but not use obj directly
		errs := binding.Bind(ctx.Req, theObj)
		if len(errs) > 0 {
			ctx.Error(http.StatusUnprocessableEntity, "validationError", errs[0].Error())
			return
		}
		web.SetForm(ctx, theObj)
	})
}

func reqSignIn() func(ctx *context.APIContext) {
	return func(ctx *context.APIContext) {
		if !ctx.IsSigned() {
			ctx.Error(http.StatusUnauthorized, "reqSignIn", "sign in required")
		}
	}
}

// workspaceAssignment loads the workspace from the id parameter and
// checks the doer's access: unknown ids are 404, existing workspaces
// without access are 403.
func workspaceAssignment() func(ctx *context.APIContext) {
	return func(ctx *context.APIContext) {
		w, err := workspace_model.GetWorkspaceByID(ctx.Req.Context(), ctx.ParamsInt64("id"))
		if err != nil {
			if workspace_model.IsErrWorkspaceNotExist(err) {
				ctx.NotFound(err)
			} else {
				ctx.InternalServerError(err)
			}
			return
		}
		access, err := workspace_model.HasWorkspaceAccess(ctx.Req.Context(), ctx.Doer.ID, w)
		if err != nil {
			ctx.InternalServerError(err)
			return
		}
		if !access {
			ctx.Error(http.StatusForbidden, "workspaceAssignment", "no access to this workspace")
			return
		}
		ctx.Workspace = w
	}
}

// projectAssignment loads the project from the id parameter together
// with its workspace and checks the doer's access.
func projectAssignment() func(ctx *context.APIContext) {
	return func(ctx *context.APIContext) {
		p, err := project_model.GetProjectByID(ctx.Req.Context(), ctx.ParamsInt64("id"))
		if err != nil {
			if project_model.IsErrProjectNotExist(err) {
				ctx.NotFound(err)
			} else {
				ctx.InternalServerError(err)
			}
			return
		}
		w, err := workspace_model.GetWorkspaceByID(ctx.Req.Context(), p.WorkspaceID)
		if err != nil {
			ctx.InternalServerError(err)
			return
		}
		access, err := workspace_model.HasWorkspaceAccess(ctx.Req.Context(), ctx.Doer.ID, w)
		if err != nil {
			ctx.InternalServerError(err)
			return
		}
		if !access {
			ctx.Error(http.StatusForbidden, "projectAssignment", "no access to this workspace")
			return
		}
		ctx.Workspace = w
		ctx.Project = p
	}
}

// issueAssignment loads the issue from the id parameter together with
// its project and workspace and checks the doer's access.
func issueAssignment() func(ctx *context.APIContext) {
	return func(ctx *context.APIContext) {
		iss, err := issues_model.GetIssueByID(ctx.Req.Context(), ctx.ParamsInt64("id"))
		if err != nil {
			if issues_model.IsErrIssueNotExist(err) {
				ctx.NotFound(err)
			} else {
				ctx.InternalServerError(err)
			}
			return
		}
		p, err := project_model.GetProjectByID(ctx.Req.Context(), iss.ProjectID)
		if err != nil {
			ctx.InternalServerError(err)
			return
		}
		w, err := workspace_model.GetWorkspaceByID(ctx.Req.Context(), p.WorkspaceID)
		if err != nil {
			ctx.InternalServerError(err)
			return
		}
		access, err := workspace_model.HasWorkspaceAccess(ctx.Req.Context(), ctx.Doer.ID, w)
		if err != nil {
			ctx.InternalServerError(err)
			return
		}
		if !access {
			ctx.Error(http.StatusForbidden, "issueAssignment", "no access to this workspace")
			return
		}
		iss.Project = p
		ctx.Workspace = w
		ctx.Project = p
		ctx.Issue = iss
	}
}

// Routes registers all v1 APIs routes to web application.
func Routes() *web.Route {
	m := web.NewRoute()

	for _, mw := range common.Middlewares() {
		m.Use(mw)
	}

	m.Use(session.Sessioner(session.Options{
		Provider:       setting.SessionConfig.Provider,
		ProviderConfig: setting.SessionConfig.ProviderConfig,
		CookieName:     setting.SessionConfig.CookieName,
		CookiePath:     setting.SessionConfig.CookiePath,
		Gclifetime:     setting.SessionConfig.Gclifetime,
		Maxlifetime:    setting.SessionConfig.Maxlifetime,
		Secure:         setting.SessionConfig.Secure,
	}))
	if setting.CORSConfig.Enabled {
		m.Use(cors.Handler(cors.Options{
			AllowedOrigins:   setting.CORSConfig.AllowDomain,
			AllowedMethods:   setting.CORSConfig.Methods,
			AllowCredentials: setting.CORSConfig.AllowCredentials,
			MaxAge:           int(setting.CORSConfig.MaxAge.Seconds()),
		}))
	}
	m.Use(context.APIContexter())

	m.NotFound(func(resp http.ResponseWriter, req *http.Request) {
		ctx := context.GetAPIContext(req)
		ctx.NotFound()
	})

	m.Group("", func() {
		m.Post("/signup", bind(api.SignUpOption{}), user.SignUp)
		m.Post("/login", bind(api.SignInOption{}), user.SignIn)
		m.Post("/logout", user.SignOut)

		m.Group("/user", func() {
			m.Get("", user.GetCurrent)
			m.Patch("", bind(api.EditUserOption{}), user.Edit)
		}, reqSignIn())

		m.Group("/workspaces", func() {
			m.Get("", workspace.List)
			m.Post("", bind(api.CreateWorkspaceOption{}), workspace.Create)
			m.Group("/{id}", func() {
				m.Get("", workspace.Get)
				m.Patch("", bind(api.EditWorkspaceOption{}), workspace.Edit)
				m.Delete("", workspace.Delete)
				m.Get("/members", workspace.ListMembers)
				m.Delete("/members/{userID}", workspace.RemoveMember)
				m.Get("/projects", project.ListProjects)
				m.Post("/projects", bind(api.CreateProjectOption{}), project.Create)
				m.Get("/activities", workspace.Activities)
				m.Get("/invitations", workspace.ListInvitations)
				m.Post("/invitations", bind(api.CreateInvitationOption{}), workspace.Invite)
			}, workspaceAssignment())
		}, reqSignIn())

		m.Post("/invitations/accept", reqSignIn(), bind(api.AcceptInvitationOption{}), workspace.AcceptInvite)

		m.Group("/projects/{id}", func() {
			m.Get("", project.Get)
			m.Patch("", bind(api.EditProjectOption{}), project.Edit)
			m.Delete("", project.Delete)
			m.Get("/board", project.Board)
			m.Get("/backlog", project.Backlog)
			m.Get("/issues", issue.ListIssues)
			m.Post("/issues", bind(api.CreateIssueOption{}), issue.Create)
			m.Get("/labels", project.ListLabels)
			m.Post("/labels", bind(api.CreateLabelOption{}), project.CreateLabel)
			m.Patch("/labels/{labelID}", bind(api.EditLabelOption{}), project.EditLabel)
			m.Delete("/labels/{labelID}", project.DeleteLabel)
			m.Get("/sprints", project.ListSprints)
			m.Post("/sprints", bind(api.CreateSprintOption{}), project.CreateSprint)
			m.Patch("/sprints/{sprintID}", bind(api.EditSprintOption{}), project.EditSprint)
		}, reqSignIn(), projectAssignment())

		m.Group("/issues", func() {
			m.Post("/bulk", bind(api.BulkIssueOption{}), issue.Bulk)
			m.Group("/{id}", func() {
				m.Get("", issue.Get)
				m.Patch("", bind(api.EditIssueOption{}), issue.Edit)
				m.Delete("", issue.Delete)
				m.Post("/move", bind(api.MoveIssueOption{}), issue.Move)
				m.Get("/subtasks", issue.ListSubtasks)
				m.Get("/comments", issue.ListComments)
				m.Post("/comments", bind(api.CreateCommentOption{}), issue.CreateComment)
				m.Patch("/comments/{commentID}", bind(api.EditCommentOption{}), issue.EditComment)
				m.Delete("/comments/{commentID}", issue.DeleteComment)
				m.Get("/attachments", issue.ListAttachments)
				m.Post("/attachments", bind(api.CreateAttachmentOption{}), issue.CreateAttachment)
				m.Delete("/attachments/{attachmentID}", issue.DeleteAttachment)
			}, issueAssignment())
		}, reqSignIn())

		m.Group("/notifications", func() {
			m.Get("", notify.ListNotifications)
			m.Put("", notify.ReadNotifications)
			m.Get("/new", notify.NewAvailable)
			m.Patch("/{id}", notify.ReadNotification)
		}, reqSignIn())
	})

	return m
}
