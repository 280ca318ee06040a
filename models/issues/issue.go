// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package issues models the trackable unit of work. Issues live on a
// per-project board ordered by a persisted sorting value inside each
// status group; an issue with a parent is a subtask and the nesting
// depth is capped at one level.
package issues

import (
	"context"
	"fmt"

	"code.questhq.io/quest/models/db"
	project_model "code.questhq.io/quest/models/project"
	"code.questhq.io/quest/modules/timeutil"
	"code.questhq.io/quest/modules/util"
)

// IssueType categorizes an issue
type IssueType string

// Issue types
const (
	TypeEpic  IssueType = "EPIC"
	TypeStory IssueType = "STORY"
	TypeTask  IssueType = "TASK"
	TypeBug   IssueType = "BUG"
)

// IsValidType checks if the type is a known issue type
func IsValidType(t IssueType) bool {
	switch t {
	case TypeEpic, TypeStory, TypeTask, TypeBug:
		return true
	default:
		return false
	}
}

// IssueStatus is the board column an issue lives in
type IssueStatus string

// Issue statuses, board column order
const (
	StatusBacklog    IssueStatus = "BACKLOG"
	StatusTodo       IssueStatus = "TODO"
	StatusInProgress IssueStatus = "IN_PROGRESS"
	StatusInReview   IssueStatus = "IN_REVIEW"
	StatusDone       IssueStatus = "DONE"
	StatusCancelled  IssueStatus = "CANCELLED"
)

// IsValidStatus checks if the status is a known issue status
func IsValidStatus(s IssueStatus) bool {
	switch s {
	case StatusBacklog, StatusTodo, StatusInProgress, StatusInReview, StatusDone, StatusCancelled:
		return true
	default:
		return false
	}
}

// IssuePriority ranks an issue
type IssuePriority string

// Issue priorities
const (
	PriorityUrgent IssuePriority = "URGENT"
	PriorityHigh   IssuePriority = "HIGH"
	PriorityMedium IssuePriority = "MEDIUM"
	PriorityLow    IssuePriority = "LOW"
	PriorityNone   IssuePriority = "NONE"
)

// IsValidPriority checks if the priority is a known issue priority
func IsValidPriority(p IssuePriority) bool {
	switch p {
	case PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow, PriorityNone:
		return true
	default:
		return false
	}
}

// ErrIssueNotExist represents a "IssueNotExist" kind of error.
type ErrIssueNotExist struct {
	ID int64
}

// IsErrIssueNotExist checks if an error is a ErrIssueNotExist.
func IsErrIssueNotExist(err error) bool {
	_, ok := err.(ErrIssueNotExist)
	return ok
}

func (err ErrIssueNotExist) Error() string {
	return fmt.Sprintf("issue does not exist [id: %d]", err.ID)
}

func (err ErrIssueNotExist) Unwrap() error {
	return util.ErrNotExist
}

// ErrNestedSubtask is returned when a parent assignment would exceed the
// single nesting level: the chosen parent is itself a subtask, or the
// issue already has subtasks of its own.
type ErrNestedSubtask struct {
	IssueID  int64
	ParentID int64
}

// IsErrNestedSubtask checks if an error is a ErrNestedSubtask.
func IsErrNestedSubtask(err error) bool {
	_, ok := err.(ErrNestedSubtask)
	return ok
}

func (err ErrNestedSubtask) Error() string {
	return fmt.Sprintf("subtasks cannot be nested [issue_id: %d, parent_id: %d]", err.IssueID, err.ParentID)
}

func (err ErrNestedSubtask) Unwrap() error {
	return util.ErrInvalidArgument
}

// Issue represents an issue of a project
type Issue struct {
	ID          int64  `xorm:"pk autoincr" json:"id"`
	ProjectID   int64  `xorm:"UNIQUE(num) INDEX NOT NULL" json:"projectId"`
	Num         int64  `xorm:"UNIQUE(num) NOT NULL" json:"-"`
	Key         string `xorm:"VARCHAR(21) NOT NULL" json:"key"`
	Title       string `xorm:"NOT NULL" json:"title"`
	Description string `xorm:"TEXT" json:"description,omitempty"`

	Type     IssueType     `xorm:"VARCHAR(10) NOT NULL" json:"type"`
	Status   IssueStatus   `xorm:"INDEX VARCHAR(15) NOT NULL" json:"status"`
	Priority IssuePriority `xorm:"VARCHAR(10) NOT NULL" json:"priority"`

	// Sorting is the position inside the (project, status) group. Values
	// are unique there after any single non-concurrent mutation but need
	// not be contiguous; ties from racing reorders are tolerated and
	// broken by id.
	Sorting int64 `xorm:"NOT NULL DEFAULT 0" json:"order"`

	AssigneeID int64              `xorm:"INDEX" json:"assigneeId,omitempty"`
	ReporterID int64              `xorm:"INDEX NOT NULL" json:"reporterId"`
	ParentID   int64              `xorm:"INDEX" json:"parentId,omitempty"`
	SprintID   int64              `xorm:"INDEX" json:"sprintId,omitempty"`
	DueUnix    timeutil.TimeStamp `json:"dueDate,omitempty"`

	Project *project_model.Project `xorm:"-" json:"-"`
	Labels  []*project_model.Label `xorm:"-" json:"labels,omitempty"`

	CreatedUnix timeutil.TimeStamp `xorm:"INDEX created" json:"created"`
	UpdatedUnix timeutil.TimeStamp `xorm:"INDEX updated" json:"updated"`
}

func init() {
	db.RegisterModel(new(Issue))
}

// IsSubtask returns true when the issue has a parent
func (issue *Issue) IsSubtask() bool {
	return issue.ParentID > 0
}

// LoadProject loads the owning project association
func (issue *Issue) LoadProject(ctx context.Context) (err error) {
	if issue.Project != nil {
		return nil
	}
	issue.Project, err = project_model.GetProjectByID(ctx, issue.ProjectID)
	return err
}

// maxSorting returns the highest sorting value inside a (project, status)
// group, 0 when the group is empty.
func maxSorting(ctx context.Context, projectID int64, status IssueStatus) (int64, error) {
	res := struct {
		MaxSorting int64
	}{}
	_, err := db.GetEngine(ctx).Select("COALESCE(MAX(sorting), 0) AS max_sorting").
		Table("issue").
		Where("project_id = ? AND status = ?", projectID, status).
		Get(&res)
	return res.MaxSorting, err
}

// checkParent validates a parent assignment: the parent must exist in the
// same project, must not be a subtask itself, must not be the issue, and
// the issue must not have subtasks of its own.
func checkParent(ctx context.Context, issueID, projectID, parentID int64) error {
	if parentID == issueID {
		return util.NewInvalidArgumentErrorf("issue cannot be its own parent")
	}
	parent, err := GetIssueByID(ctx, parentID)
	if err != nil {
		return err
	}
	if parent.ProjectID != projectID {
		return util.NewInvalidArgumentErrorf("parent issue belongs to another project")
	}
	if parent.IsSubtask() {
		return ErrNestedSubtask{IssueID: issueID, ParentID: parentID}
	}
	if issueID > 0 {
		hasChildren, err := db.GetEngine(ctx).Where("parent_id = ?", issueID).Exist(new(Issue))
		if err != nil {
			return err
		}
		if hasChildren {
			return ErrNestedSubtask{IssueID: issueID, ParentID: parentID}
		}
	}
	return nil
}

// NewIssue creates a new issue in the given project. The issue number and
// key are allocated from the project counter and the issue is appended to
// the end of its status group, all in one transaction.
func NewIssue(ctx context.Context, p *project_model.Project, issue *Issue, labelIDs []int64) error {
	if issue.Title == "" {
		return util.NewInvalidArgumentErrorf("issue title is empty")
	}
	if !IsValidType(issue.Type) {
		return util.NewInvalidArgumentErrorf("issue type is not valid: %s", issue.Type)
	}
	if !IsValidPriority(issue.Priority) {
		return util.NewInvalidArgumentErrorf("issue priority is not valid: %s", issue.Priority)
	}
	if issue.Status == "" {
		issue.Status = StatusBacklog
	} else if !IsValidStatus(issue.Status) {
		return util.NewInvalidArgumentErrorf("issue status is not valid: %s", issue.Status)
	}
	if issue.ReporterID <= 0 {
		return util.NewInvalidArgumentErrorf("issue reporter is missing")
	}

	return db.WithTx(ctx, func(ctx context.Context) error {
		if issue.ParentID > 0 {
			if err := checkParent(ctx, 0, p.ID, issue.ParentID); err != nil {
				return err
			}
		}

		num, err := project_model.NextIssueNum(ctx, p.ID)
		if err != nil {
			return err
		}
		issue.ProjectID = p.ID
		issue.Num = num
		issue.Key = fmt.Sprintf("%s-%d", p.Key, num)

		max, err := maxSorting(ctx, p.ID, issue.Status)
		if err != nil {
			return err
		}
		issue.Sorting = max + 1

		if err := db.Insert(ctx, issue); err != nil {
			return err
		}
		return replaceIssueLabels(ctx, issue, labelIDs)
	})
}

// GetIssueByID returns the issue by given ID if exists.
func GetIssueByID(ctx context.Context, id int64) (*Issue, error) {
	issue := new(Issue)
	has, err := db.GetEngine(ctx).ID(id).Get(issue)
	if err != nil {
		return nil, err
	} else if !has {
		return nil, ErrIssueNotExist{ID: id}
	}
	return issue, nil
}

// GetIssuesByIDs returns the issues with the given ids, in no particular
// order. Missing ids are not an error here, callers check the lengths.
func GetIssuesByIDs(ctx context.Context, ids []int64) ([]*Issue, error) {
	issues := make([]*Issue, 0, len(ids))
	if len(ids) == 0 {
		return issues, nil
	}
	return issues, db.GetEngine(ctx).In("id", ids).Find(&issues)
}

// GetSubtasks returns the direct subtasks of an issue ordered by their
// board position.
func GetSubtasks(ctx context.Context, parentID int64) ([]*Issue, error) {
	issues := make([]*Issue, 0, 5)
	return issues, db.GetEngine(ctx).
		Where("parent_id = ?", parentID).
		OrderBy("sorting, id").Find(&issues)
}

// UpdateIssueCols updates the given columns of the issue record
func UpdateIssueCols(ctx context.Context, issue *Issue, cols ...string) error {
	_, err := db.GetEngine(ctx).ID(issue.ID).Cols(cols...).Update(issue)
	return err
}

// ChangeStatus moves the issue to another status group, appending it at
// the end. Explicit board positions go through ChangePosition instead.
func ChangeStatus(ctx context.Context, issue *Issue, status IssueStatus) error {
	if !IsValidStatus(status) {
		return util.NewInvalidArgumentErrorf("issue status is not valid: %s", status)
	}
	if issue.Status == status {
		return nil
	}
	return db.AutoTx(ctx, func(ctx context.Context) error {
		max, err := maxSorting(ctx, issue.ProjectID, status)
		if err != nil {
			return err
		}
		issue.Status = status
		issue.Sorting = max + 1
		return UpdateIssueCols(ctx, issue, "status", "sorting")
	})
}

// ChangePosition moves the issue to a caller-computed position, possibly
// in another status group. The board projector never assigns positions,
// position assignment stays at this write boundary; colliding sorting
// values from racing moves are tolerated and tie-broken by id on read.
func ChangePosition(ctx context.Context, issue *Issue, status IssueStatus, sorting int64) error {
	if !IsValidStatus(status) {
		return util.NewInvalidArgumentErrorf("issue status is not valid: %s", status)
	}
	issue.Status = status
	issue.Sorting = sorting
	return UpdateIssueCols(ctx, issue, "status", "sorting")
}

// ChangeParent sets or clears the parent of the issue after validating
// the single nesting level.
func ChangeParent(ctx context.Context, issue *Issue, parentID int64) error {
	if parentID > 0 {
		if err := checkParent(ctx, issue.ID, issue.ProjectID, parentID); err != nil {
			return err
		}
	}
	issue.ParentID = parentID
	return UpdateIssueCols(ctx, issue, "parent_id")
}

// DeleteIssue removes the issue, its subtasks and all dependent rows in
// one transaction. Deletes are explicit and ordered, there is no
// store-level cascade.
func DeleteIssue(ctx context.Context, issue *Issue) error {
	return db.AutoTx(ctx, func(ctx context.Context) error {
		subtasks, err := GetSubtasks(ctx, issue.ID)
		if err != nil {
			return err
		}
		for _, subtask := range subtasks {
			if err := deleteIssue(ctx, subtask); err != nil {
				return err
			}
		}
		return deleteIssue(ctx, issue)
	})
}

func deleteIssue(ctx context.Context, issue *Issue) error {
	for _, sql := range []string{
		"DELETE FROM comment WHERE issue_id = ?",
		"DELETE FROM attachment WHERE issue_id = ?",
		"DELETE FROM issue_label WHERE issue_id = ?",
		"DELETE FROM notification WHERE issue_id = ?",
		"DELETE FROM activity WHERE issue_id = ?",
	} {
		if _, err := db.Exec(ctx, sql, issue.ID); err != nil {
			return err
		}
	}
	_, err := db.GetEngine(ctx).ID(issue.ID).NoAutoCondition().Delete(issue)
	return err
}

// CountProjectIssues counts all issues of a project
func CountProjectIssues(ctx context.Context, projectID int64) (int64, error) {
	return db.GetEngine(ctx).Where("project_id = ?", projectID).Count(new(Issue))
}

// DeleteProjectIssues removes every issue of a project with the full
// per-issue cascade, used when a project is deleted.
func DeleteProjectIssues(ctx context.Context, projectID int64) error {
	return db.AutoTx(ctx, func(ctx context.Context) error {
		issues := make([]*Issue, 0, 10)
		if err := db.GetEngine(ctx).Where("project_id = ?", projectID).Find(&issues); err != nil {
			return err
		}
		for _, issue := range issues {
			if err := deleteIssue(ctx, issue); err != nil {
				return err
			}
		}
		return nil
	})
}
