// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package structs

// CreateProjectOption options when creating a project
type CreateProjectOption struct {
	Name        string `json:"name" binding:"Required;MaxSize(100)"`
	Key         string `json:"key" binding:"Required;MaxSize(10)"`
	Description string `json:"description" binding:"MaxSize(2000)"`
	LeadID      int64  `json:"leadId"`
}

// EditProjectOption options when updating a project
type EditProjectOption struct {
	Name        *string `json:"name" binding:"MaxSize(100)"`
	Description *string `json:"description" binding:"MaxSize(2000)"`
	LeadID      *int64  `json:"leadId"`
}

// CreateLabelOption options when creating a label
type CreateLabelOption struct {
	Name  string `json:"name" binding:"Required;MaxSize(50)"`
	Color string `json:"color" binding:"Required;MaxSize(7)"`
}

// EditLabelOption options when updating a label
type EditLabelOption struct {
	Name  *string `json:"name" binding:"MaxSize(50)"`
	Color *string `json:"color" binding:"MaxSize(7)"`
}

// CreateSprintOption options when creating a sprint
type CreateSprintOption struct {
	Name      string `json:"name" binding:"Required;MaxSize(100)"`
	Goal      string `json:"goal" binding:"MaxSize(2000)"`
	StartDate int64  `json:"startDate"`
	EndDate   int64  `json:"endDate"`
}

// EditSprintOption options when updating a sprint
type EditSprintOption struct {
	Name      *string `json:"name" binding:"MaxSize(100)"`
	Goal      *string `json:"goal" binding:"MaxSize(2000)"`
	Status    *string `json:"status"`
	StartDate *int64  `json:"startDate"`
	EndDate   *int64  `json:"endDate"`
}
