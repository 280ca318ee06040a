// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package structs holds the request and response bodies of the API.
// Request types carry binding tags, validation failures surface as 422.
package structs

// SignUpOption options when registering a user
type SignUpOption struct {
	Name     string `json:"name" binding:"Required;MaxSize(100)"`
	Email    string `json:"email" binding:"Required;Email;MaxSize(254)"`
	Password string `json:"password" binding:"Required;MinSize(8);MaxSize(255)"`
}

// SignInOption options when authenticating a user
type SignInOption struct {
	Email    string `json:"email" binding:"Required;Email"`
	Password string `json:"password" binding:"Required"`
}

// EditUserOption options when updating the signed-in user's profile
type EditUserOption struct {
	Name   *string `json:"name" binding:"MaxSize(100)"`
	Avatar *string `json:"image" binding:"MaxSize(2048)"`
}
