// Copyright 2024 The Quest Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package util

// SliceContains returns true if the target exists in the slice
func SliceContains[T comparable](slice []T, target T) bool {
	for i := range slice {
		if slice[i] == target {
			return true
		}
	}
	return false
}
