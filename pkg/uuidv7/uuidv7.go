// Copyright (c) 2026 Encore. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuidv7 wraps google/uuid to generate time-ordered UUIDv7 values.
//
// They are used as request correlation IDs, so log lines of one request sort
// together with the time it arrived.
package uuidv7

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
//
// If the OS random source fails while reading the v7 random bits, a random
// v4 UUID is returned instead.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
