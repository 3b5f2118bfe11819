// Copyright (c) 2026 Encore. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/encore/internal/platform/apperr"
)

/*
TestStorage_HidesCause verifies the storage error keeps its cause for logging only.
*/
func TestStorage_HidesCause(t *testing.T) {
	cause := errors.New("deadlock detected")
	err := apperr.Storage(cause)

	assert.Equal(t, apperr.CodeStorage, err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus)
	assert.NotContains(t, err.Error(), "deadlock")
	assert.ErrorIs(t, err, cause)
}

/*
TestClassifiers checks the code helpers against wrapped errors.
*/
func TestClassifiers(t *testing.T) {
	wrapped := fmt.Errorf("delete venue: %w", apperr.NotFound("Venue"))

	assert.True(t, apperr.IsNotFound(wrapped))
	assert.False(t, apperr.IsStorage(wrapped))
	assert.True(t, apperr.IsValidation(apperr.ValidationError("bad")))
	assert.True(t, apperr.IsStorage(apperr.Storage(nil)))
	assert.False(t, apperr.IsNotFound(errors.New("plain")))

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, "Venue not found", ae.Message)
}
