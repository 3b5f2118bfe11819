// Copyright (c) 2026 Encore. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/encore/internal/platform/apperr"
	"github.com/taibuivan/encore/internal/platform/respond"
)

func TestOK_WrapsData(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.OK(recorder, map[string]int{"count": 2})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":{"count":2}}`, recorder.Body.String())
}

/*
TestError_Envelope checks the status and code mapping of the error taxonomy,
and that unknown errors never leak their message.
*/
func TestError_Envelope(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not_found", apperr.NotFound("Venue"), http.StatusNotFound, apperr.CodeNotFound},
		{"validation", apperr.ValidationError("bad", apperr.FieldError{Field: "name", Message: "required"}), http.StatusBadRequest, apperr.CodeValidation},
		{"storage", apperr.Storage(errors.New("pq: deadlock")), http.StatusInternalServerError, apperr.CodeStorage},
		{"unknown", errors.New("secret internals"), http.StatusInternalServerError, apperr.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			respond.Error(recorder, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.status, recorder.Code)

			var body respond.ErrorEnvelope
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.NotContains(t, body.Error, "secret")
			assert.NotContains(t, body.Error, "deadlock")
		})
	}
}
