// Copyright (c) 2026 Libris. All rights reserved.

package dberr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libris/libris/internal/platform/apperr"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"no rows maps to 404", pgx.ErrNoRows, http.StatusNotFound, "NOT_FOUND"},
		{"unique violation maps to 409", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, http.StatusConflict, "CONFLICT"},
		{"fk violation maps to 409", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, http.StatusConflict, "CONFLICT"},
		{"unknown pg error maps to 500", &pgconn.PgError{Code: pgerrcode.SyntaxError}, http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"arbitrary error maps to 500", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := Wrap(tc.err, "test_action")
			require.Error(t, wrapped)

			appErr := apperr.As(wrapped)
			require.NotNil(t, appErr)
			assert.Equal(t, tc.wantStatus, appErr.HTTPStatus)
			assert.Equal(t, tc.wantCode, appErr.Code)
		})
	}
}

func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "noop"))
}

func TestWrap_InternalHidesCause(t *testing.T) {
	cause := errors.New("syntax error at position 42")
	appErr := apperr.As(Wrap(cause, "query"))
	require.NotNil(t, appErr)

	assert.NotContains(t, appErr.Message, "syntax error", "client message must not leak SQL details")
	assert.ErrorIs(t, appErr, cause, "cause stays reachable for logging")
}
