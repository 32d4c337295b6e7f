// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Graphctl Contributors

package errors_test

import (
	stderrors "errors"
	"testing"

	gerr "github.com/graphctl-dev/graphctl/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIncludesCodeAndFields(t *testing.T) {
	err := gerr.New(
		gerr.CodeGraphEndpointNotFound,
		"edge endpoint missing",
		gerr.FieldNodeID("n-123"),
		gerr.Field("endpoint", "from"),
	)

	require.Error(t, err)
	assert.Equal(t, gerr.CodeGraphEndpointNotFound, gerr.CodeOf(err))
	assert.True(t, gerr.HasCode(err, gerr.CodeGraphEndpointNotFound))

	fields := gerr.FieldsOf(err)
	assert.Equal(t, "n-123", fields["node_id"])
	assert.Equal(t, "from", fields["endpoint"])
}

func TestErrorfFormatsMessage(t *testing.T) {
	err := gerr.Errorf(gerr.CodeGraphNodeNotFound, "node %s not found", "n-abc")
	require.Error(t, err)
	assert.Equal(t, gerr.CodeGraphNodeNotFound, gerr.CodeOf(err))
	assert.Contains(t, err.Error(), "node n-abc not found")
}

func TestErrorfWrapsInnerError(t *testing.T) {
	inner := stderrors.New("disk full")
	err := gerr.Errorf(gerr.CodeDBQueryFailure, "write failed: %w", inner)
	require.Error(t, err)
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, gerr.CodeDBQueryFailure, gerr.CodeOf(err))
}

func TestWrapPreservesWrappedErrorAndCode(t *testing.T) {
	root := stderrors.New("record missing")
	err := gerr.Wrap(
		root,
		gerr.CodeGraphEdgeNotFound,
		"loading edge",
		gerr.FieldEdgeID("e-42"),
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, root)
	assert.Equal(t, gerr.CodeGraphEdgeNotFound, gerr.CodeOf(err))
	assert.True(t, gerr.IsNotFound(err))
	assert.Equal(t, "e-42", gerr.FieldsOf(err)["edge_id"])
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.NoError(t, gerr.Wrap(nil, gerr.CodeDBQueryFailure, "ignored"))
	assert.NoError(t, gerr.Wrapf(nil, gerr.CodeDBQueryFailure, "ignored %s", "arg"))
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name string
		err  error
		pred func(error) bool
		want bool
	}{
		{"not found node", gerr.New(gerr.CodeGraphNodeNotFound, "x"), gerr.IsNotFound, true},
		{"not found edge", gerr.New(gerr.CodeGraphEdgeNotFound, "x"), gerr.IsNotFound, true},
		{"not found secret", gerr.New(gerr.CodeSecretNotFound, "x"), gerr.IsNotFound, true},
		{"duplicate key", gerr.New(gerr.CodeGraphDuplicateKey, "x"), gerr.IsDuplicateKey, true},
		{"reference", gerr.New(gerr.CodeGraphEndpointNotFound, "x"), gerr.IsReference, true},
		{"validation", gerr.New(gerr.CodeGraphInputInvalid, "x"), gerr.IsValidation, true},
		{"connection", gerr.New(gerr.CodeDBConnectionFailure, "x"), gerr.IsConnection, true},
		{"migration", gerr.New(gerr.CodeDBMigrationFailure, "x"), gerr.IsMigration, true},
		{"query is not migration", gerr.New(gerr.CodeDBQueryFailure, "x"), gerr.IsMigration, false},
		{"not found is not duplicate", gerr.New(gerr.CodeGraphNodeNotFound, "x"), gerr.IsDuplicateKey, false},
		{"plain error has no code", stderrors.New("plain"), gerr.IsNotFound, false},
		{"nil error", nil, gerr.IsNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pred(tt.err))
		})
	}
}

func TestCodeOfPlainError(t *testing.T) {
	assert.Equal(t, gerr.Code(""), gerr.CodeOf(stderrors.New("plain")))
	assert.Equal(t, gerr.Code(""), gerr.CodeOf(nil))
}
