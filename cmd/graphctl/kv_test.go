// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Graphctl Contributors

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphctl-dev/graphctl/internal/graph"
	gerr "github.com/graphctl-dev/graphctl/pkg/errors"
)

func TestParseProps(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []graph.Property
	}{
		{
			name: "empty args",
			args: nil,
			want: nil,
		},
		{
			name: "string value",
			args: []string{"name=Ada"},
			want: []graph.Property{{Key: "name", Value: "Ada"}},
		},
		{
			name: "json number",
			args: []string{"born=1815"},
			want: []graph.Property{{Key: "born", Value: float64(1815)}},
		},
		{
			name: "json bool",
			args: []string{"active=true"},
			want: []graph.Property{{Key: "active", Value: true}},
		},
		{
			name: "json array",
			args: []string{`tags=["a","b"]`},
			want: []graph.Property{{Key: "tags", Value: []any{"a", "b"}}},
		},
		{
			name: "quoted json string keeps quotes out",
			args: []string{`title="Countess"`},
			want: []graph.Property{{Key: "title", Value: "Countess"}},
		},
		{
			name: "value containing equals sign",
			args: []string{"expr=a=b"},
			want: []graph.Property{{Key: "expr", Value: "a=b"}},
		},
		{
			name: "key is trimmed",
			args: []string{"  name =Ada"},
			want: []graph.Property{{Key: "name", Value: "Ada"}},
		},
		{
			name: "order preserved",
			args: []string{"b=2", "a=1"},
			want: []graph.Property{
				{Key: "b", Value: float64(2)},
				{Key: "a", Value: float64(1)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseProps(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePropsInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "missing equals", args: []string{"name"}},
		{name: "empty key", args: []string{"=Ada"}},
		{name: "whitespace key", args: []string{"  =Ada"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseProps(tt.args)
			require.Error(t, err)
			assert.Equal(t, gerr.CodeCLIInputInvalid, gerr.CodeOf(err))
		})
	}
}

func TestRenderYAML(t *testing.T) {
	var buf bytes.Buffer
	err := renderYAML(&buf, map[string]any{"id": "n-1"})
	require.NoError(t, err)
	assert.Equal(t, "id: n-1\n", buf.String())
}
