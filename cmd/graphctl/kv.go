// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Graphctl Contributors

package main

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/graphctl-dev/graphctl/internal/graph"
	gerr "github.com/graphctl-dev/graphctl/pkg/errors"
	"gopkg.in/yaml.v3"
)

// parseProps turns key=value arguments into properties. The value is taken
// as decoded JSON when it parses; otherwise the raw text becomes a JSON
// string literal at write time.
func parseProps(args []string) ([]graph.Property, error) {
	if len(args) == 0 {
		return nil, nil
	}

	props := make([]graph.Property, 0, len(args))
	for _, arg := range args {
		key, raw, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, gerr.New(gerr.CodeCLIInputInvalid,
				"property must be key=value", gerr.Field("arg", arg))
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, gerr.New(gerr.CodeCLIInputInvalid,
				"property key must not be empty", gerr.Field("arg", arg))
		}

		var val any
		if err := json.Unmarshal([]byte(raw), &val); err != nil {
			val = raw
		}
		props = append(props, graph.Property{Key: key, Value: val})
	}
	return props, nil
}

// renderYAML writes v to w as a YAML document.
func renderYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return gerr.Wrap(err, gerr.CodeCLISetupFailure, "rendering output")
	}
	return enc.Close()
}
