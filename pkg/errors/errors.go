// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Graphctl Contributors

package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/samber/oops"
)

// Code is the machine-readable identifier for an error.
type Code string

const (
	CodeDBConnectionFailure Code = "db.connection.failure"
	CodeDBMigrationFailure  Code = "db.migration.failure"
	CodeDBQueryFailure      Code = "db.query.failure"

	CodeGraphInputInvalid     Code = "graph.input.invalid"
	CodeGraphNodeNotFound     Code = "graph.node.get.not_found"
	CodeGraphEdgeNotFound     Code = "graph.edge.get.not_found"
	CodeGraphEndpointNotFound Code = "graph.edge.endpoint.not_found"
	CodeGraphDuplicateKey     Code = "graph.props.duplicate_key"

	CodeConfigLoadReadFailure      Code = "config.load.read.failure"
	CodeConfigValidateInvalidValue Code = "config.validate.invalid_value"
	CodeConfigWriteFailure         Code = "config.write.failure"

	CodeSecretInvalidInput  Code = "secret.invalid_input"
	CodeSecretNotFound      Code = "secret.not_found"
	CodeSecretStoreFailure  Code = "secret.store.failure"
	CodeSecretDeleteFailure Code = "secret.delete.failure"
	CodeSecretListFailure   Code = "secret.list.failure"

	CodeCLIInputInvalid Code = "cli.input.invalid"
	CodeCLISetupFailure Code = "cli.setup.failure"
)

// Attr is a structured key/value context attached to an error.
type Attr struct {
	Key   string
	Value any
}

// Field creates a structured error field.
func Field(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

func FieldNodeID(value string) Attr {
	return Field("node_id", value)
}

func FieldEdgeID(value string) Attr {
	return Field("edge_id", value)
}

func FieldPropKey(value string) Attr {
	return Field("prop_key", value)
}

func New(code Code, msg string, fields ...Attr) error {
	return oops.Code(code).With(flatten(fields)...).New(msg)
}

func Errorf(code Code, format string, args ...any) error {
	return oops.Code(code).Errorf(format, args...)
}

func Wrap(err error, code Code, msg string, fields ...Attr) error {
	if err == nil {
		return nil
	}

	return oops.Code(code).With(flatten(fields)...).Wrapf(err, "%s", msg)
}

func Wrapf(err error, code Code, format string, args ...any) error {
	if err == nil {
		return nil
	}

	return oops.Code(code).Wrapf(err, format, args...)
}

func CodeOf(err error) Code {
	if err == nil {
		return ""
	}

	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ""
	}

	if code, ok := oopsErr.Code().(Code); ok {
		return code
	}

	if code, ok := oopsErr.Code().(string); ok {
		return Code(code)
	}

	return Code(fmt.Sprintf("%v", oopsErr.Code()))
}

func FieldsOf(err error) map[string]any {
	if err == nil {
		return nil
	}

	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return nil
	}

	return oopsErr.Context()
}

func HasCode(err error, code Code) bool {
	if err == nil {
		return false
	}
	return CodeOf(err) == code
}

func IsNotFound(err error) bool {
	return reason(CodeOf(err)) == "not_found"
}

func IsDuplicateKey(err error) bool {
	return reason(CodeOf(err)) == "duplicate_key"
}

func IsReference(err error) bool {
	return HasCode(err, CodeGraphEndpointNotFound)
}

func IsValidation(err error) bool {
	r := reason(CodeOf(err))
	return r == "invalid" || r == "invalid_input" || r == "invalid_value"
}

func IsConnection(err error) bool {
	return HasCode(err, CodeDBConnectionFailure)
}

func IsMigration(err error) bool {
	return HasCode(err, CodeDBMigrationFailure)
}

func Join(errs ...error) error {
	return oops.Code(CodeDBQueryFailure).Wrap(stderrors.Join(errs...))
}

func flatten(fields []Attr) []any {
	pairs := make([]any, 0, len(fields)*2)
	for _, field := range fields {
		if field.Key == "" {
			continue
		}
		pairs = append(pairs, field.Key, field.Value)
	}
	return pairs
}

func reason(code Code) string {
	if code == "" {
		return ""
	}

	raw := string(code)
	idx := strings.LastIndex(raw, ".")
	if idx == -1 || idx == len(raw)-1 {
		return raw
	}
	return raw[idx+1:]
}
