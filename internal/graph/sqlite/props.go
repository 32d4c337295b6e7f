// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Graphctl Contributors

package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/graphctl-dev/graphctl/internal/graph"
	gerr "github.com/graphctl-dev/graphctl/pkg/errors"
)

// propStore holds the shared key/value logic for node_props and edge_props,
// parameterised by table and owner column. Table names are package
// constants, never caller input.
type propStore struct {
	table    string
	ownerCol string
}

// normalizeProps trims each key and rejects empty and duplicate keys. Keys
// keep their case for both nodes and edges. The result preserves input
// order so inserts are deterministic.
func normalizeProps(props []graph.Property) ([]graph.Property, error) {
	if len(props) == 0 {
		return nil, nil
	}

	out := make([]graph.Property, 0, len(props))
	seen := make(map[string]struct{}, len(props))
	for _, p := range props {
		key := strings.TrimSpace(p.Key)
		if key == "" {
			return nil, gerr.New(gerr.CodeGraphInputInvalid, "property key must not be empty")
		}
		if _, dup := seen[key]; dup {
			return nil, gerr.New(gerr.CodeGraphDuplicateKey,
				"property key supplied more than once", gerr.FieldPropKey(key))
		}
		seen[key] = struct{}{}
		out = append(out, graph.Property{Key: key, Value: p.Value})
	}
	return out, nil
}

// normalizeKeys applies the same trim rule to bare key lists (property
// removals).
func normalizeKeys(keys []string) ([]string, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		key := strings.TrimSpace(k)
		if key == "" {
			return nil, gerr.New(gerr.CodeGraphInputInvalid, "property key must not be empty")
		}
		out = append(out, key)
	}
	return out, nil
}

// insert writes one row per property. Keys must already be normalized.
func (p propStore) insert(ctx context.Context, ex execer, ownerID string, props []graph.Property, now string) error {
	q := fmt.Sprintf(
		`INSERT INTO %s (%s, key, value, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		p.table, p.ownerCol,
	)
	for _, prop := range props {
		val, err := encodeValue(prop.Value)
		if err != nil {
			return err
		}
		if _, err := ex.ExecContext(ctx, q, ownerID, prop.Key, val, now, now); err != nil {
			return gerr.Wrapf(err, gerr.CodeDBQueryFailure,
				"inserting property %s for %s", prop.Key, ownerID)
		}
	}
	return nil
}

// upsert writes or overwrites property rows, preserving created_at on
// overwrite.
func (p propStore) upsert(ctx context.Context, ex execer, ownerID string, props []graph.Property, now string) error {
	q := fmt.Sprintf(
		`INSERT INTO %s (%s, key, value, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
ON CONFLICT(%s, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		p.table, p.ownerCol, p.ownerCol,
	)
	for _, prop := range props {
		val, err := encodeValue(prop.Value)
		if err != nil {
			return err
		}
		if _, err := ex.ExecContext(ctx, q, ownerID, prop.Key, val, now, now); err != nil {
			return gerr.Wrapf(err, gerr.CodeDBQueryFailure,
				"upserting property %s for %s", prop.Key, ownerID)
		}
	}
	return nil
}

// remove deletes property rows by key. Absent keys are a no-op.
func (p propStore) remove(ctx context.Context, ex execer, ownerID string, keys []string) error {
	q := fmt.Sprintf(`DELETE FROM %s WHERE %s = ? AND key = ?`, p.table, p.ownerCol)
	for _, key := range keys {
		if _, err := ex.ExecContext(ctx, q, ownerID, key); err != nil {
			return gerr.Wrapf(err, gerr.CodeDBQueryFailure,
				"removing property %s for %s", key, ownerID)
		}
	}
	return nil
}

// removeAll deletes every property row owned by ownerID.
func (p propStore) removeAll(ctx context.Context, ex execer, ownerID string) error {
	q := fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, p.table, p.ownerCol)
	if _, err := ex.ExecContext(ctx, q, ownerID); err != nil {
		return gerr.Wrapf(err, gerr.CodeDBQueryFailure, "removing properties for %s", ownerID)
	}
	return nil
}

// load returns all property rows for ownerID as a key→value map. Values
// were stored as JSON text, so read simply parses what was stored.
func (p propStore) load(ctx context.Context, q querier, ownerID string) (map[string]any, error) {
	query := fmt.Sprintf(`SELECT key, value FROM %s WHERE %s = ?`, p.table, p.ownerCol)
	rows, err := q.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, gerr.Wrapf(err, gerr.CodeDBQueryFailure, "loading properties for %s", ownerID)
	}
	defer rows.Close() //nolint:errcheck // error on read-path close is not actionable

	props := make(map[string]any)
	for rows.Next() {
		var key, raw string
		if err := rows.Scan(&key, &raw); err != nil {
			return nil, gerr.Wrap(err, gerr.CodeDBQueryFailure, "scanning property row")
		}
		var val any
		if err := json.Unmarshal([]byte(raw), &val); err != nil {
			return nil, gerr.Wrapf(err, gerr.CodeDBQueryFailure,
				"decoding property %s for %s", key, ownerID)
		}
		props[key] = val
	}
	if err := rows.Err(); err != nil {
		return nil, gerr.Wrapf(err, gerr.CodeDBQueryFailure, "iterating properties for %s", ownerID)
	}
	return props, nil
}

// encodeValue serialises a property value to the JSON text stored in the
// value column.
func encodeValue(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", gerr.Wrap(err, gerr.CodeGraphInputInvalid, "encoding property value")
	}
	return string(b), nil
}

// propsToMap materialises normalized properties the way a subsequent read
// would return them.
func propsToMap(props []graph.Property) map[string]any {
	m := make(map[string]any, len(props))
	for _, p := range props {
		m[p.Key] = p.Value
	}
	return m
}
