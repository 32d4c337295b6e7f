// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Graphctl Contributors

package graph

import (
	"fmt"

	"github.com/google/uuid"
)

// Entity id prefixes. NewID is the only id source; ids are assigned once at
// creation and never reused.
const (
	NodeIDPrefix = "n"
	EdgeIDPrefix = "e"
)

// NewID returns "{prefix}-{uuid}" with a random v4 UUID. Collision
// probability is treated as zero; there is no error path.
func NewID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}
