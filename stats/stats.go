// Copyright 2026 Arc Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package stats is the public API for the JSON-backed hierarchical
// counter and configuration store.
package stats

import (
	"github.com/arc-ml/arc/internal/stats"
)

// Type aliases for the public API.

// Statistics is a hierarchical key/value store.
type Statistics = stats.Statistics

// Group is a named slice of a store.
type Group = stats.Group

// AccessMode controls whether Sync persists the store.
type AccessMode = stats.AccessMode

// Access modes.
const (
	ReadOnly  = stats.ReadOnly
	ReadWrite = stats.ReadWrite
)

// Constructors.
var (
	New  = stats.New
	Open = stats.Open
	Read = stats.Read
)
