// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 pqledger Authors

package config

import "runtime"

// numCPU resolves the default proof-of-work worker count: the current
// GOMAXPROCS setting.
func numCPU() int {
	return runtime.GOMAXPROCS(0)
}
