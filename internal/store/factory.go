// SPDX-License-Identifier: MIT

package store

import "fmt"

// Backend names accepted by Open.
const (
	BackendBadger = "badger"
	BackendMemory = "memory"
)

// Open constructs a Store for the given backend. The path is only used by
// the badger backend.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendBadger:
		return OpenBadger(path)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("store: unknown backend %q (supported: badger, memory)", backend)
	}
}
