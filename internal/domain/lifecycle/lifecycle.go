// Package lifecycle holds shared constants for start/stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds every start and stop hook (DB ping, HTTP shutdown, publisher close).
const DefaultTimeout = 10 * time.Second
