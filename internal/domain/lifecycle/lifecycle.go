// Package lifecycle holds process lifecycle constants.
package lifecycle

import "time"

// DefaultTimeout bounds graceful start and shutdown of components.
const DefaultTimeout = 10 * time.Second
