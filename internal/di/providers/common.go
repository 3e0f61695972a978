package providers

import "time"

// shutdownTimeout bounds graceful shutdown of each managed component.
// Open SSE and chat streams are cut off when it elapses.
const shutdownTimeout = 30 * time.Second
