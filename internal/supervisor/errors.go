package supervisor

import "errors"

// ErrNoServerRunning is returned by Shutdown when called on a Server that
// has already been shut down (or was never started).
var ErrNoServerRunning = errors.New("supervisor: no server running")
