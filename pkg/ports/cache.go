package ports

import "context"

// ResponseCache stores raw worker response lines.
//
// Keys are opaque digests computed by the caller. A miss is reported with
// ok == false and a nil error; errors are reserved for backend failures.
type ResponseCache interface {
	Get(ctx context.Context, key string) (line string, ok bool, err error)
	Set(ctx context.Context, key string, line string) error
}
