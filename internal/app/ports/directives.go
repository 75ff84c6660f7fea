package ports

import "context"

// DirectiveStore reads and rewrites the externally-owned, line-oriented
// configuration artifact. The store never interprets directives; the heal
// package owns the text transform.
type DirectiveStore interface {
	Load(ctx context.Context) (string, error)
	Store(ctx context.Context, text string) error
}

// ReloadSignaler tells the host process to re-read the directive artifact
// without restarting.
type ReloadSignaler interface {
	Signal(ctx context.Context) error
}
