package configfile

import (
	"context"
	"fmt"
	"os"
	"time"
)

// Signaler asks the host automation framework to re-read its configuration
// by stamping a marker file next to the artifact. The host watches the
// marker's mtime; the content is only for operators.
type Signaler struct {
	markerPath string
	now        func() time.Time
}

func NewSignaler(markerPath string) *Signaler {
	return &Signaler{markerPath: markerPath, now: time.Now}
}

func (s *Signaler) Signal(_ context.Context) error {
	stamp := s.now().UTC().Format(time.RFC3339Nano)
	if err := os.WriteFile(s.markerPath, []byte(stamp+"\n"), 0o644); err != nil {
		return fmt.Errorf("signal reload: %w", err)
	}
	return nil
}
