package heal

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"wardmind/internal/app/ports"
)

var t0 = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func TestDetector_FiresAtThresholdWithinInterval(t *testing.T) {
	d := NewDetector(3, time.Minute)

	if d.Observe("attackAuto", t0) || d.Observe("attackAuto", t0.Add(10*time.Second)) {
		t.Fatalf("below threshold must not fire")
	}
	if !d.Observe("attackAuto", t0.Add(20*time.Second)) {
		t.Fatalf("third observation in the interval must fire")
	}
	// History is cleared after firing.
	if d.Observe("attackAuto", t0.Add(30*time.Second)) {
		t.Fatalf("a fired signal must start over")
	}
}

func TestDetector_StaleObservationsExpire(t *testing.T) {
	d := NewDetector(3, time.Minute)
	d.Observe("teleportAuto", t0)
	d.Observe("teleportAuto", t0.Add(10*time.Second))
	if d.Observe("teleportAuto", t0.Add(2*time.Minute)) {
		t.Fatalf("observations outside the interval must not count")
	}
}

func TestDetector_SignalsAreIndependent(t *testing.T) {
	d := NewDetector(2, time.Minute)
	d.Observe("a", t0)
	if d.Observe("b", t0.Add(time.Second)) {
		t.Fatalf("different signals must not share counts")
	}
}

const sampleConfig = `# combat settings
attackAuto 2
attackDistance 1.5

teleportAuto_hp 30
lockMap prt_fild08
`

func TestNeutralize_CommentsMatchingLines(t *testing.T) {
	out, changed := Neutralize(sampleConfig, []string{"attackAuto"})
	if changed != 1 {
		t.Fatalf("changed=%d, want 1", changed)
	}
	if !strings.Contains(out, DisabledMarker+"attackAuto 2") {
		t.Fatalf("line not neutralized:\n%s", out)
	}
	if !strings.Contains(out, "attackDistance 1.5") || strings.Contains(out, DisabledMarker+"attackDistance") {
		t.Fatalf("prefix-similar directives must not match:\n%s", out)
	}
}

func TestNeutralize_Idempotent(t *testing.T) {
	once, _ := Neutralize(sampleConfig, []string{"attackAuto"})
	twice, changed := Neutralize(once, []string{"attackAuto"})
	if changed != 0 || twice != once {
		t.Fatalf("second pass must be a no-op, changed=%d", changed)
	}
}

func TestNeutralize_SkipsCommentsAndBlanks(t *testing.T) {
	_, changed := Neutralize("# attackAuto 2\n\n", []string{"attackAuto"})
	if changed != 0 {
		t.Fatalf("comments and blanks must never match, changed=%d", changed)
	}
}

func TestNeutralize_NoDirectives(t *testing.T) {
	out, changed := Neutralize(sampleConfig, nil)
	if changed != 0 || out != sampleConfig {
		t.Fatalf("empty directive list must be a no-op")
	}
}

type stubStore struct {
	text     string
	stored   string
	loadErr  error
	storeErr error
}

func (s *stubStore) Load(ctx context.Context) (string, error) { return s.text, s.loadErr }
func (s *stubStore) Store(ctx context.Context, text string) error {
	s.stored = text
	return s.storeErr
}

type stubSignaler struct {
	calls int
}

func (s *stubSignaler) Signal(ctx context.Context) error {
	s.calls++
	return nil
}

type stubAudit struct {
	records []ports.HealingRecord
}

func (s *stubAudit) Append(ctx context.Context, r ports.HealingRecord) error {
	s.records = append(s.records, r)
	return nil
}

func (s *stubAudit) List(ctx context.Context, limit int) ([]ports.HealingRecord, error) {
	return s.records, nil
}

func TestResolver_Resolve(t *testing.T) {
	store := &stubStore{text: sampleConfig}
	reload := &stubSignaler{}
	audit := &stubAudit{}
	r := &Resolver{Store: store, Reload: reload, Audit: audit, Now: func() time.Time { return t0 }}

	err := r.Resolve(context.Background(), Conflict{
		Reason:     "config_conflict:attackAuto",
		Directives: []string{"attackAuto"},
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !strings.Contains(store.stored, DisabledMarker+"attackAuto 2") {
		t.Fatalf("artifact not rewritten:\n%s", store.stored)
	}
	if reload.calls != 1 {
		t.Fatalf("reload signals=%d, want 1", reload.calls)
	}
	if len(audit.records) != 1 || audit.records[0].Reason != "config_conflict:attackAuto" {
		t.Fatalf("audit records=%+v", audit.records)
	}
	if !audit.records[0].TriggeredAt.Equal(t0) {
		t.Fatalf("audit timestamp=%v", audit.records[0].TriggeredAt)
	}
}

func TestResolver_NoMatchLeavesArtifactAlone(t *testing.T) {
	store := &stubStore{text: sampleConfig}
	reload := &stubSignaler{}
	audit := &stubAudit{}
	r := &Resolver{Store: store, Reload: reload, Audit: audit}

	err := r.Resolve(context.Background(), Conflict{Reason: "x", Directives: []string{"missing"}})
	if !errors.Is(err, ErrNoMatchingDirective) {
		t.Fatalf("err=%v, want ErrNoMatchingDirective", err)
	}
	if store.stored != "" || reload.calls != 0 || len(audit.records) != 0 {
		t.Fatalf("no-op conflict must not touch store, audit, or reload")
	}
}

func TestResolver_StoreFailureSkipsAuditAndReload(t *testing.T) {
	failure := errors.New("disk full")
	store := &stubStore{text: sampleConfig, storeErr: failure}
	reload := &stubSignaler{}
	audit := &stubAudit{}
	r := &Resolver{Store: store, Reload: reload, Audit: audit}

	err := r.Resolve(context.Background(), Conflict{Reason: "x", Directives: []string{"attackAuto"}})
	if !errors.Is(err, failure) {
		t.Fatalf("err=%v", err)
	}
	if reload.calls != 0 || len(audit.records) != 0 {
		t.Fatalf("failed store must not audit or signal")
	}
}
