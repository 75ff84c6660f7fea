package main

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"wardmind/internal/adapter/configfile"
	httpadapter "wardmind/internal/adapter/http"
	metricsinmem "wardmind/internal/adapter/metrics/inmemory"
	"wardmind/internal/adapter/remote"
	gormrepo "wardmind/internal/adapter/repo/gorm"
	memrepo "wardmind/internal/adapter/repo/memory"
	"wardmind/internal/app/decide"
	"wardmind/internal/app/feedback"
	"wardmind/internal/app/guard"
	"wardmind/internal/app/heal"
	"wardmind/internal/app/policy"
	"wardmind/internal/app/ports"
	"wardmind/internal/domain/engage"

	"github.com/cloudwego/hertz/pkg/app/server"
)

const version = "0.3.0"

func main() {
	decisions, healingAudit := buildRepos()

	directivePath := envOr("WARDMIND_DIRECTIVE_PATH", filepath.Join("control", "config.txt"))
	store := configfile.NewStore(directivePath)
	signaler := configfile.NewSignaler(directivePath + ".reload")
	watcher, err := configfile.NewWatcher(store)
	if err != nil {
		log.Printf("directive watcher disabled: %v", err)
		watcher = nil
	}

	guards := guard.NewSet(guardConfigFromEnv())
	recorder := metricsinmem.NewRecorder()

	uc := &decide.UseCase{
		Policies:           policy.DefaultBank(),
		Pattern:            remote.NewPattern(envOr("WARDMIND_PATTERN_URL", "http://127.0.0.1:9903")),
		Planner:            remote.NewPlanner(envOr("WARDMIND_PLANNER_URL", "http://127.0.0.1:9902")),
		Guards:             guards,
		Decisions:          decisions,
		Metrics:            recorder,
		PatternBudget:      durEnvMS("WARDMIND_PATTERN_BUDGET_MS", engage.DefaultPatternBudget),
		PlannerBudget:      durEnvSec("WARDMIND_PLANNER_BUDGET_SECONDS", engage.DefaultPlannerBudget),
		PlannerMinInterval: durEnvSec("WARDMIND_PLANNER_MIN_INTERVAL_SECONDS", engage.DefaultPlannerMinInterval),
		Now:                time.Now,
	}

	fb := &feedback.UseCase{
		Guards: guards,
		Detector: heal.NewDetector(
			intEnv("WARDMIND_HEAL_THRESHOLD", 3),
			durEnvSec("WARDMIND_HEAL_INTERVAL_SECONDS", 5*time.Minute),
		),
		Resolver: &heal.Resolver{Store: store, Reload: signaler, Audit: healingAudit, Now: time.Now},
		Now:      time.Now,
	}

	h := httpadapter.Handler{
		DecideUC:     uc,
		FeedbackUC:   fb,
		Decisions:    decisions,
		HealingAudit: healingAudit,
		Guards:       guards,
		Metrics:      recorder,
		Directives:   watcher,
		Version:      version,
		StartedAt:    time.Now(),
		Now:          time.Now,
	}

	addr := envOr("WARDMIND_ADDR", "127.0.0.1:9901")
	s := server.Default(server.WithHostPorts(addr))
	h.RegisterRoutes(s)

	log.Printf("wardmind %s listening on %s (directives: %s)", version, addr, directivePath)
	s.Spin()
}

// buildRepos uses Postgres when a DSN is configured and falls back to the
// in-memory repositories otherwise. Memory is the default deployment; the
// engine must run next to the game client with nothing else installed.
func buildRepos() (ports.DecisionRepository, ports.HealingAuditRepository) {
	dsn := strings.TrimSpace(os.Getenv("WARDMIND_DB_DSN"))
	if dsn == "" {
		log.Println("WARDMIND_DB_DSN not set, using in-memory repositories")
		return memrepo.NewDecisionRepo(), memrepo.NewHealingAuditRepo()
	}

	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	if err := gormrepo.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	return gormrepo.NewDecisionRepo(db), gormrepo.NewHealingAuditRepo(db)
}

func guardConfigFromEnv() guard.Config {
	cfg := guard.DefaultConfig()
	cfg.BreakerFailureThreshold = intEnv("WARDMIND_BREAKER_THRESHOLD", cfg.BreakerFailureThreshold)
	cfg.BreakerResetTimeout = durEnvSec("WARDMIND_BREAKER_RESET_SECONDS", cfg.BreakerResetTimeout)
	cfg.RateLimit = intEnv("WARDMIND_RATE_LIMIT", cfg.RateLimit)
	cfg.RateWindow = durEnvSec("WARDMIND_RATE_WINDOW_SECONDS", cfg.RateWindow)
	cfg.EmergencyPause = durEnvSec("WARDMIND_EMERGENCY_PAUSE_SECONDS", cfg.EmergencyPause)
	cfg.LoopThreshold = intEnv("WARDMIND_LOOP_THRESHOLD", cfg.LoopThreshold)
	cfg.LoopWindow = durEnvSec("WARDMIND_LOOP_WINDOW_SECONDS", cfg.LoopWindow)
	cfg.LoopBreakCooldown = durEnvSec("WARDMIND_LOOP_BREAK_SECONDS", cfg.LoopBreakCooldown)
	return cfg
}

func envOr(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func durEnvSec(key string, fallback time.Duration) time.Duration {
	n := intEnv(key, -1)
	if n < 0 {
		return fallback
	}
	return time.Duration(n) * time.Second
}

func durEnvMS(key string, fallback time.Duration) time.Duration {
	n := intEnv(key, -1)
	if n < 0 {
		return fallback
	}
	return time.Duration(n) * time.Millisecond
}
