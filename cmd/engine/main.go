// Command engine is the minimal operational entrypoint for the
// threat-assessment core: it wires storage, constructs an SDK instance,
// and runs a short self-check so deployments can confirm the fusion
// pipeline is alive before the outer request/response shell (out of
// scope for this module, per spec §1) starts routing real traffic to
// it.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/rawblock/threatcore/internal/ingress"
	"github.com/rawblock/threatcore/internal/store"
	"github.com/rawblock/threatcore/internal/store/memstore"
	"github.com/rawblock/threatcore/internal/store/postgres"
	"github.com/rawblock/threatcore/pkg/sdk"
)

func main() {
	log.Println("Starting threat-assessment core (on-device smart-home analyzer)...")
	log.Println("Initializing fusion pipeline, zone/motion classifiers, and event-chain analyzer...")

	// ─── Optional durable storage ───────────────────────────────────────
	// DATABASE_URL is optional: user-pattern learning and audit export
	// degrade gracefully to an in-memory store when it is unset or
	// unreachable, matching the core's "no caller-visible failure beyond
	// validation/rate-limit" design (spec §7).
	// ──────────────────────────────────────────────────────────────────

	var kv store.KVStore = memstore.New()
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		pg, err := postgres.Connect(ctx, dbURL)
		cancel()
		if err != nil {
			log.Printf("Warning: Failed to connect to Postgres, continuing with in-memory storage. Error: %v", err)
		} else {
			if err := pg.InitSchema(context.Background()); err != nil {
				log.Printf("Warning: kv_store schema init failed, continuing with in-memory storage. Error: %v", err)
			} else {
				defer pg.Close()
				kv = pg
				log.Println("Durable storage connected (kv_store table ready)")
			}
		}
	} else {
		log.Println("DATABASE_URL unset — running with in-memory storage only (no durability across restarts)")
	}

	instance := sdk.New(kv)
	if err := instance.Initialize(context.Background()); err != nil {
		log.Printf("Warning: storage unreachable at initialize, SDK mode demoted to degraded: %v", err)
	}

	mode := getEnvOrDefault("THREATCORE_PRESET", "default")
	switch mode {
	case "aggressive":
		instance.Configure(sdk.AggressiveConfig)
	case "conservative":
		instance.Configure(sdk.ConservativeConfig)
	default:
		instance.Configure(sdk.DefaultConfig)
	}
	log.Printf("Temporal dampening preset: %s", mode)

	runSelfCheck(instance)

	log.Println("Engine ready (core is invoked in-process via pkg/sdk; no HTTP bridge in this module)")
}

// runSelfCheck assesses one benign and one critical synthetic event so an
// operator tailing logs can confirm the pipeline produces sane,
// differentiated output before wiring real traffic through it.
func runSelfCheck(instance *sdk.Instance) {
	now := float64(time.Now().Unix())

	benign := ingress.RawRequest{
		Type:       "doorbell_chime",
		Timestamp:  now,
		Confidence: 0.9,
		Metadata: ingress.RawMetadata{
			Location: "front_door",
			HomeMode: "away",
		},
	}
	result, err := instance.Assess(benign)
	if err != nil {
		log.Printf("self-check (benign) rejected: %v", err)
	} else {
		log.Printf("self-check (benign): level=%s score=%.2f summary=%q",
			result.ThreatLevel, result.Score, result.Summary)
	}

	critical := ingress.RawRequest{
		Type:       "glass_break",
		Timestamp:  now + 1,
		Confidence: 0.95,
		Metadata: ingress.RawMetadata{
			Location: "living_room",
			HomeMode: "away",
			Energy:   floatPtr(0.9),
		},
	}
	result, err = instance.Assess(critical)
	if err != nil {
		log.Printf("self-check (critical) rejected: %v", err)
	} else {
		log.Printf("self-check (critical): level=%s score=%.2f summary=%q",
			result.ThreatLevel, result.Score, result.Summary)
	}

	health := instance.GetSystemHealth()
	log.Printf("health: status=%s p95=%.2fms audit_entries=%d", health.Status, health.P95LatencyMS, health.AuditEntries)
}

func floatPtr(v float64) *float64 { return &v }

// getEnvOrDefault returns the env var value or a safe default for
// non-secret settings.
func getEnvOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
