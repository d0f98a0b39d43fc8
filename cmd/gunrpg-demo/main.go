// Command gunrpg-demo drives one scripted infil end-to-end — operator
// creation, loadout, infil start, combat session start, and a few rounds
// of scripted combat, with any combat death recorded on the aggregate — to
// exercise the library the way the teacher's cmd/server wires its own
// engine, since a library with no runnable entry point is untested in
// practice. It does not exfil or end the infil.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/archanox/gunrpg/internal/aggregate"
	"github.com/archanox/gunrpg/internal/boundary"
	"github.com/archanox/gunrpg/internal/combat"
	"github.com/archanox/gunrpg/internal/config"
	gunrpgmetrics "github.com/archanox/gunrpg/internal/metrics"
)

func main() {
	log.Println("🎮 ================================")
	log.Println("🎮  GUNRPG - CORE DEMO")
	log.Println("🎮 ================================")

	cfg := config.Load()
	log.Printf("⚙️  seed=%d verbose_shot_logs=%v", cfg.Simulation.Seed, cfg.Simulation.VerboseShotLogs)

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("building logger: %v", err)
	}
	defer logger.Sync()

	reg := prometheus.NewRegistry()
	metrics := gunrpgmetrics.New(reg)

	store := aggregate.NewMemoryStore()
	svc := aggregate.NewService(store, logger, metrics)

	now := time.Now()
	alphaID := aggregate.NewOperatorID()
	bravoID := aggregate.NewOperatorID()

	alpha, _, err := svc.Create(alphaID, "Alpha", now)
	if err != nil {
		log.Fatalf("creating alpha: %v", err)
	}
	bravo, _, err := svc.Create(bravoID, "Bravo", now)
	if err != nil {
		log.Fatalf("creating bravo: %v", err)
	}

	if _, _, err := svc.ChangeLoadout(alphaID, "rifle-a", now); err != nil {
		log.Fatalf("equipping alpha: %v", err)
	}
	if _, _, err := svc.ChangeLoadout(bravoID, "smg-b", now); err != nil {
		log.Fatalf("equipping bravo: %v", err)
	}
	if _, _, err := svc.StartInfil(alphaID, now); err != nil {
		log.Fatalf("starting alpha infil: %v", err)
	}
	if _, _, err := svc.StartInfil(bravoID, now); err != nil {
		log.Fatalf("starting bravo infil: %v", err)
	}

	alpha, err = svc.Rehydrate(alphaID)
	if err != nil {
		log.Fatalf("rehydrating alpha: %v", err)
	}
	bravo, err = svc.Rehydrate(bravoID)
	if err != nil {
		log.Fatalf("rehydrating bravo: %v", err)
	}

	weapons := combat.DefaultWeapons()
	if cfg.Weapons.Path != "" {
		data, err := os.ReadFile(cfg.Weapons.Path)
		if err != nil {
			log.Fatalf("reading weapons table: %v", err)
		}
		if weapons, err = combat.LoadWeaponYAML(data); err != nil {
			log.Fatalf("parsing weapons table: %v", err)
		}
	}

	combatAlphaID := boundary.ToCombatOperatorID(alphaID)
	combatBravoID := boundary.ToCombatOperatorID(bravoID)

	kernel := combat.NewCombat(
		[]*combat.Operator{
			boundary.Snapshot(alpha, weapons, 35),
			boundary.Snapshot(bravo, weapons, 35),
		},
		weapons,
		cfg.Combat,
		cfg.Simulation.Seed,
		combat.NewTelemetry(cfg.Simulation.VerboseShotLogs, cfg.Simulation.ShotLogRatePerSec, cfg.Simulation.ShotLogBurst, logger),
		metrics,
		logger,
	)
	engine := boundary.NewEngine(kernel, svc)

	if _, _, err := svc.StartCombatSession(alphaID, now); err != nil {
		log.Fatalf("starting alpha combat session: %v", err)
	}
	if _, _, err := svc.StartCombatSession(bravoID, now); err != nil {
		log.Fatalf("starting bravo combat session: %v", err)
	}

	round := 0
	for engine.Phase() != combat.PhaseEnded && round < 20 {
		round++

		if err := engine.SubmitIntents(combatAlphaID, combat.Intents{
			Stance:   combat.Crouching,
			Primary:  combat.IntentFire,
			TargetID: combatBravoID,
		}); err != nil {
			log.Fatalf("submitting alpha intents: %v", err)
		}
		if err := engine.SubmitIntents(combatBravoID, combat.Intents{
			Stance:   combat.Stationary,
			Primary:  combat.IntentFire,
			TargetID: combatAlphaID,
		}); err != nil {
			log.Fatalf("submitting bravo intents: %v", err)
		}
		if err := engine.BeginExecution(); err != nil {
			log.Fatalf("beginning execution round %d: %v", round, err)
		}

		outcome, err := engine.RunRound(time.Now())
		if err != nil {
			log.Fatalf("running round %d: %v", round, err)
		}
		fmt.Printf("round %d: ended_at_ms=%d events=%d deaths=%v combat_ended=%v\n",
			round, outcome.EndedAtMs, outcome.EventsApplied, outcome.Deaths, outcome.CombatEnded)
		if outcome.CombatEnded {
			break
		}
	}

	log.Println("🏁 demo complete")
}
