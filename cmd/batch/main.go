package main

import (
	"context"
	"flag"
	"log"
	"time"

	"talent-match/internal/app"
	"talent-match/internal/config"

	"github.com/joho/godotenv"
)

// Runs one batch job to completion and exits. Meant for cron or one-off
// operator runs; the HTTP endpoints under /internal do the same work.
func main() {
	job := flag.String("job", "", "batch job to run: generate or auto-apply")
	timeout := flag.Duration("timeout", 30*time.Minute, "overall run timeout")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	c, err := app.NewContainer(cfg)
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.Printf("cleanup error: %v", err)
		}
	}()

	runner, err := app.NewBatchRunner(c)
	if err != nil {
		log.Fatalf("failed to build batch runner: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	switch *job {
	case "generate":
		sum, err := runner.GeneratePowerMatches(ctx)
		if err != nil {
			log.Fatalf("generation failed: %v", err)
		}
		log.Printf("generation done | users_processed=%d users_failed=%d total_new_matches=%d",
			sum.UsersProcessed, sum.UsersFailed, sum.TotalNewMatchesCreated)

	case "auto-apply":
		sum, err := runner.AutoApplyPowerMatches(ctx)
		if err != nil {
			log.Fatalf("auto apply failed: %v", err)
		}
		log.Printf("auto apply done | matches_processed=%d applications_created=%d application_errors=%d update_errors=%d",
			sum.MatchesProcessed, sum.ApplicationsCreated, sum.ApplicationErrors, sum.UpdateErrors)

	default:
		log.Fatalf("unknown job %q: want generate or auto-apply", *job)
	}
}
