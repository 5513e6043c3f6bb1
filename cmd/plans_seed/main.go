package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/2beens/fitbase/internal/config"
	"github.com/2beens/fitbase/internal/db"
	"github.com/2beens/fitbase/internal/logging"
	"github.com/2beens/fitbase/internal/plans"

	log "github.com/sirupsen/logrus"
)

// plans_seed applies the db schema and upserts the common workout plans
// without starting the service.
func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	plansPath := flag.String("plans", "", "common plans json file (defaults to common_plans_path from config)")
	dryRun := flag.Bool("dry-run", false, "only validate the plans file")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		ServiceName: "fitbase-plans-seed",
		LogToStdout: true,
		LogLevel:    cfg.LogLevel,
		Environment: cfg.Environment,
	})

	path := *plansPath
	if path == "" {
		path = cfg.CommonPlansPath
	}

	commonPlans, err := plans.LoadCommonPlans(path)
	if err != nil {
		log.Fatalf("load common plans: %s", err)
	}
	log.Infof("loaded %d common plans from %s", len(commonPlans), path)

	if *dryRun {
		for _, p := range commonPlans {
			log.Infof(" - %s [%s] %d days", p.PlanName, p.ID, p.NumberOfDays)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     cfg.PostgresUser,
		DBPassword: os.Getenv("FITBASE_DB_PASS"),
	})
	if err != nil {
		log.Fatalf("new db pool: %s", err)
	}
	defer dbPool.Close()

	if err := db.Migrate(ctx, dbPool); err != nil {
		log.Errorf("db migrate: %s", err)
		return
	}

	now := time.Now().UTC()
	for _, p := range commonPlans {
		p.CreatedAt = now
		p.UpdatedAt = now
	}

	if err := plans.NewRepo(dbPool).UpsertCommon(ctx, commonPlans); err != nil {
		log.Errorf("upsert common plans: %s", err)
		return
	}
	log.Infoln("common plans seeded")
}
