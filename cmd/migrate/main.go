package main

import (
	"flag"

	"github.com/rs/zerolog/log"

	"attendance_backend/internals/configs"
	database "attendance_backend/internals/databases"
	"attendance_backend/internals/seeds"
)

func main() {
	direction := flag.String("direction", "up", "migration direction: up or down")
	force := flag.Int("force", -1, "force the schema version and clear the dirty flag")
	seed := flag.Bool("seed", false, "load fixtures after migrating")
	seedDir := flag.String("seed-dir", "internals/seeds", "fixture directory")
	flag.Parse()

	configs.LoadEnv()

	m, err := database.NewMigrator(configs.PostgresDSN(), configs.GetEnv("MIGRATIONS_PATH"))
	if err != nil {
		log.Fatal().Err(err).Msg("❌ migrator")
	}
	defer m.Close()

	if *force >= 0 {
		if err := m.Force(*force); err != nil {
			log.Fatal().Err(err).Int("version", *force).Msg("❌ force")
		}
		log.Info().Int("version", *force).Msg("✅ version forced")
		return
	}

	switch *direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	default:
		log.Fatal().Str("direction", *direction).Msg("❌ unknown direction")
	}
	if err != nil {
		log.Fatal().Err(err).Str("direction", *direction).Msg("❌ migration failed")
	}

	if v, dirty, verr := m.Version(); verr == nil {
		log.Info().Uint("version", v).Bool("dirty", dirty).Msg("✅ migrations applied")
	}

	if *seed {
		db := configs.InitSeederDB()
		if err := seeds.RunAllSeeds(db, *seedDir); err != nil {
			log.Fatal().Err(err).Msg("❌ seeding failed")
		}
		log.Info().Msg("🌱 seeding complete")
	}
}
