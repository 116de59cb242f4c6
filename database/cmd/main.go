package main

import (
	"context"
	"flag"
	"os"
	"time"

	"ormakal.in/configs"
	"ormakal.in/configs/configsdatabase"
	"ormakal.in/configs/configslog"
	"ormakal.in/database"
)

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()

	migrateFlag := flag.Bool("migrate", false, "Create or update the schema (tables for postgres, indexes for mongo)")
	seedFlag := flag.Bool("seed", false, "Insert and activate the sample obituary if none exists")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var err error
	switch configs.GetConfig().Database.Driver {
	case configs.DriverMongo:
		configsdatabase.InitMongo(ctx)
		defer configsdatabase.CloseMongo(context.Background())
		err = database.InitializeMongo(ctx, configsdatabase.GetMongo(), *migrateFlag, *seedFlag)
	default:
		configsdatabase.InitDB()
		defer configsdatabase.CloseDB()
		err = database.Initialize(ctx, configsdatabase.GetDB(), *migrateFlag, *seedFlag)
	}

	if err != nil {
		configslog.SLog.Errorf("Database initialization failed: %v", err)
		configslog.SyncLogger()
		os.Exit(1)
	}
}
