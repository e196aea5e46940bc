package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"FreshTrack/cmd/config"
	migration "FreshTrack/cmd/database/migrate"
	"FreshTrack/internal/utils"
)

func main() {
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("error connecting to database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("error migrating database: %v", err)
	}

	app, dispatcher, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("error setting up app: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go dispatcher.Run(ctx)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		cancel()
		if err := app.Shutdown(); err != nil {
			log.Printf("error shutting down app: %v", err)
		}
	}()

	if err := app.Listen(":8080"); err != nil {
		log.Fatalf("error running app: %v", err)
	}
}
