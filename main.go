package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"community-service/config"
	"community-service/controller"
	"community-service/database"
	"community-service/router"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	log.SetPrefix("community-service: ")

	rest := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		StrictRouting:         true,
		AppName:               "community-service",
	})

	rest.Use(cors.New())

	db, err := database.PostgresConnect()
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}

	enforcer, err := database.Casbin(db)
	if err != nil {
		log.Fatalf("casbin: %v", err)
	}

	if err := database.SeedAdmin(db, enforcer); err != nil {
		log.Fatalf("admin seed: %v", err)
	}

	sessions := database.RedisConnect()

	router.Rest(rest, router.Deps{
		Auth:      &controller.Auth{DB: db, Sessions: sessions, Enforcer: enforcer},
		Users:     &controller.Users{DB: db},
		Notes:     &controller.Notes{DB: db},
		Papers:    &controller.Papers{DB: db},
		Skills:    &controller.Skills{DB: db},
		Forum:     &controller.Forum{DB: db},
		Messenger: &controller.Messenger{DB: db},
		Enforcer:  enforcer,
	})

	go func() {
		if err := rest.Listen(fmt.Sprintf(":%s", config.Config("SERVER_PORT"))); err != nil {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	<-quit

	rest.Shutdown()
	sessions.Client.Close()
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
