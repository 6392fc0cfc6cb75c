package main

import (
	"log"

	"Backend-Worklink-007/src/config"
	"Backend-Worklink-007/src/controllers"
	"Backend-Worklink-007/src/database"
	"Backend-Worklink-007/src/jobs"
	"Backend-Worklink-007/src/routes"
	"Backend-Worklink-007/src/services/audit"
	"Backend-Worklink-007/src/services/cmp"
	"Backend-Worklink-007/src/services/credentials"
	"Backend-Worklink-007/src/services/submission"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
)

func main() {
	cfg := config.Load()

	err := database.ConnectMongoDB()
	if err != nil {
		log.Fatalf("Error connecting to the database: %v", err)
	}
	database.InitRedis()
	database.InitAsynq()

	// service wiring: everything constructor injected, no hidden globals
	credService, err := credentials.NewService(database.CredentialCollection, []byte(cfg.CredSealKey))
	if err != nil {
		log.Fatalf("Credential service init failed: %v", err)
	}

	store := submission.NewMongoStore(
		database.LinkCollection,
		database.FormCollection,
		database.SubmissionCollection,
		database.AuditLogCollection,
	)
	newClient := func(clientID, clientSecret string) submission.RemoteClient {
		return cmp.NewClient(cfg.CmpBaseURL, cfg.CmpTokenURL, clientID, clientSecret)
	}
	submissionService := submission.NewService(store, credService, newClient, audit.NewMongoSink(database.AuditLogCollection))

	controllers.Init(submissionService)
	jobs.RunWorker(submissionService)
	jobs.StartPeriodicEnqueuer(cfg.RetryInterval, cfg.CleanupInterval)

	app := fiber.New(fiber.Config{BodyLimit: 25 * 1024 * 1024})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)

	routes.InitRoutes(app, cfg)

	log.Println("Server is running on port " + cfg.AppPort)
	err = app.Listen(":" + cfg.AppPort)
	if err != nil {
		log.Fatal(err)
	}
}
