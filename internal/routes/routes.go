package routes

import (
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/peakform/AthleteHubBack/internal/config"
	"github.com/peakform/AthleteHubBack/internal/handlers"
	"github.com/peakform/AthleteHubBack/internal/middleware"
	"github.com/peakform/AthleteHubBack/internal/repository"
	"github.com/peakform/AthleteHubBack/internal/services"
	chatws "github.com/peakform/AthleteHubBack/internal/websocket"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool, redisClient *redis.Client) {
	userRepo := repository.NewUserRepository(db)
	programRepo := repository.NewProgramRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	contractRepo := repository.NewContractRepository(db)
	exerciseRepo := repository.NewExerciseRepository(db)
	journalRepo := repository.NewJournalRepository(db)
	channelRepo := repository.NewChannelRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	revocationStore := repository.NewTokenRevocationStore(redisClient)
	channelLocks := repository.NewChannelLockStore(redisClient)

	var storageService services.StorageService
	if cfg.SupabaseURL != "" && cfg.SupabaseBucket != "" && cfg.SupabaseServiceKey != "" {
		storageService = services.NewSupabaseStorageService(cfg.SupabaseURL, cfg.SupabaseBucket, cfg.SupabaseServiceKey)
	}

	programService := services.NewProgramService(programRepo, userRepo, storageService)
	enrollmentService := services.NewEnrollmentService(db, enrollmentRepo, contractRepo, programRepo, userRepo)
	exerciseService := services.NewExerciseService(exerciseRepo, userRepo)
	journalService := services.NewJournalService(journalRepo, storageService)
	settingsService := services.NewSettingsService(settingsRepo, storageService)
	paymentService := services.NewPaymentService()
	chatHub := chatws.NewHub()
	go chatHub.Run()
	chatService := services.NewChatService(channelRepo, messageRepo, userRepo, channelLocks)

	authHandler := handlers.NewAuthHandler(userRepo, revocationStore, cfg.JWTSecret)
	profileHandler := handlers.NewProfileHandler(userRepo)
	programHandler := handlers.NewProgramHandler(programService, enrollmentService)
	adminProgramHandler := handlers.NewAdminProgramHandler(programService)
	contractHandler := handlers.NewContractHandler(enrollmentService)
	exerciseHandler := handlers.NewExerciseHandler(exerciseService)
	journalHandler := handlers.NewJournalHandler(journalService)
	athleteHandler := handlers.NewAthleteHandler(userRepo, enrollmentRepo)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	chatHandler := handlers.NewChatHandler(chatService, chatHub, cfg.JWTSecret, revocationStore)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/signin", authHandler.Signin)
	auth.Post("/signout", middleware.AuthRequired(cfg.JWTSecret, revocationStore), authHandler.Signout)
	auth.Get("/session", middleware.AuthRequired(cfg.JWTSecret, revocationStore), authHandler.Session)
	auth.Post("/change-password", middleware.AuthRequired(cfg.JWTSecret, revocationStore), authHandler.ChangePassword)

	// Public marketing surface: the landing page reads these without a token.
	api.Get("/programs/public", programHandler.ListPublic)
	api.Get("/logo", settingsHandler.GetLogo)

	authProtected := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret, revocationStore))

	user := authProtected.Group("/user")
	user.Get("/profile", profileHandler.Get)
	user.Put("/profile", profileHandler.Update)

	programs := authProtected.Group("/programs")
	programs.Get("/enrolled", programHandler.ListEnrolled)
	programs.Post("/enroll", programHandler.Enroll)

	authProtected.Post("/contracts/sign", contractHandler.Sign)

	exercises := authProtected.Group("/exercises")
	exercises.Get("/daily", exerciseHandler.Daily)
	exercises.Post("/complete", exerciseHandler.Complete)

	journal := authProtected.Group("/journal/entries")
	journal.Get("", journalHandler.List)
	journal.Post("", journalHandler.Create)
	journal.Get("/:id", journalHandler.Get)
	journal.Delete("/:id", journalHandler.Delete)
	journal.Post("/:id/media", journalHandler.UploadMedia)

	chat := authProtected.Group("/chat")
	chat.Get("/channels", chatHandler.ListChannels)
	chat.Get("/messages/:channelId", chatHandler.GetMessages)
	chat.Post("/messages", chatHandler.SendMessage)
	chat.Post("/dm-channel", chatHandler.CreateDirectChannel)
	chat.Get("/search-users", chatHandler.SearchUsers)
	chat.Get("/general/status", chatHandler.GeneralStatus)
	chat.Post("/general/lock", middleware.AdminRequired(), chatHandler.LockGeneral)
	chat.Post("/general/unlock", middleware.AdminRequired(), chatHandler.UnlockGeneral)

	authProtected.Post("/payments/simulate", paymentHandler.Simulate)

	admin := authProtected.Group("/admin", middleware.AdminRequired())
	admin.Get("/athletes", athleteHandler.List)
	admin.Get("/programs", adminProgramHandler.List)
	admin.Post("/programs", adminProgramHandler.Create)
	admin.Put("/programs/:id", adminProgramHandler.Update)
	admin.Delete("/programs/:id", adminProgramHandler.Delete)
	admin.Post("/programs/:id/image", adminProgramHandler.UploadImage)
	admin.Get("/exercises", exerciseHandler.List)
	admin.Get("/exercises/categories", exerciseHandler.Categories)
	admin.Post("/exercises", exerciseHandler.Create)
	admin.Put("/exercises/:id", exerciseHandler.Update)
	admin.Delete("/exercises/:id", exerciseHandler.Delete)
	admin.Post("/exercises/:id/assign", exerciseHandler.Assign)
	admin.Get("/contracts", contractHandler.List)
	admin.Post("/upload-logo", settingsHandler.UploadLogo)

	api.Use("/v1/ws", chatHandler.WebSocketAuth)
	api.Get("/v1/ws", websocket.New(chatHandler.HandleWebSocket))
}
