package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/ansluta-crm/internal/infra/calendar"
	"github.com/xavierca1/ansluta-crm/internal/infra/database"
	"github.com/xavierca1/ansluta-crm/internal/infra/http/handlers"
	"github.com/xavierca1/ansluta-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ansluta-crm/internal/infra/integration/google"
	"github.com/xavierca1/ansluta-crm/internal/infra/mail"
	"github.com/xavierca1/ansluta-crm/internal/infra/queue"
	"github.com/xavierca1/ansluta-crm/internal/infra/worker"
	"github.com/xavierca1/ansluta-crm/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		envOr("RABBITMQ_USER", "guest"),
		envOr("RABBITMQ_PASS", "guest"),
		envOr("RABBITMQ_HOST", "localhost"),
		envOr("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositories
	leadRepo := database.NewLeadRepository(db)
	projectRepo := database.NewProjectRepository(db)
	meetingRepo := database.NewMeetingRepository(db)
	userRepo := database.NewUserRepository(db)

	// 2. Gateways and adapters
	smtpPort, _ := strconv.Atoi(envOr("SMTP_PORT", "587"))
	mailSender := mail.NewEmailSender(
		envOr("SMTP_HOST", "smtp.gmail.com"), smtpPort,
		os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASS"),
		envOr("BASE_URL", "http://localhost:3000"),
	)
	googleClient := google.NewClient(
		os.Getenv("GOOGLE_CLIENT_ID"),
		os.Getenv("GOOGLE_CLIENT_SECRET"),
		envOr("GOOGLE_REDIRECT_URI", "http://localhost:3000/google/callback"),
	)
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	linkGen := calendar.NewLinkGenerator()

	// 3. Workers
	verificationWorker := queue.NewWorker(rabbitMQ.Ch, mailSender)
	go verificationWorker.Start(queue.QueueName)

	completionWorker := worker.NewMeetingCompletionWorker(db)
	go completionWorker.Start(context.Background())

	// 4. UseCases
	createMeetingUC := usecase.NewCreateMeetingUseCase(meetingRepo, linkGen, googleClient)
	outreachUC := usecase.NewOutreachUseCase(mailSender, createMeetingUC, mailSender)

	// 5. Handlers
	authHandler := handlers.NewAuthHandler(userRepo, producer)
	leadHandler := handlers.NewLeadHandler(leadRepo)
	projectHandler := handlers.NewProjectHandler(projectRepo)
	meetingHandler := handlers.NewMeetingHandler(meetingRepo, userRepo, createMeetingUC)
	outreachHandler := handlers.NewOutreachHandler(leadRepo, projectRepo, userRepo, outreachUC)
	settingsHandler := handlers.NewSettingsHandler(userRepo)
	googleHandler := handlers.NewGoogleHandler(userRepo, googleClient)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:3000", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", "x-user-id"},
	}))

	r.Post("/auth/signup", authHandler.HandleSignup)
	r.Post("/auth/signin", authHandler.HandleSignin)
	r.Post("/auth/verify-email", authHandler.HandleVerifyEmail)

	r.Get("/leads", leadHandler.HandleList)
	r.Get("/leads/filter", leadHandler.HandleFilter)
	r.Post("/leads", leadHandler.HandleCreate)
	r.Get("/leads/{id}", leadHandler.HandleGet)
	r.Put("/leads/{id}", leadHandler.HandleUpdate)
	r.Delete("/leads/{id}", leadHandler.HandleDelete)

	r.Get("/projects", projectHandler.HandleList)
	r.Post("/projects", projectHandler.HandleCreate)
	r.Get("/projects/{id}", projectHandler.HandleGet)
	r.Put("/projects/{id}", projectHandler.HandleUpdate)
	r.Delete("/projects/{id}", projectHandler.HandleDelete)
	r.Get("/projects/{id}/leads", outreachHandler.HandleRankedLeads)
	r.Post("/projects/{id}/outreach", outreachHandler.HandleRunBatch)

	r.Get("/meetings", meetingHandler.HandleList)
	r.Post("/meetings", meetingHandler.HandleCreate)
	r.Put("/meetings/{id}", meetingHandler.HandleUpdate)
	r.Delete("/meetings/{id}", meetingHandler.HandleDelete)

	r.Get("/user/profile", settingsHandler.HandleGetProfile)
	r.Put("/user/profile", settingsHandler.HandleUpdateProfile)
	r.Post("/user/change-password", settingsHandler.HandleChangePassword)
	r.Get("/user/smtp-settings", settingsHandler.HandleGetSMTPSettings)
	r.Post("/user/smtp-settings", settingsHandler.HandleUpdateSMTPSettings)

	r.Get("/google/auth", googleHandler.HandleAuthURL)
	r.Post("/google/auth", googleHandler.HandleCallback)
	r.Get("/google/status", googleHandler.HandleStatus)

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := ":8080"
	log.Printf("🔥 Ansluta CRM API running on %s", port)
	http.ListenAndServe(port, r)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
