// cmd/server/main.go
package main

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mailsched/mailsched-backend/internal/config"
	"github.com/mailsched/mailsched-backend/internal/controller"
	"github.com/mailsched/mailsched-backend/internal/db"
	"github.com/mailsched/mailsched-backend/internal/mailer"
	"github.com/mailsched/mailsched-backend/internal/repository"
	"github.com/mailsched/mailsched-backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := db.Migrate(cfg.DatabaseURL, "migrations"); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	conn, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer conn.Close()

	userRepo := &repository.UserRepository{DB: conn}
	recipientRepo := &repository.RecipientRepository{DB: conn}
	messageRepo := &repository.MessageRepository{DB: conn}
	mailingRepo := &repository.MailingRepository{DB: conn}
	attemptRepo := &repository.AttemptRepository{DB: conn}

	deliveryService := &service.DeliveryService{
		RecipientRepo: recipientRepo,
		MessageRepo:   messageRepo,
		AttemptRepo:   attemptRepo,
		Sender:        mailer.NewSMTPSender(cfg),
		FromAddress:   cfg.FromEmail,
	}

	mailingService := &service.MailingService{
		MailingRepo:   mailingRepo,
		RecipientRepo: recipientRepo,
		MessageRepo:   messageRepo,
		AttemptRepo:   attemptRepo,
		Delivery:      deliveryService,
		Now:           func() time.Time { return time.Now().UTC() },
	}
	recipientService := &service.RecipientService{RecipientRepo: recipientRepo}
	messageService := &service.MessageService{MessageRepo: messageRepo}
	attemptService := &service.AttemptService{AttemptRepo: attemptRepo, MailingRepo: mailingRepo}
	sweepService := &service.SweepService{MailingRepo: mailingRepo, Delivery: deliveryService}

	mailingController := &controller.MailingController{
		MailingService: mailingService,
		AttemptService: attemptService,
	}
	recipientController := &controller.RecipientController{RecipientService: recipientService}
	messageController := &controller.MessageController{MessageService: messageService}
	attemptController := &controller.AttemptController{AttemptService: attemptService}
	sweepController := &controller.SweepController{SweepService: sweepService}

	actorMiddleware := &controller.ActorMiddleware{UserRepo: userRepo}

	r := chi.NewRouter()
	r.Use(actorMiddleware.Resolve)

	// Recipient routes
	r.Post("/recipients", recipientController.Create)
	r.Get("/recipients", recipientController.List)
	r.Get("/recipients/{id}", recipientController.Get)
	r.Put("/recipients/{id}", recipientController.Update)
	r.Delete("/recipients/{id}", recipientController.Delete)

	// Message routes
	r.Post("/messages", messageController.Create)
	r.Get("/messages", messageController.List)
	r.Get("/messages/{id}", messageController.Get)
	r.Put("/messages/{id}", messageController.Update)
	r.Delete("/messages/{id}", messageController.Delete)

	// Mailing routes
	r.Post("/mailings", mailingController.Create)
	r.Get("/mailings", mailingController.List)
	r.Get("/mailings/{id}", mailingController.Get)
	r.Put("/mailings/{id}", mailingController.Update)
	r.Delete("/mailings/{id}", mailingController.Delete)
	r.Post("/mailings/{id}/send", mailingController.Send)
	r.Post("/mailings/{id}/active", mailingController.SetActive)
	r.Get("/mailings/{id}/attempts", mailingController.Attempts)
	r.Get("/mailings/{id}/recipients/status", mailingController.RecipientStatuses)

	// Attempt ledger and sweep
	r.Get("/attempts", attemptController.List)
	r.Post("/sweep", sweepController.Run)

	log.Printf("🚀 Server running on %s", cfg.ListenAddr)
	log.Fatal(http.ListenAndServe(cfg.ListenAddr, r))
}
