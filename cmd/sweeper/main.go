// cmd/sweeper/main.go
package main

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mailsched/mailsched-backend/internal/config"
	"github.com/mailsched/mailsched-backend/internal/db"
	"github.com/mailsched/mailsched-backend/internal/mailer"
	"github.com/mailsched/mailsched-backend/internal/repository"
	"github.com/mailsched/mailsched-backend/internal/service"
)

// The sweeper is the unattended entry point: on every tick it runs the
// delivery engine over all stored mailings. The engine's own window and
// active-flag gates decide what goes out, so the sweeper never
// pre-filters; out-of-window mailings still get their audit attempts.
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
	sweepService := &service.SweepService{
		MailingRepo: mailingRepo,
		Delivery:    deliveryService,
	}

	sweep := func() {
		if _, err := sweepService.RunAllDue(time.Now().UTC()); err != nil {
			log.Printf("⚠️ sweep failed: %v", err)
		}
	}

	// One pass at startup, then on the configured schedule.
	sweep()

	c := cron.New()
	if _, err := c.AddFunc(cfg.SweepSchedule, sweep); err != nil {
		log.Fatalf("invalid SWEEP_SCHEDULE %q: %v", cfg.SweepSchedule, err)
	}

	log.Printf("Sweeper running on schedule %q", cfg.SweepSchedule)
	c.Run()
}
