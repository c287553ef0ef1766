package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/glowpoint/clinic-desk/internal/adapters/database"
	"github.com/glowpoint/clinic-desk/internal/domain/entities"
	"github.com/glowpoint/clinic-desk/internal/infrastructure/clients/postgres"
	"github.com/glowpoint/clinic-desk/pkg/config"
	"github.com/google/uuid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				stock_notifications,
				invoices,
				treatment_progress,
				skin_analyses,
				appointments,
				patients,
				doctors,
				products,
				treatments
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	treatmentRepo := database.NewTreatmentAdapter(pgClient)
	productRepo := database.NewProductAdapter(pgClient)
	doctorRepo := database.NewDoctorAdapter(pgClient)

	// The analysis treatment must exist before the booking engine can inject
	// it for first-visit patients, so it is seeded first.
	treatments := []entities.Treatment{
		{ID: uuid.New().String(), Name: cfg.Clinic.AnalysisTreatmentName, Description: "Mandatory first-visit skin assessment with a consultant", DurationMinutes: 30, Price: 0, CreatedAt: time.Now(), UpdatedAt: time.Now()},
		{ID: uuid.New().String(), Name: "Signature Glow Facial", Description: "Deep cleansing facial with LED therapy", DurationMinutes: 60, Price: 450000, CreatedAt: time.Now(), UpdatedAt: time.Now()},
		{ID: uuid.New().String(), Name: "Chemical Peel (Light)", Description: "Superficial glycolic acid peel", DurationMinutes: 45, Price: 600000, CreatedAt: time.Now(), UpdatedAt: time.Now()},
		{ID: uuid.New().String(), Name: "Microneedling", Description: "Collagen induction therapy, full face", DurationMinutes: 75, Price: 1200000, CreatedAt: time.Now(), UpdatedAt: time.Now()},
		{ID: uuid.New().String(), Name: "Laser Hair Removal (Underarm)", Description: "Diode laser session", DurationMinutes: 30, Price: 350000, CreatedAt: time.Now(), UpdatedAt: time.Now()},
		{ID: uuid.New().String(), Name: "Acne Injection", Description: "Intralesional corticosteroid, per lesion", DurationMinutes: 15, Price: 150000, CreatedAt: time.Now(), UpdatedAt: time.Now()},
	}

	for _, t := range treatments {
		if err := treatmentRepo.Create(ctx, &t); err != nil {
			log.Printf("Failed to create treatment %s: %v", t.Name, err)
		}
	}

	products := []entities.Product{
		{ID: uuid.New().String(), Name: "Gentle Cleanser 150ml", Description: "Low-pH daily facial cleanser", Stock: 24, Price: 185000, CreatedAt: time.Now(), UpdatedAt: time.Now()},
		{ID: uuid.New().String(), Name: "Sunscreen SPF50 PA++++", Description: "Broad spectrum daily sunscreen", Stock: 40, Price: 210000, CreatedAt: time.Now(), UpdatedAt: time.Now()},
		{ID: uuid.New().String(), Name: "Retinol Serum 0.3%", Description: "Night renewal serum", Stock: 12, Price: 420000, CreatedAt: time.Now(), UpdatedAt: time.Now()},
		{ID: uuid.New().String(), Name: "Post-Peel Soothing Gel", Description: "Centella recovery gel", Stock: 4, Price: 260000, CreatedAt: time.Now(), UpdatedAt: time.Now()},
		{ID: uuid.New().String(), Name: "Acne Spot Patch (24pc)", Description: "Hydrocolloid patches", Stock: 60, Price: 95000, CreatedAt: time.Now(), UpdatedAt: time.Now()},
	}

	for _, p := range products {
		if err := productRepo.Create(ctx, &p); err != nil {
			log.Printf("Failed to create product %s: %v", p.Name, err)
		}
	}

	weekdayMorning := []entities.ScheduleEntry{
		{Day: entities.WeekdayMonday, StartTime: "09:00", EndTime: "15:00"},
		{Day: entities.WeekdayWednesday, StartTime: "09:00", EndTime: "15:00"},
		{Day: entities.WeekdayFriday, StartTime: "09:00", EndTime: "15:00"},
	}
	weekdayAfternoon := []entities.ScheduleEntry{
		{Day: entities.WeekdayTuesday, StartTime: "13:00", EndTime: "19:00"},
		{Day: entities.WeekdayThursday, StartTime: "13:00", EndTime: "19:00"},
		{Day: entities.WeekdaySaturday, StartTime: "10:00", EndTime: "16:00"},
	}

	doctors := []entities.Doctor{
		{ID: uuid.New().String(), Name: "dr. Amanda Soetrisno", Role: "Dermatologist", Schedule: weekdayMorning, CreatedAt: time.Now(), UpdatedAt: time.Now()},
		{ID: uuid.New().String(), Name: "dr. Bima Hartanto", Role: "Aesthetic Physician", Schedule: weekdayAfternoon, CreatedAt: time.Now(), UpdatedAt: time.Now()},
		{ID: uuid.New().String(), Name: "dr. Clarissa Wijaya", Role: "Dermatologist", Schedule: weekdayAfternoon, CreatedAt: time.Now(), UpdatedAt: time.Now()},
	}

	for _, d := range doctors {
		if err := doctorRepo.Create(ctx, &d); err != nil {
			log.Printf("Failed to create doctor %s: %v", d.Name, err)
		}
	}

	log.Println("Seeding completed successfully")
}
