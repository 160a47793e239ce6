package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/locvowork/hotel_scheduler/apigateway/internal/bootstrap"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/database"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/domain"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/logger"
)

func main() {
	action := flag.String("action", "seed", "Action to perform: seed, clear")
	preset := flag.String("preset", "medium", "Data preset: small, medium, large, xlarge")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed for staff and template choices")
	week := flag.Int("week", 0, "First ISO week to fill (default: current week)")
	year := flag.Int("year", 0, "ISO year of -week")
	yes := flag.Bool("yes", false, "Skip the confirmation prompt of clear")

	flag.Parse()

	ctx := context.Background()

	fmt.Println("Hotel Schedule Seeder")
	fmt.Println(strings.Repeat("=", 50))

	app := bootstrap.NewApp()
	if err := app.InitializeStores(ctx); err != nil {
		logger.ErrorLog(ctx, "Failed to initialize stores: %v", err)
		log.Fatal(err)
	}
	defer app.DB.Close()

	seeder := database.NewDataSeeder(app.DB, app.ES, *seed)

	switch *action {
	case "seed":
		from := domain.CurrentWeek(time.Now())
		if *week > 0 {
			from = domain.Week{Number: *week, Year: *year}
			if from.Year == 0 {
				from.Year = time.Now().Year()
			}
			if err := from.Validate(); err != nil {
				log.Fatalf("Invalid start week: %v", err)
			}
		}
		performSeed(ctx, seeder, database.SeedPreset(*preset), from)

	case "clear":
		performClear(ctx, seeder, *yes)

	default:
		fmt.Printf("Unknown action: %s\n", *action)
		flag.PrintDefaults()
		return
	}

	fmt.Println("\nDone!")
}

func performSeed(ctx context.Context, seeder *database.DataSeeder, preset database.SeedPreset, from domain.Week) {
	cfg, err := database.LoadSeedConfig()
	if err != nil {
		log.Fatalf("Loading seed presets failed: %v", err)
	}
	fmt.Printf("Using preset %s starting at %s\n", preset, from)

	if err := seeder.SeedData(ctx, cfg, preset, from); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}

func performClear(ctx context.Context, seeder *database.DataSeeder, yes bool) {
	if !yes {
		fmt.Println("This will delete all staff, schedules and budgets!")
		fmt.Print("Continue? (yes/no): ")

		var response string
		fmt.Scanln(&response)
		if response != "yes" {
			fmt.Println("Cancelled.")
			return
		}
	}
	if err := seeder.ClearData(ctx); err != nil {
		log.Fatalf("Clear failed: %v", err)
	}
}
