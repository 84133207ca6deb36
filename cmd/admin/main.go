package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"aura/backend/internal/analysis"
	"aura/backend/internal/catalog"
	"aura/backend/internal/complaint"
	"aura/backend/internal/config"
	"aura/backend/internal/models"
	"aura/backend/internal/reservation"
	"aura/backend/internal/storage"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const usage = `Usage: admin <command> [args]

Commands:
  list-complaints [status]
  set-complaint-status <complaint_id> <under_review|resolved|rejected>
  list-reservations [status]
  set-reservation-status <reservation_id> <pending|approved|rejected>
  reset-reservation <reservation_id>
  analyze <description> [property name]`

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := zap.NewNop().Sugar()
	ctx := context.Background()

	command, args := os.Args[1], os.Args[2:]

	// analyze needs no storage
	if command == "analyze" {
		if len(args) < 1 {
			fmt.Println("Usage: admin analyze <description> [property name]")
			os.Exit(1)
		}
		runAnalyze(ctx, cfg, args, logger)
		return
	}

	storageSvc := connect(ctx, cfg)
	cat, err := catalog.New(cfg.CatalogPath, logger)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}
	complaints := complaint.NewService(storageSvc, analysis.NewAnalyzer(cfg.Analysis, nil, nil, logger), cat, nil, logger)
	reservations := reservation.NewService(storageSvc, cat, nil, logger)

	switch command {
	case "list-complaints":
		list, err := complaints.List(ctx, models.ComplaintStatus(optional(args, 0)))
		if err != nil {
			log.Fatalf("Error listing complaints: %v", err)
		}
		printComplaints(list)
	case "set-complaint-status":
		if len(args) != 2 {
			fmt.Println("Usage: admin set-complaint-status <complaint_id> <status>")
			os.Exit(1)
		}
		c, err := complaints.SetStatus(ctx, args[0], models.ComplaintStatus(args[1]))
		if err != nil {
			log.Fatalf("Error updating complaint: %v", err)
		}
		fmt.Printf("Complaint %s is now %s.\n", c.Number, c.Status)
	case "list-reservations":
		list, err := reservations.List(ctx, models.ReservationStatus(optional(args, 0)))
		if err != nil {
			log.Fatalf("Error listing reservations: %v", err)
		}
		printReservations(list)
	case "set-reservation-status":
		if len(args) != 2 {
			fmt.Println("Usage: admin set-reservation-status <reservation_id> <status>")
			os.Exit(1)
		}
		r, err := reservations.SetStatus(ctx, args[0], models.ReservationStatus(args[1]))
		if err != nil {
			log.Fatalf("Error updating reservation: %v", err)
		}
		fmt.Printf("Reservation %s for %s is now %s.\n", r.ID, r.PropertyName, r.Status)
	case "reset-reservation":
		if len(args) != 1 {
			fmt.Println("Usage: admin reset-reservation <reservation_id>")
			os.Exit(1)
		}
		r, err := reservations.Reset(ctx, args[0])
		if err != nil {
			log.Fatalf("Error resetting reservation: %v", err)
		}
		fmt.Printf("Reservation %s is back to %s.\n", r.ID, r.Status)
	default:
		fmt.Println("Unknown command")
		fmt.Println(usage)
		os.Exit(1)
	}
}

func connect(ctx context.Context, cfg config.Config) *storage.Service {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	// Redis carries the admin events so open dashboards see CLI changes.
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}
	return storage.NewStorageService(db, rdb)
}

func runAnalyze(ctx context.Context, cfg config.Config, args []string, logger *zap.SugaredLogger) {
	var remote analysis.RemoteClient
	if cfg.Analysis.RemoteReady() {
		client, err := analysis.NewLLMClient(cfg.Analysis)
		if err != nil {
			log.Fatalf("remote analysis: %v", err)
		}
		remote = client
	}
	analyzer := analysis.NewAnalyzer(cfg.Analysis, remote, nil, logger)

	result := analyzer.AnalyzeComplaint(ctx, args[0], strings.Join(args[1:], " "))
	fmt.Printf("Category:   %s\n", result.Category)
	fmt.Printf("Priority:   %s\n", result.Priority)
	fmt.Printf("Summary:    %s\n", result.Summary)
	fmt.Printf("Department: %s\n", result.SuggestedDepartment)
	fmt.Printf("Timeline:   %s\n", result.EstimatedTimeline)
	fmt.Printf("Churn risk: %.2f\n", result.ChurnRiskScore)
	fmt.Printf("Source:     %s\n", result.Source)
	for i, step := range result.ActionSteps {
		fmt.Printf("  %d. %s\n", i+1, step)
	}
}

func optional(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func printComplaints(list []models.Complaint) {
	if len(list) == 0 {
		fmt.Println("No complaints.")
		return
	}
	for _, c := range list {
		fmt.Printf("%s  %-18s %-12s %-6s %-22s %s\n",
			c.ID, c.Number, c.Status, c.Analysis.Priority, c.Analysis.Category, c.Subject)
	}
}

func printReservations(list []models.Reservation) {
	if len(list) == 0 {
		fmt.Println("No reservations.")
		return
	}
	for _, r := range list {
		fmt.Printf("%s  %-9s %-28s %-24s %d\n",
			r.ID, r.Status, r.PropertyName, r.RequesterEmail, r.Price)
	}
}
