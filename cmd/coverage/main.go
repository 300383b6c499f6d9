package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/7lsnyc/notaryfindernow2/internal/database"
	"github.com/7lsnyc/notaryfindernow2/internal/repository"
)

func main() {
	top := flag.Int("top", 20, "number of cities to list")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, os.Getenv("DATABASE_URL"), database.Options{MaxConns: 1})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer pool.Close()

	report, err := repository.NewPGXNotariesRepository(pool).Coverage(ctx, *top)
	if err != nil {
		log.Fatalf("failed to build coverage report: %v", err)
	}

	fmt.Printf("Total notaries: %d\n", report.Total)
	fmt.Printf("With website:   %d (%s)\n", report.WithWebsite, percent(report.WithWebsite, report.Total))
	fmt.Printf("With phone:     %d (%s)\n", report.WithPhone, percent(report.WithPhone, report.Total))
	fmt.Printf("With photo:     %d (%s)\n", report.WithPhoto, percent(report.WithPhoto, report.Total))

	fmt.Printf("\nTop %d cities:\n", *top)
	for _, c := range report.TopCities {
		fmt.Printf("  %-28s %6d\n", c.City+", "+c.State, c.Count)
	}

	fmt.Println("\nStates:")
	for _, s := range report.States {
		fmt.Printf("  %-4s %6d\n", s.State, s.Count)
	}

	fmt.Println("\nServices:")
	names := make([]string, 0, len(report.ServiceCounts))
	for name := range report.ServiceCounts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-20s %6d\n", name, report.ServiceCounts[name])
	}
}

func percent(part, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)*100/float64(total))
}
