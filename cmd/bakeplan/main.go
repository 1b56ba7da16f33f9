package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"bakeplan/internal/catalog"
	"bakeplan/internal/client"
	"bakeplan/internal/config"
	"bakeplan/internal/database"
	"bakeplan/internal/metrics"
	"bakeplan/internal/planner"
)

func main() {
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	planClient := client.New(cfg.ServerURL, catalog.Default())

	switch os.Args[1] {
	case "plan":
		if err := runPlan(ctx, planClient, os.Args[2:]); err != nil {
			log.Fatalf("Planning failed: %v", err)
		}
	case "show":
		if len(os.Args) < 3 {
			fmt.Println("Usage: bakeplan show <plan-id>")
			os.Exit(1)
		}
		if err := runShow(ctx, planClient, os.Args[2]); err != nil {
			log.Fatalf("Lookup failed: %v", err)
		}
	case "metrics":
		metricsCmd := flag.NewFlagSet("metrics", flag.ExitOnError)
		days := metricsCmd.Int("days", 7, "Show usage for the last N days")
		metricsCmd.Parse(os.Args[2:])

		if err := runMetrics(cfg, *days); err != nil {
			log.Fatalf("Metrics failed: %v", err)
		}
	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(os.Args[2:])

		if err := runMetricsCleanup(cfg, *days); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		fmt.Println("Old metric records removed.")
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runPlan(ctx context.Context, planClient *client.Client, args []string) error {
	planCmd := flag.NewFlagSet("plan", flag.ExitOnError)
	flour := planCmd.Int("flour", -1, "Flour stock in grams (default: server default)")
	butter := planCmd.Int("butter", -1, "Butter stock in grams")
	sugar := planCmd.Int("sugar", -1, "Sugar stock in grams")
	eggs := planCmd.Int("eggs", -1, "Egg stock in units")
	capacity := planCmd.Int("capacity", -1, "Production capacity in units")
	branch := planCmd.String("branch", "branch-a", "Branch identifier")
	weather := planCmd.String("weather", "sunny", "Weather category (sunny, rain, cloudy, overcast)")
	special := planCmd.Bool("special", false, "Special day")
	planCmd.Parse(args)

	req := buildRequest(*flour, *butter, *sugar, *eggs, *capacity, *branch, *weather, *special)
	outcome := planClient.Plan(ctx, req)

	if outcome.Notice != "" {
		fmt.Printf("Note: %s — plan computed locally.\n\n", outcome.Notice)
	}
	fmt.Printf("=== PRODUCTION PLAN (source: %s) ===\n", outcome.Source)
	for _, item := range outcome.Result.Plan {
		fmt.Printf("% -16s qty %4d  profit/unit %7.2f  leftover %3d  margin %.2f\n",
			item.Product, item.Quantity, item.ProfitPerUnit, item.ExpectedLeftover, item.GPMargin)
		if item.PromotionSuggestion != nil {
			fmt.Printf("                 -> %s\n", *item.PromotionSuggestion)
		}
	}
	if len(outcome.Result.Plan) == 0 {
		fmt.Println("No production possible with the given stock and capacity.")
	}

	fmt.Println("\n=== FORECAST ===")
	for name, pred := range outcome.Result.Forecast {
		fmt.Printf("% -16s %d units\n", name, pred)
	}

	fmt.Println("\n=== REMAINING STOCK ===")
	for res, qty := range outcome.Result.RemainingStock {
		fmt.Printf("% -8s %d\n", res, qty)
	}

	if outcome.ID != "" {
		fmt.Printf("\nSaved as plan %s\n", outcome.ID)
	}
	return nil
}

func runShow(ctx context.Context, planClient *client.Client, id string) error {
	rec, err := planClient.GetPlan(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("Plan %s (source %s, created %s)\n", rec.ID, rec.Source, rec.CreatedAt.Format(time.RFC3339))
	fmt.Printf("Input:  %s\n", rec.Input)
	fmt.Printf("Result: %s\n", rec.Result)
	return nil
}

func runMetrics(cfg *config.Config, days int) error {
	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	usage, err := metrics.NewStore(db.SQL).GetDailyUsage(days)
	if err != nil {
		return err
	}
	if len(usage) == 0 {
		fmt.Println("No planning activity recorded.")
		return nil
	}
	for _, u := range usage {
		fmt.Printf("%s: %d runs, %d plan rows, %d ms total\n", u.Date, u.TotalRuns, u.TotalItems, u.TotalLatencyMS)
	}
	return nil
}

func runMetricsCleanup(cfg *config.Config, days int) error {
	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	return metrics.NewStore(db.SQL).Cleanup(days)
}

// buildRequest maps CLI flags onto a planning request. Flags left at their
// -1 sentinel are omitted so the server-side defaults apply.
func buildRequest(flour, butter, sugar, eggs, capacity int, branch, weather string, special bool) planner.Request {
	set := func(v int) *int {
		if v < 0 {
			return nil
		}
		return &v
	}
	return planner.Request{
		Inputs: planner.Inputs{
			Flour:    set(flour),
			Butter:   set(butter),
			Sugar:    set(sugar),
			Eggs:     set(eggs),
			Capacity: set(capacity),
		},
		Branch:     branch,
		Date:       time.Now().Format(time.RFC3339),
		Weather:    weather,
		SpecialDay: special,
	}
}

func printUsage() {
	fmt.Println("Usage: bakeplan <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  plan               Compute a production plan (local fallback when the server is down)")
	fmt.Println("  show <id>          Fetch a stored plan record from the server")
	fmt.Println("  metrics            Show recent planning activity")
	fmt.Println("  metrics-cleanup    Remove old metric records")
}
