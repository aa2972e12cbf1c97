package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mattn/go-isatty"

	"rugstore/internal/cli"
	"rugstore/internal/core"
	"rugstore/internal/log"
	"rugstore/internal/services"
)

const usage = `Usage: rugstore <command> [options]

Commands:
  add      Record a new cleaning job (creates the customer if needed)
  list     Show all jobs with their customers
  search   Show jobs for customers whose name contains a substring
  status   Update the cleaning status of a job
  trends   Show income and job volume per due date
  help     Show this message

Run 'rugstore <command> -h' for command options.
`

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	command := os.Args[1]
	args := os.Args[2:]

	if command == "help" || command == "-h" || command == "--help" {
		fmt.Print(usage)
		return
	}

	cfg := cli.LoadAndValidateConfig(logger)
	store := cli.InitStore(logger, cfg.SQLiteDBPath)

	intake := services.NewIntakeService(store)
	reports := services.NewReportService(store)

	ctx := context.Background()
	var err error
	switch command {
	case "add":
		err = runAdd(ctx, intake, args)
	case "list":
		err = runList(ctx, reports)
	case "search":
		err = runSearch(ctx, reports, args)
	case "status":
		err = runStatus(ctx, intake, args)
	case "trends":
		err = runTrends(ctx, reports)
	default:
		fmt.Fprintf(os.Stderr, "rugstore: unknown command %q\n\n%s", command, usage)
		store.Close()
		os.Exit(2)
	}

	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("Failed to close store", log.FieldError, closeErr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "rugstore: %v\n", err)
		os.Exit(1)
	}
}

func runAdd(ctx context.Context, intake *services.IntakeService, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	customer := fs.String("customer", "", "customer name (required)")
	contact := fs.String("contact", "", "customer contact info")
	rugType := fs.String("type", "", "rug type")
	size := fs.String("size", "", "rug size")
	price := fs.String("price", "", "price, e.g. 75 or 75.50 (required)")
	received := fs.String("received", "", "received date, YYYY-MM-DD (required)")
	due := fs.String("due", "", "due date, YYYY-MM-DD (required)")
	photo := fs.String("photo", "", "path to a photo of the rug")
	if err := fs.Parse(args); err != nil {
		return err
	}

	job, err := intake.AddJob(ctx, services.IntakeRequest{
		CustomerName: *customer,
		ContactInfo:  *contact,
		Type:         *rugType,
		Size:         *size,
		Price:        *price,
		ReceivedDate: *received,
		DueDate:      *due,
		PhotoPath:    *photo,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Created job %d for %s, due %s, $%.2f\n",
		job.ID, job.Customer.Name, job.DueDate, job.Price.Dollars())
	return nil
}

func runList(ctx context.Context, reports *services.ReportService) error {
	jobs, err := reports.ListJobs(ctx)
	if err != nil {
		return err
	}
	printJobs(jobs)
	return nil
}

func runSearch(ctx context.Context, reports *services.ReportService, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	name := fs.String("name", "", "customer name substring (empty matches everyone)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	jobs, err := reports.SearchByCustomerName(ctx, *name)
	if err != nil {
		return err
	}
	printJobs(jobs)
	return nil
}

func runStatus(ctx context.Context, intake *services.IntakeService, args []string) error {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	id := fs.Int64("id", 0, "job identifier (required)")
	status := fs.String("status", "", `one of "Not Started", "Not Ready", "Cleaning", "Ready" (required)`)
	if err := fs.Parse(args); err != nil {
		return err
	}

	job, err := intake.UpdateStatus(ctx, *id, *status)
	if err != nil {
		return err
	}

	fmt.Printf("Job %d is now %s\n", job.ID, job.Status)
	return nil
}

func runTrends(ctx context.Context, reports *services.ReportService) error {
	trend, err := reports.AggregateByDueDate(ctx)
	if err != nil {
		return err
	}
	if len(trend.Dates) == 0 {
		fmt.Println("No jobs recorded yet.")
		return nil
	}

	var maxIncome int64
	maxCount := 0
	for i := range trend.Dates {
		if trend.Incomes[i].Cents > maxIncome {
			maxIncome = trend.Incomes[i].Cents
		}
		if trend.Counts[i] > maxCount {
			maxCount = trend.Counts[i]
		}
	}

	fmt.Println("Income per day")
	for i, date := range trend.Dates {
		fmt.Printf("  %s  %9s  %s\n",
			date, fmt.Sprintf("$%.2f", trend.Incomes[i].Dollars()),
			bar(trend.Incomes[i].Cents, maxIncome))
	}

	fmt.Println()
	fmt.Println("Jobs per day")
	for i, date := range trend.Dates {
		fmt.Printf("  %s  %9d  %s\n",
			date, trend.Counts[i],
			bar(int64(trend.Counts[i]), int64(maxCount)))
	}
	return nil
}

func printJobs(jobs []core.Job) {
	if len(jobs) == 0 {
		fmt.Println("No jobs found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCUSTOMER\tTYPE\tSIZE\tRECEIVED\tDUE\tSTATUS\tPRICE\tPHOTO")
	for _, job := range jobs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t$%.2f\t%s\n",
			job.ID,
			job.Customer.Name,
			job.Type,
			job.Size,
			job.ReceivedDate,
			job.DueDate,
			colorStatus(job.Status),
			job.Price.Dollars(),
			job.PhotoPath)
	}
	w.Flush()
}

// colorStatus applies the status color scheme when stdout is a terminal:
// Not Ready is gray, Cleaning blue, Ready green, anything else default.
// Every code pair has the same byte length so tabwriter columns stay aligned.
func colorStatus(status core.Status) string {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return status.String()
	}
	var code string
	switch status {
	case core.StatusNotReady:
		code = "\x1b[90m"
	case core.StatusCleaning:
		code = "\x1b[34m"
	case core.StatusReady:
		code = "\x1b[32m"
	default:
		code = "\x1b[39m"
	}
	return code + status.String() + "\x1b[0m"
}

const barWidth = 40

func bar(value, max int64) string {
	if max <= 0 {
		return ""
	}
	n := int(value * barWidth / max)
	if n == 0 && value > 0 {
		n = 1
	}
	return strings.Repeat("#", n)
}
