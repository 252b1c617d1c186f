// Command triage is the admin console for contact submissions and appointments.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/anikett35/MediMage/internal/logger"
	"github.com/anikett35/MediMage/internal/triage"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
)

type options struct {
	api       string
	tab       string
	search    string
	status    string
	priority  string
	sort      string
	deleteID  string
	deleteAll bool
	yes       bool
	setStatus string
	timeout   time.Duration
}

func parseFlags(args []string) (options, error) {
	var opts options

	fs := flag.NewFlagSet("triage", flag.ContinueOnError)
	fs.StringVar(&opts.api, "api", envOr("TRIAGE_API", "http://localhost:5000/api"), "base URL of the clinic API")
	fs.StringVar(&opts.tab, "tab", string(triage.TabContacts), "tab to show: contacts or appointments")
	fs.StringVar(&opts.search, "search", "", "case-insensitive search term")
	fs.StringVar(&opts.status, "status", triage.All, "status filter")
	fs.StringVar(&opts.priority, "priority", triage.All, "priority filter")
	fs.StringVar(&opts.sort, "sort", string(triage.SortNewest), "sort order: newest, oldest or priority")
	fs.StringVar(&opts.deleteID, "delete", "", "delete the record with this id")
	fs.BoolVar(&opts.deleteAll, "delete-all", false, "delete every record on the tab")
	fs.BoolVarP(&opts.yes, "yes", "y", false, "confirm --delete-all")
	fs.StringVar(&opts.setStatus, "set-status", "", "update a status, as id=status")
	fs.DurationVar(&opts.timeout, "timeout", 30*time.Second, "overall request timeout")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if !triage.Tab(opts.tab).Valid() {
		return opts, fmt.Errorf("invalid --tab %q: must be contacts or appointments", opts.tab)
	}
	if opts.deleteAll && !opts.yes {
		return opts, errors.New("--delete-all removes every record; pass --yes to confirm")
	}
	if opts.setStatus != "" {
		if _, _, err := splitStatus(opts.setStatus); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitStatus(s string) (id, status string, err error) {
	id, status, ok := strings.Cut(s, "=")
	if !ok || id == "" || status == "" {
		return "", "", fmt.Errorf("invalid --set-status %q: expected id=status", s)
	}
	return id, status, nil
}

func main() {
	_ = godotenv.Load()

	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "triage:", err)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	console := triage.NewConsole(triage.NewClient(opts.api, nil), logger.Discard())
	if err := run(ctx, console, opts, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "triage:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, console *triage.Console, opts options, out io.Writer) error {
	tab := triage.Tab(opts.tab)
	if err := console.SetTab(tab); err != nil {
		return err
	}
	console.SetFilter(triage.Filter{
		Search:   opts.search,
		Status:   opts.status,
		Priority: opts.priority,
	})
	console.SetSort(triage.SortKey(opts.sort))

	// The other tab only feeds the stats line, so its failure is not fatal.
	_ = console.Refresh(ctx)
	if err := console.View().Err; err != nil {
		return fmt.Errorf("load %s: %w", tab, err)
	}

	if err := mutate(ctx, console, tab, opts, out); err != nil {
		return err
	}

	render(out, console.View())
	return nil
}

func mutate(ctx context.Context, console *triage.Console, tab triage.Tab, opts options, out io.Writer) error {
	contacts := tab == triage.TabContacts

	if opts.setStatus != "" {
		id, status, _ := splitStatus(opts.setStatus)
		var err error
		if contacts {
			err = console.UpdateSubmissionStatus(ctx, id, status)
		} else {
			err = console.UpdateAppointmentStatus(ctx, id, status)
		}
		if err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		fmt.Fprintf(out, "Updated %s to %s\n", id, status)
	}

	if opts.deleteID != "" {
		var err error
		if contacts {
			err = console.DeleteSubmission(ctx, opts.deleteID)
		} else {
			err = console.DeleteAppointment(ctx, opts.deleteID)
		}
		if err != nil {
			return fmt.Errorf("delete: %w", err)
		}
		fmt.Fprintf(out, "Deleted %s\n", opts.deleteID)
	}

	if opts.deleteAll {
		var (
			n   int64
			err error
		)
		if contacts {
			n, err = console.DeleteAllSubmissions(ctx)
		} else {
			n, err = console.DeleteAllAppointments(ctx)
		}
		if err != nil {
			return fmt.Errorf("delete all: %w", err)
		}
		fmt.Fprintf(out, "Deleted %d %s\n", n, tab)
	}
	return nil
}
