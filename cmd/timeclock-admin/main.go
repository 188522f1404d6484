package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/stempeluhr/timeclock/internal/config"
	"github.com/stempeluhr/timeclock/internal/db"
	"github.com/stempeluhr/timeclock/internal/export"
	"github.com/stempeluhr/timeclock/internal/timeclock/report"
	"github.com/stempeluhr/timeclock/internal/timeclock/service"
	"github.com/stempeluhr/timeclock/internal/timeclock/store"
	sqlitestore "github.com/stempeluhr/timeclock/internal/timeclock/store/sqlite"
)

const usage = `usage: timeclock-admin <command> [flags]

commands:
  employee add        -name NAME -tag TAG [-admin]
  employee list       [-all]
  employee rename     -tag TAG -name NAME
  employee deactivate -tag TAG
  entries             -tag TAG
  insert              -tag TAG [-time "2006-01-02 15:04:05"]
  delete              -id ID [-tag TAG] [-force]
  daycode             -tag TAG -date DATE [-upper CODE] [-lower CODE] [-seconds N] [-notes TEXT] [-clear]
  report              -tag TAG [-from DATE] [-to DATE] [-csv] [-pdf] [-encrypt]
`

type app struct {
	cfg       config.Config
	employees *service.EmployeeService
	clock     *service.ClockService
	dayCodes  *service.DayCodeService
	reports   *report.Service
	events    store.EventStore
	stdin     *bufio.Reader
}

func main() {
	logger := log.New(os.Stderr, "timeclock-admin ", log.LstdFlags|log.LUTC)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.FromEnv()

	conn, err := db.Open(ctx, db.Config{Path: cfg.DBPath, Env: cfg.Env})
	if err != nil {
		logger.Fatalf("open db: %v", err)
	}
	defer conn.Close()

	writer := db.NewWorker(conn)
	defer writer.Close()

	employeeStore := sqlitestore.NewEmployeeStore(conn, writer)
	eventStore := sqlitestore.NewEventStore(conn, writer)
	dayCodeStore := sqlitestore.NewDayCodeStore(conn, writer)

	reconciler := service.NewReconciler(eventStore, logger)
	locks := service.NewLockRegistry()

	a := &app{
		cfg:       cfg,
		employees: service.NewEmployeeService(employeeStore, logger),
		clock:     service.NewClockService(employeeStore, eventStore, reconciler, locks, logger),
		dayCodes:  service.NewDayCodeService(employeeStore, dayCodeStore, logger),
		reports:   report.NewService(eventStore, dayCodeStore, logger),
		events:    eventStore,
		stdin:     bufio.NewReader(os.Stdin),
	}

	switch os.Args[1] {
	case "employee":
		err = a.runEmployee(ctx, os.Args[2:])
	case "entries":
		err = a.runEntries(ctx, os.Args[2:])
	case "insert":
		err = a.runInsert(ctx, os.Args[2:])
	case "delete":
		err = a.runDelete(ctx, os.Args[2:])
	case "daycode":
		err = a.runDayCode(ctx, os.Args[2:])
	case "report":
		err = a.runReport(ctx, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func (a *app) runEmployee(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("employee: missing subcommand (add, list, rename, deactivate)")
	}

	switch args[0] {
	case "add":
		fs := flag.NewFlagSet("employee add", flag.ExitOnError)
		name := fs.String("name", "", "employee display name")
		tag := fs.String("tag", "", "badge tag")
		admin := fs.Bool("admin", false, "grant administrator flag")
		fs.Parse(args[1:])

		emp, err := a.employees.Register(ctx, *name, *tag, *admin)
		if err != nil {
			return err
		}
		fmt.Printf("created %s (%s)\n", emp.Name, emp.BadgeTag)
		return nil

	case "list":
		fs := flag.NewFlagSet("employee list", flag.ExitOnError)
		all := fs.Bool("all", false, "include deactivated employees")
		fs.Parse(args[1:])

		emps, err := a.employees.List(ctx, *all)
		if err != nil {
			return err
		}
		for _, emp := range emps {
			flags := ""
			if emp.IsAdmin {
				flags += " admin"
			}
			if !emp.Active {
				flags += " inactive"
			}
			fmt.Printf("%-12s %-30s%s\n", emp.BadgeTag, emp.Name, flags)
		}
		return nil

	case "rename":
		fs := flag.NewFlagSet("employee rename", flag.ExitOnError)
		tag := fs.String("tag", "", "badge tag")
		name := fs.String("name", "", "new display name")
		fs.Parse(args[1:])

		emp, err := a.employees.ByBadge(ctx, *tag)
		if err != nil {
			return err
		}
		if err := a.employees.Rename(ctx, emp.ID, *name); err != nil {
			return err
		}
		fmt.Printf("renamed %s to %q\n", emp.BadgeTag, strings.TrimSpace(*name))
		return nil

	case "deactivate":
		fs := flag.NewFlagSet("employee deactivate", flag.ExitOnError)
		tag := fs.String("tag", "", "badge tag")
		fs.Parse(args[1:])

		emp, err := a.employees.ByBadge(ctx, *tag)
		if err != nil {
			return err
		}
		if err := a.employees.Deactivate(ctx, emp.ID); err != nil {
			return err
		}
		fmt.Printf("deactivated %s (%s); ledger history is kept\n", emp.Name, emp.BadgeTag)
		return nil

	default:
		return fmt.Errorf("employee: unknown subcommand %q", args[0])
	}
}

func (a *app) runEntries(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("entries", flag.ExitOnError)
	tag := fs.String("tag", "", "badge tag")
	fs.Parse(args)

	emp, err := a.employees.ByBadge(ctx, *tag)
	if err != nil {
		return err
	}

	entries, err := a.events.ListActive(ctx, emp.ID, nil, nil)
	if err != nil {
		return err
	}
	fmt.Printf("%d active entries for %s (%s)\n", len(entries), emp.Name, emp.BadgeTag)
	for _, ev := range entries {
		fmt.Printf("%6d  %s  %s\n",
			ev.ID, ev.Timestamp.Local().Format("2006-01-02 15:04:05"),
			strings.ToUpper(string(ev.Action)))
	}
	return nil
}

func (a *app) runInsert(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("insert", flag.ExitOnError)
	tag := fs.String("tag", "", "badge tag")
	at := fs.String("time", "", "entry timestamp (defaults to now)")
	fs.Parse(args)

	emp, err := a.employees.ByBadge(ctx, *tag)
	if err != nil {
		return err
	}

	ts := time.Now()
	if *at != "" {
		ts, err = parseTimestamp(*at)
		if err != nil {
			return err
		}
	}

	res, corrected, err := a.clock.InsertAt(ctx, emp.ID, ts)
	if err != nil {
		return err
	}
	fmt.Printf("inserted %s for %s @ %s (entry %d)\n",
		strings.ToUpper(string(res.Action)), emp.Name,
		res.Event.Timestamp.Local().Format("2006-01-02 15:04:05"), res.Event.ID)
	if corrected > 0 {
		fmt.Printf("recalculated %d subsequent entry action(s)\n", corrected)
	}
	return nil
}

func (a *app) runDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.Int64("id", 0, "entry ID to delete")
	tag := fs.String("tag", "", "badge tag, verified against the entry's owner")
	force := fs.Bool("force", false, "skip verification and confirmation")
	fs.Parse(args)

	ev, err := a.events.ByID(ctx, *id)
	if err != nil {
		return err
	}
	if !ev.Active {
		return fmt.Errorf("entry %d is already deleted", *id)
	}

	owner, err := a.employees.ByID(ctx, ev.EmployeeID)
	if err != nil {
		return err
	}

	if !*force && *tag != "" &&
		!strings.EqualFold(strings.TrimSpace(*tag), owner.BadgeTag) {
		return fmt.Errorf("entry %d belongs to %s (%s), not %q",
			*id, owner.Name, owner.BadgeTag, *tag)
	}

	fmt.Printf("entry %d: %s %s @ %s\n", ev.ID, owner.Name,
		strings.ToUpper(string(ev.Action)),
		ev.Timestamp.Local().Format("2006-01-02 15:04:05"))

	if !*force {
		fmt.Print("delete this entry? (yes/no): ")
		line, err := a.stdin.ReadString('\n')
		if err != nil {
			return err
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		if answer != "yes" && answer != "y" {
			fmt.Println("cancelled")
			return nil
		}
	}

	deleted, corrected, err := a.clock.DeleteEvents(ctx, []int64{*id})
	if err != nil {
		return err
	}
	fmt.Printf("deleted %d entry, recalculated %d action(s)\n", deleted, corrected)
	return nil
}

func (a *app) runDayCode(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("daycode", flag.ExitOnError)
	tag := fs.String("tag", "", "badge tag")
	date := fs.String("date", "", "date (YYYY-MM-DD)")
	upper := fs.String("upper", "", "upper code (A, X, FT, F, K, U, Mu, Mi, D)")
	lower := fs.String("lower", "", "lower code or HH:MM")
	seconds := fs.Int64("seconds", 0, "worked seconds for the day")
	notes := fs.String("notes", "", "free-form notes")
	clear := fs.Bool("clear", false, "remove the entry for the date")
	fs.Parse(args)

	emp, err := a.employees.ByBadge(ctx, *tag)
	if err != nil {
		return err
	}

	if *clear {
		if err := a.dayCodes.Clear(ctx, emp.ID, *date); err != nil {
			return err
		}
		fmt.Printf("cleared day code for %s on %s\n", emp.Name, *date)
		return nil
	}

	rec, err := a.dayCodes.Set(ctx, emp.ID, *date, *upper, *lower, *seconds, *notes)
	if err != nil {
		return err
	}
	fmt.Printf("set day code for %s on %s [%s/%s]\n", emp.Name, rec.Date, rec.UpperCode, rec.LowerCode)
	return nil
}

func (a *app) runReport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	tag := fs.String("tag", "", "badge tag")
	fromStr := fs.String("from", "", "range start (YYYY-MM-DD, defaults to first entry)")
	toStr := fs.String("to", "", "range end (YYYY-MM-DD, defaults to today)")
	toCSV := fs.Bool("csv", false, "write CSV export")
	toPDF := fs.Bool("pdf", false, "write PDF export")
	encrypt := fs.Bool("encrypt", false, "encrypt export files with TIMECLOCK_EXPORT_PASSPHRASE")
	fs.Parse(args)

	emp, err := a.employees.ByBadge(ctx, *tag)
	if err != nil {
		return err
	}

	var from, to time.Time
	if *fromStr != "" {
		if from, err = time.ParseInLocation("2006-01-02", *fromStr, time.Local); err != nil {
			return fmt.Errorf("bad -from date: %w", err)
		}
	}
	if *toStr != "" {
		if to, err = time.ParseInLocation("2006-01-02", *toStr, time.Local); err != nil {
			return fmt.Errorf("bad -to date: %w", err)
		}
	}

	rep, err := a.reports.Generate(ctx, emp, from, to)
	if err != nil {
		return err
	}
	fmt.Print(report.RenderText(rep))

	if !*toCSV && !*toPDF {
		return nil
	}
	if *encrypt && a.cfg.ExportPassphrase == "" {
		return fmt.Errorf("encryption requested but TIMECLOCK_EXPORT_PASSPHRASE is not set")
	}

	dir, err := export.Directory(a.cfg.ExportPath)
	if err != nil {
		return err
	}

	var paths []string
	if *toCSV {
		p, err := export.WriteReportCSV(dir, rep)
		if err != nil {
			return err
		}
		paths = append(paths, p)
	}
	if *toPDF {
		p, err := export.WriteReportPDF(dir, rep)
		if err != nil {
			return err
		}
		paths = append(paths, p)
	}

	for i, p := range paths {
		if *encrypt {
			if p, err = export.EncryptFile(p, a.cfg.ExportPassphrase); err != nil {
				return err
			}
			paths[i] = p
		}
		fmt.Printf("exported %s\n", paths[i])
	}
	return nil
}

// parseTimestamp accepts the formats admins actually type; date-only values
// mean midnight, time-only values mean today.
func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	layouts := []string{
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006-01-02",
		"02.01.2006 15:04:05",
		"02.01.2006 15:04",
		"02.01.2006",
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			now := time.Now()
			return time.Date(now.Year(), now.Month(), now.Day(),
				t.Hour(), t.Minute(), t.Second(), 0, time.Local), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
