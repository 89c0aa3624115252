package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"fintrack/internal/api"
	"fintrack/internal/cli"
	"fintrack/internal/config"
	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/prefs"
	"fintrack/internal/render"
	"fintrack/internal/report"
	"fintrack/internal/state"
)

const usage = `fintrack - personal finance tracker

Usage:
  fintrack register  -first NAME -last NAME -email EMAIL -password PASS
  fintrack dashboard [-month M -year Y]
  fintrack accounts  [list | create -name N -type T [-balance B]
                      | update -id ID [-name N] [-type T] [-balance B]
                      | delete -id ID]
  fintrack categories
  fintrack tx        [list | add -account ID -category ID -amount A [-date D] [-desc TEXT]
                      | delete -id ID]
  fintrack budgets   [list [-month M -year Y]
                      | create -category ID -limit L [-month M] [-year Y]
                      | update -id ID [-category ID] [-limit L] [-month M] [-year Y]
                      | delete -id ID]
  fintrack theme

Login credentials come from FINTRACK_EMAIL and FINTRACK_PASSWORD (or a .env
file). The backend address comes from FINTRACK_API_URL.
`

// app bundles what every subcommand needs.
type app struct {
	cfg    *config.Config
	logger *log.Logger
	client *api.Client
	prefs  *prefs.Store
	theme  render.Theme
}

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)
	store := cli.OpenPrefs(logger, cfg)
	defer store.Close()

	ctx := context.Background()
	a := &app{
		cfg:    cfg,
		logger: logger,
		client: api.NewClient(cfg.APIBaseURL, cfg.APITimeout, logger),
		prefs:  store,
		theme:  render.ForName(store.Theme(ctx)),
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "register":
		err = a.register(ctx, os.Args[2:])
	case "dashboard":
		err = a.dashboard(ctx, os.Args[2:])
	case "accounts":
		err = a.accounts(ctx, os.Args[2:])
	case "categories":
		err = a.categories(ctx)
	case "tx":
		err = a.transactions(ctx, os.Args[2:])
	case "budgets":
		err = a.budgets(ctx, os.Args[2:])
	case "theme":
		err = a.toggleTheme(ctx)
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// login authenticates with env credentials, starts a session, and runs the
// first full refresh.
func (a *app) login(ctx context.Context) (*state.Session, *state.Coordinator, error) {
	email := os.Getenv("FINTRACK_EMAIL")
	if email == "" {
		email = a.prefs.LastEmail(ctx)
	}
	password := os.Getenv("FINTRACK_PASSWORD")
	if email == "" || password == "" {
		return nil, nil, errors.New("set FINTRACK_EMAIL and FINTRACK_PASSWORD to log in")
	}

	user, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, nil, fmt.Errorf("login: %w", err)
	}
	if err := a.prefs.RememberEmail(ctx, email); err != nil {
		a.logger.Warn("Could not remember login email", log.FieldError, err.Error())
	}

	session := state.NewSession(user, time.Now())
	coordinator := state.NewCoordinator(a.client, a.logger)
	if err := coordinator.Refresh(ctx, session); err != nil {
		return nil, nil, err
	}
	return session, coordinator, nil
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	fs.Parse(args)

	if *first == "" || *last == "" || *email == "" || *password == "" {
		return errors.New("all fields are required to create an account")
	}
	err := a.client.CreateUser(ctx, api.UserPayload{
		FirstName: *first, LastName: *last, Email: *email, Password: *password,
	})
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	if err := a.prefs.RememberEmail(ctx, *email); err == nil {
		fmt.Println("User created. Now login with FINTRACK_EMAIL and FINTRACK_PASSWORD.")
	} else {
		fmt.Println("User created. Now login.")
	}
	return nil
}

// applyPeriodFlags sets the explicit period filter when both flags are
// given; a lone month or year is ignored, as in the web client.
func applyPeriodFlags(s *state.Session, month, year int) {
	if month != 0 && year != 0 {
		s.Filter.Set(month, year)
	}
}

func (a *app) dashboard(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("dashboard", flag.ExitOnError)
	month := fs.Int("month", 0, "budget month filter (1-12)")
	year := fs.Int("year", 0, "budget year filter")
	fs.Parse(args)

	session, coordinator, err := a.login(ctx)
	if err != nil {
		return err
	}
	if *month != 0 && *year != 0 {
		applyPeriodFlags(session, *month, *year)
		// the budgets fetch honors the explicit filter
		if err := coordinator.Refresh(ctx, session); err != nil {
			return err
		}
	}

	now := time.Now()
	snap := session.Snapshot()
	period := session.Filter.Resolve(now)
	totals := report.ComputeTotals(snap.Transactions)
	ranking := report.SpendRanking(snap.Transactions)
	rows := report.BudgetRows(snap.Budgets, snap.Transactions, period)

	fmt.Println(render.Whoami(a.theme, session.User, now))
	fmt.Println()
	fmt.Print(render.Dashboard(a.theme, snap, totals, ranking, rows, session.Filter.Label(now)))
	return nil
}

func (a *app) accounts(ctx context.Context, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}
	fs := flag.NewFlagSet("accounts "+sub, flag.ExitOnError)
	id := fs.Int("id", 0, "account id")
	name := fs.String("name", "", "account name")
	typ := fs.String("type", "", "account type (checking/savings/credit/investment/other)")
	balance := fs.String("balance", "", "current balance")
	fs.Parse(args)

	session, coordinator, err := a.login(ctx)
	if err != nil {
		return err
	}
	snap := session.Snapshot()

	switch sub {
	case "list":
		fmt.Print(render.Accounts(a.theme, snap.Accounts))
		return nil

	case "create":
		form := &session.AccountForm
		form.Name = *name
		form.Type = *typ
		if *balance != "" {
			form.Balance = *balance
		}
		if err := form.Validate(); err != nil {
			return fmt.Errorf("account form: %w", err)
		}
		if err := a.client.CreateAccount(ctx, form.Payload(session.User.ID)); err != nil {
			form.Submitted(false)
			return err
		}
		form.Submitted(true)
		return coordinator.Refresh(ctx, session)

	case "update":
		record, ok := findAccount(snap, *id)
		if !ok {
			return fmt.Errorf("no account with id %d", *id)
		}
		form := &session.AccountForm
		form.BeginEdit(record)
		if *name != "" {
			form.Name = *name
		}
		if *typ != "" {
			form.Type = *typ
		}
		if *balance != "" {
			form.Balance = *balance
		}
		if err := form.Validate(); err != nil {
			return fmt.Errorf("account form: %w", err)
		}
		if err := a.client.UpdateAccount(ctx, form.EditID(), form.Payload(session.User.ID)); err != nil {
			form.Submitted(false)
			return err
		}
		form.Submitted(true)
		return coordinator.Refresh(ctx, session)

	case "delete":
		if *id == 0 {
			return errors.New("delete requires -id")
		}
		if err := a.client.DeleteAccount(ctx, *id); err != nil {
			return err
		}
		return coordinator.Refresh(ctx, session)

	default:
		return fmt.Errorf("unknown accounts subcommand %q", sub)
	}
}

// categories lists the shared category catalog. The collection is global,
// so no login is needed.
func (a *app) categories(ctx context.Context) error {
	categories, err := a.client.Categories(ctx)
	if err != nil {
		return err
	}
	fmt.Print(render.Categories(a.theme, categories))
	return nil
}

func (a *app) transactions(ctx context.Context, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}
	fs := flag.NewFlagSet("tx "+sub, flag.ExitOnError)
	id := fs.Int("id", 0, "transaction id")
	account := fs.Int("account", 0, "account id")
	category := fs.Int("category", 0, "category id")
	date := fs.String("date", "", "transaction date (YYYY-MM-DD, default today)")
	amount := fs.String("amount", "", "signed amount (negative = expense)")
	desc := fs.String("desc", "", "description")
	fs.Parse(args)

	session, coordinator, err := a.login(ctx)
	if err != nil {
		return err
	}

	switch sub {
	case "list":
		fmt.Print(render.Transactions(a.theme, session.Snapshot()))
		return nil

	case "add":
		form := &session.TransactionForm
		form.AccountID = *account
		form.CategoryID = *category
		if *date != "" {
			form.Date = *date
		}
		form.Amount = *amount
		form.Description = *desc
		if err := form.Validate(); err != nil {
			return fmt.Errorf("transaction form: %w", err)
		}
		if err := a.client.CreateTransaction(ctx, form.Payload(session.User.ID)); err != nil {
			return err
		}
		session.ResetForms(time.Now())
		return coordinator.Refresh(ctx, session)

	case "delete":
		if *id == 0 {
			return errors.New("delete requires -id")
		}
		if err := a.client.DeleteTransaction(ctx, *id); err != nil {
			return err
		}
		return coordinator.Refresh(ctx, session)

	default:
		return fmt.Errorf("unknown tx subcommand %q", sub)
	}
}

func (a *app) budgets(ctx context.Context, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}
	fs := flag.NewFlagSet("budgets "+sub, flag.ExitOnError)
	id := fs.Int("id", 0, "budget id")
	category := fs.Int("category", 0, "category id")
	limit := fs.String("limit", "", "amount limit")
	month := fs.Int("month", 0, "budget month (1-12)")
	year := fs.Int("year", 0, "budget year")
	fs.Parse(args)

	session, coordinator, err := a.login(ctx)
	if err != nil {
		return err
	}

	switch sub {
	case "list":
		if *month != 0 && *year != 0 {
			applyPeriodFlags(session, *month, *year)
			if err := coordinator.Refresh(ctx, session); err != nil {
				return err
			}
		}
		fmt.Print(render.Budgets(a.theme, session.Snapshot()))
		return nil

	case "create":
		form := &session.BudgetForm
		form.CategoryID = *category
		form.Limit = *limit
		if *month != 0 {
			form.Month = *month
		}
		if *year != 0 {
			form.Year = *year
		}
		if err := form.Validate(); err != nil {
			return fmt.Errorf("budget form: %w", err)
		}
		if err := a.client.CreateBudget(ctx, form.Payload(session.User.ID)); err != nil {
			form.Submitted(false, time.Now())
			return err
		}
		form.Submitted(true, time.Now())
		return coordinator.Refresh(ctx, session)

	case "update":
		record, ok := findBudget(session.Snapshot(), *id)
		if !ok {
			return fmt.Errorf("no budget with id %d", *id)
		}
		form := &session.BudgetForm
		form.BeginEdit(record)
		if *category != 0 {
			form.CategoryID = *category
		}
		if *limit != "" {
			form.Limit = *limit
		}
		if *month != 0 {
			form.Month = *month
		}
		if *year != 0 {
			form.Year = *year
		}
		if err := form.Validate(); err != nil {
			return fmt.Errorf("budget form: %w", err)
		}
		if err := a.client.UpdateBudget(ctx, form.EditID(), form.Payload(session.User.ID)); err != nil {
			form.Submitted(false, time.Now())
			return err
		}
		form.Submitted(true, time.Now())
		return coordinator.Refresh(ctx, session)

	case "delete":
		if *id == 0 {
			return errors.New("delete requires -id")
		}
		if err := a.client.DeleteBudget(ctx, *id); err != nil {
			return err
		}
		return coordinator.Refresh(ctx, session)

	default:
		return fmt.Errorf("unknown budgets subcommand %q", sub)
	}
}

func (a *app) toggleTheme(ctx context.Context) error {
	next, err := a.prefs.ToggleTheme(ctx)
	if err != nil {
		return fmt.Errorf("toggle theme: %w", err)
	}
	fmt.Println("Theme set to", next)
	return nil
}

func findAccount(snap *state.Snapshot, id int) (core.Account, bool) {
	for _, a := range snap.Accounts {
		if a.ID == id {
			return a, true
		}
	}
	return core.Account{}, false
}

func findBudget(snap *state.Snapshot, id int) (core.Budget, bool) {
	for _, b := range snap.Budgets {
		if b.ID == id {
			return b, true
		}
	}
	return core.Budget{}, false
}
