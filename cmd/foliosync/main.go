package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/khoahotran/folio-sync/adapters/credstore"
	"github.com/khoahotran/folio-sync/adapters/media_storage"
	"github.com/khoahotran/folio-sync/adapters/rest"
	authUC "github.com/khoahotran/folio-sync/internal/application/usecase/auth"
	mediaUC "github.com/khoahotran/folio-sync/internal/application/usecase/media"
	portfolioUC "github.com/khoahotran/folio-sync/internal/application/usecase/portfolio"
	"github.com/khoahotran/folio-sync/internal/config"
	"github.com/khoahotran/folio-sync/internal/domain/portfolio"
	"github.com/khoahotran/folio-sync/internal/domain/project"
	"github.com/khoahotran/folio-sync/pkg/logger"
	"github.com/khoahotran/folio-sync/pkg/tracing"
)

const usage = `usage: foliosync <command> [flags]

commands:
  login | logout | register | me
  show [username]
  set -field <headline|summary|location|website> -value <text>
  experience add|rm    education add|rm
  skill add|rm         reference add|rm|list
  project list|add|rm
  upload-cover -file <path>
`

// app bundles the wired client stack shared by every command.
type app struct {
	cfg     config.Config
	logger  logger.Logger
	creds   *credstore.Store
	client  *rest.Client
	session *authUC.SessionUseCase
	cache   *portfolioUC.Cache
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	ctx := context.Background()

	if cfg.OTLP.Endpoint != "" {
		tp, err := tracing.NewTracerProvider(cfg, appLogger, "foliosync")
		if err != nil {
			log.Fatalf("FATAL: cannot init tracing: %v", err)
		}
		defer tp.Shutdown(ctx)
	}

	a := &app{cfg: cfg, logger: appLogger}
	a.creds = credstore.New(cfg.Credentials.Path)
	a.client = rest.New(cfg.API.BaseURL,
		rest.WithTimeout(cfg.API.Timeout),
		rest.WithCredentials(a.creds),
		rest.WithLogger(appLogger),
		rest.WithOnUnauthorized(func() {
			if a.session != nil {
				a.session.ForceLogout()
			}
		}),
	)
	a.session = authUC.NewSessionUseCase(a.client, a.creds, appLogger)
	a.cache = portfolioUC.NewCache(a.client, appLogger)

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		log.Fatalf("foliosync %s: %v", os.Args[1], err)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.session.ExecuteLogout(ctx)
	case "register":
		return a.register(ctx, args)
	case "me":
		return a.me(ctx)
	case "show":
		return a.show(ctx, args)
	case "set":
		return a.setField(ctx, args)
	case "experience":
		return a.experience(ctx, args)
	case "education":
		return a.education(ctx, args)
	case "skill":
		return a.skill(ctx, args)
	case "reference":
		return a.reference(ctx, args)
	case "project":
		return a.project(ctx, args)
	case "upload-cover":
		return a.uploadCover(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	if err := a.session.ExecuteLogin(ctx, authUC.LoginInput{Email: *email, Password: *password}); err != nil {
		return err
	}
	fmt.Println("logged in")
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	phone := fs.String("phone", "", "phone number")
	fs.Parse(args)

	u, err := a.session.ExecuteRegister(ctx, authUC.RegisterInput{
		FirstName: *first,
		LastName:  *last,
		Email:     *email,
		Password:  *password,
		Phone:     *phone,
	})
	if err != nil {
		return err
	}
	fmt.Printf("registered %s (%s)\n", u.FullName(), u.Email)
	return nil
}

func (a *app) me(ctx context.Context) error {
	u, err := a.session.ExecuteMe(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s> @%s\n", u.FullName(), u.Email, u.Username)
	return nil
}

func (a *app) show(ctx context.Context, args []string) error {
	var p portfolio.Portfolio
	if len(args) > 0 {
		var err error
		if p, err = a.client.GetPortfolioByUsername(ctx, args[0]); err != nil {
			return err
		}
	} else {
		if err := a.cache.Refresh(ctx); err != nil {
			return err
		}
		p = a.cache.Portfolio()
	}

	fmt.Printf("%s — %s\n", p.User.FullName(), p.Headline)
	if p.Summary != "" {
		fmt.Println(p.Summary)
	}
	for _, e := range p.Experiences {
		end := e.EndDate
		if e.Current {
			end = "present"
		}
		fmt.Printf("  %s @ %s (%s – %s)  [%s]\n", e.Title, e.Company, e.StartDate, end, e.ID)
	}
	for _, e := range p.Education {
		fmt.Printf("  %s, %s  [%s]\n", e.Degree, e.School, e.ID)
	}
	for _, s := range p.Skills {
		fmt.Printf("  %s (%s)  [%s]\n", s.Name, s.Level, s.ID)
	}
	return nil
}

// setField routes through the same debounced FieldSync the interactive
// surfaces use; a one-shot CLI edit just flushes immediately.
func (a *app) setField(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("set", flag.ExitOnError)
	field := fs.String("field", "", "headline, summary, location or website")
	value := fs.String("value", "", "new value")
	fs.Parse(args)

	switch *field {
	case portfolioUC.FieldHeadline, portfolioUC.FieldSummary, portfolioUC.FieldLocation, portfolioUC.FieldWebsite:
	default:
		return fmt.Errorf("unknown field %q", *field)
	}

	sync := portfolioUC.NewProfileFieldSync(a.client, a.cache, portfolioUC.WithFieldLogger(a.logger))
	defer sync.Close()
	sync.Set(*field, *value)
	return sync.Flush(ctx)
}

func (a *app) experience(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("expected add or rm")
	}
	coord := portfolioUC.NewExperienceCoordinator(a.client, a.cache, a.logger)

	switch args[0] {
	case "add":
		fs := flag.NewFlagSet("experience add", flag.ExitOnError)
		title := fs.String("title", "", "job title")
		company := fs.String("company", "", "company name")
		location := fs.String("location", "", "location")
		start := fs.String("start", "", "start date (YYYY-MM-DD)")
		end := fs.String("end", "", "end date (YYYY-MM-DD)")
		current := fs.Bool("current", false, "still in this role")
		desc := fs.String("desc", "", "description")
		fs.Parse(args[1:])

		e, err := coord.Add(ctx, portfolio.Experience{
			Title:       *title,
			Company:     *company,
			Location:    *location,
			StartDate:   *start,
			EndDate:     *end,
			Current:     *current,
			Description: *desc,
		})
		if err != nil {
			return err
		}
		fmt.Printf("added experience %s\n", e.ID)
		return nil
	case "rm":
		id, err := parseIDFlag("experience rm", args[1:])
		if err != nil {
			return err
		}
		return coord.Remove(ctx, id)
	}
	return fmt.Errorf("unknown subcommand %q", args[0])
}

func (a *app) education(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("expected add or rm")
	}
	coord := portfolioUC.NewEducationCoordinator(a.client, a.cache, a.logger)

	switch args[0] {
	case "add":
		fs := flag.NewFlagSet("education add", flag.ExitOnError)
		school := fs.String("school", "", "school name")
		degree := fs.String("degree", "", "degree")
		field := fs.String("field", "", "field of study")
		startYear := fs.Int("start", 0, "start year")
		endYear := fs.Int("end", 0, "end year")
		current := fs.Bool("current", false, "still enrolled")
		fs.Parse(args[1:])

		e, err := coord.Add(ctx, portfolio.Education{
			School:    *school,
			Degree:    *degree,
			Field:     *field,
			StartYear: *startYear,
			EndYear:   *endYear,
			Current:   *current,
		})
		if err != nil {
			return err
		}
		fmt.Printf("added education %s\n", e.ID)
		return nil
	case "rm":
		id, err := parseIDFlag("education rm", args[1:])
		if err != nil {
			return err
		}
		return coord.Remove(ctx, id)
	}
	return fmt.Errorf("unknown subcommand %q", args[0])
}

func (a *app) skill(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("expected add or rm")
	}
	coord := portfolioUC.NewSkillCoordinator(a.client, a.cache, a.logger)

	switch args[0] {
	case "add":
		fs := flag.NewFlagSet("skill add", flag.ExitOnError)
		name := fs.String("name", "", "skill name")
		level := fs.String("level", "INTERMEDIATE", "beginner, intermediate, advanced or expert")
		fs.Parse(args[1:])

		lv, err := portfolio.ParseLevel(*level)
		if err != nil {
			return err
		}
		s, err := coord.Add(ctx, portfolio.Skill{Name: *name, Level: lv})
		if err != nil {
			return err
		}
		fmt.Printf("added skill %s\n", s.ID)
		return nil
	case "rm":
		id, err := parseIDFlag("skill rm", args[1:])
		if err != nil {
			return err
		}
		return coord.Remove(ctx, id)
	}
	return fmt.Errorf("unknown subcommand %q", args[0])
}

func (a *app) reference(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("expected add, rm or list")
	}
	coord := portfolioUC.NewReferenceCoordinator(a.client, a.cache, a.logger)

	switch args[0] {
	case "add":
		fs := flag.NewFlagSet("reference add", flag.ExitOnError)
		name := fs.String("name", "", "referee name")
		position := fs.String("position", "", "referee position")
		company := fs.String("company", "", "referee company")
		email := fs.String("email", "", "referee email")
		phone := fs.String("phone", "", "referee phone")
		relationship := fs.String("relationship", "", "working relationship")
		fs.Parse(args[1:])

		r, err := coord.Add(ctx, portfolio.Reference{
			Name:         *name,
			Position:     *position,
			Company:      *company,
			Email:        *email,
			Phone:        *phone,
			Relationship: *relationship,
		})
		if err != nil {
			return err
		}
		fmt.Printf("added reference %s\n", r.ID)
		return nil
	case "rm":
		id, err := parseIDFlag("reference rm", args[1:])
		if err != nil {
			return err
		}
		return coord.Remove(ctx, id)
	case "list":
		if err := a.cache.RefreshReferences(ctx); err != nil {
			return err
		}
		for _, r := range a.cache.References() {
			fmt.Printf("%s, %s @ %s (%s)  [%s]\n", r.Name, r.Position, r.Company, r.Relationship, r.ID)
		}
		return nil
	}
	return fmt.Errorf("unknown subcommand %q", args[0])
}

func (a *app) project(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("expected list, add or rm")
	}

	switch args[0] {
	case "list":
		projects, err := a.client.ListProjects(ctx)
		if err != nil {
			return err
		}
		for _, p := range projects {
			fmt.Printf("%s  [%s]\n", p.Name, p.ID)
		}
		return nil
	case "add":
		fs := flag.NewFlagSet("project add", flag.ExitOnError)
		name := fs.String("name", "", "project name")
		desc := fs.String("desc", "", "description")
		github := fs.String("github", "", "github url")
		fs.Parse(args[1:])

		p, err := a.client.AddProject(ctx, project.Project{Name: *name, Description: *desc, GithubURL: *github})
		if err != nil {
			return err
		}
		fmt.Printf("added project %s\n", p.ID)
		return nil
	case "rm":
		id, err := parseIDFlag("project rm", args[1:])
		if err != nil {
			return err
		}
		return a.client.DeleteProject(ctx, id.String())
	}
	return fmt.Errorf("unknown subcommand %q", args[0])
}

// uploadCover pushes the image to the media service first; only the
// committed URL ever reaches the portfolio API.
func (a *app) uploadCover(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("upload-cover", flag.ExitOnError)
	path := fs.String("file", "", "image file to upload")
	fs.Parse(args)

	uploader, err := media_storage.NewCloudinaryAdapter(a.cfg)
	if err != nil {
		return err
	}
	uploadUC := mediaUC.NewUploadUseCase(uploader, a.logger)

	f, err := os.Open(*path)
	if err != nil {
		return err
	}
	defer f.Close()

	att, err := uploadUC.Execute(ctx, mediaUC.UploadInput{Name: *path, File: f}, "covers")
	if err != nil {
		return err
	}

	url := att.CommittedURL
	updated, err := a.client.UpdatePortfolio(ctx, portfolio.Patch{CoverImageURL: &url})
	if err != nil {
		return err
	}
	fmt.Printf("cover set to %s\n", updated.CoverImageURL)
	return nil
}

func parseIDFlag(name string, args []string) (uuid.UUID, error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	id := fs.String("id", "", "entry id")
	fs.Parse(args)
	return uuid.Parse(*id)
}
