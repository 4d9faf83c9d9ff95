// Package portal wires configuration, storage, services and the command
// registry into the interactive admissions shell.
package portal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/campusgate/admissions/internal/app/commands"
	"github.com/campusgate/admissions/internal/app/repositories"
	"github.com/campusgate/admissions/internal/app/services"
	"github.com/campusgate/admissions/internal/config"
	"github.com/campusgate/admissions/internal/db"
	"github.com/campusgate/admissions/internal/pkg/auth"
	"github.com/campusgate/admissions/internal/pkg/logger"
	"github.com/campusgate/admissions/internal/seed"
)

// Portal is the fully wired application
type Portal struct {
	cfg      *config.Config
	store    *db.Store
	doc      *db.Document
	services *services.Services
	registry *commands.Registry
	logFile  *os.File

	in  io.Reader
	out io.Writer
}

// New loads configuration, opens storage, wires every service and seeds
// the initial records. configPath may name a missing file; defaults and
// environment variables apply either way.
func New(configPath string) (*Portal, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	p := &Portal{cfg: cfg, in: os.Stdin, out: os.Stdout}

	// The shell owns stdout, so logs go to a file (or stderr as fallback)
	logOutput := io.Writer(os.Stderr)
	if cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err == nil {
			logOutput = f
			p.logFile = f
		}
	}
	logger.Configure(logger.Config{
		Level:  logger.LogLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Format != "json",
		Output: logOutput,
	})
	lgr := logger.Root()

	p.store = db.NewStore(cfg.Storage.DataFile)
	p.doc, err = p.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load data file: %w", err)
	}

	catalogRepo, err := repositories.NewCatalogRepository(
		cfg.Storage.FacultyFile, cfg.Storage.CatalogFile, cfg.Storage.CourseFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog files: %w", err)
	}

	repos := repositories.NewRepositories(p.doc, catalogRepo)
	p.services = services.NewServices(repos, cfg.Storage.AuditLogFile, lgr)

	if cfg.Seed.RootAdmin {
		if err := seed.EnsureRootAdmin(repos.AdminRepository, logger.Component("seed")); err != nil {
			return nil, fmt.Errorf("failed to seed root admin: %w", err)
		}
	}
	if cfg.Seed.DefaultCatalog {
		if err := seed.CreateDefaultCatalog(p.services.CatalogService, logger.Component("seed")); err != nil {
			return nil, fmt.Errorf("failed to seed catalog: %w", err)
		}
	}

	p.registry = commands.NewRegistry()

	lgr.Info().
		Str("data_file", cfg.Storage.DataFile).
		Int("applications", repos.ApplicationRepository.Count()).
		Int("students", repos.StudentRepository.Count()).
		Msg("portal ready")

	return p, nil
}

// Run drives the interactive shell until the user exits or input closes.
// State is flushed to disk after every mutating command and once more on
// the way out.
func (p *Portal) Run() error {
	reader := bufio.NewReader(p.in)
	session := &commands.SessionState{}
	ctx := &commands.Context{
		In:       reader,
		Out:      p.out,
		Svc:      p.services,
		Session:  session,
		Registry: p.registry,
	}

	ctx.Println("<< WELCOME TO THE CAMPUSGATE ADMISSIONS PORTAL >>")
	ctx.Println("Type `info` to see what you can do.")

	for {
		fmt.Fprint(p.out, p.prompt(session))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			break // stdin closed
		}
		name := strings.ToLower(strings.TrimSpace(line))
		if name == "" {
			continue
		}

		cmd, ok := p.registry.Resolve(name)
		if !ok {
			ctx.Println("Unrecognized command! Type `info` to list commands.")
			continue
		}
		if cmd.Roles != nil {
			if !session.LoggedIn() {
				ctx.Println("You must be logged in to do that!")
				continue
			}
			if !cmd.AllowedFor(session.Role()) {
				ctx.Println("Unrecognized command! Type `info` to list commands.")
				continue
			}
		}

		if err := cmd.Run(ctx); err != nil {
			logger.Error().Err(err).Str("command", cmd.Name).Msg("command failed")
			ctx.Printf("%s\n", strings.ToUpper(err.Error()[:1])+err.Error()[1:])
		}

		if cmd.Mutating {
			p.flush()
		}
		if ctx.Quit {
			break
		}
	}

	p.flush()
	ctx.Println("\nGoodbye!")

	if p.logFile != nil {
		_ = p.logFile.Close()
	}
	return nil
}

// prompt reflects who is logged in, the way the menu greeted each role
func (p *Portal) prompt(session *commands.SessionState) string {
	if !session.LoggedIn() {
		return "\nportal> "
	}
	current := session.Current
	switch current.Role {
	case auth.RoleGuest:
		return fmt.Sprintf("\n%s(guest)> ", current.UserID)
	case auth.RoleStudent:
		return fmt.Sprintf("\n%s(student)> ", current.UserID)
	default:
		return fmt.Sprintf("\n%s(admin)> ", current.UserID)
	}
}

func (p *Portal) flush() {
	if err := p.store.Save(p.doc); err != nil {
		logger.Error().Err(err).Msg("failed to persist data file")
	}
}
