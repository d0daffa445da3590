package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cloudcare/helpdesk/internal/infrastructure/auth"
	"github.com/cloudcare/helpdesk/internal/infrastructure/config"
	"github.com/cloudcare/helpdesk/internal/infrastructure/database"
	"github.com/cloudcare/helpdesk/internal/infrastructure/repository"
	"github.com/cloudcare/helpdesk/internal/interfaces/cli"
	"github.com/cloudcare/helpdesk/internal/shared/constants"
	"github.com/cloudcare/helpdesk/internal/shared/logger"
)

var (
	env         string
	configPath  string
	file        string
	skipTickets bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert demo users and tickets",
		Long: `Insert the users and tickets of a YAML seed file that are not in the database yet.
Without --file the built-in admin, agent and user accounts are seeded.`,
		RunE: run,
	}

	cli.AddConfigFlags(cmd.Flags(), &env, &configPath)
	cmd.Flags().StringVarP(&file, "file", "f", "", "Seed file (default: built-in demo data)")
	cmd.Flags().BoolVar(&skipTickets, "skip-tickets", false, "Only seed users")

	return cmd
}

func loadData() (*Data, error) {
	if file == "" {
		return Defaults()
	}
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(raw)
}

func run(cmd *cobra.Command, args []string) error {
	data, err := loadData()
	if err != nil {
		return err
	}
	if skipTickets {
		data.Tickets = nil
	}

	env = cli.ResolveEnv(env)
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger, false); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	if env == constants.EnvProduction && file == "" {
		log.Warnw("seeding built-in demo accounts into production - their passwords are public!")
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Errorw("failed to close database", "error", err)
		}
	}()

	db := database.Get()
	seeder := NewSeeder(
		repository.NewUserRepository(db, log),
		repository.NewTicketRepository(db, log),
		auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost),
		log.Named("seed"),
	)

	result, err := seeder.Seed(context.Background(), data)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Users:   %d created, %d already present\n", result.UsersCreated, result.UsersSkipped)
	fmt.Fprintf(cmd.OutOrStdout(), "Tickets: %d created, %d already present\n", result.TicketsCreated, result.TicketsSkipped)
	return nil
}
