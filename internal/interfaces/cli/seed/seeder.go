package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/cloudcare/helpdesk/internal/domain/ticket"
	vo "github.com/cloudcare/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/cloudcare/helpdesk/internal/domain/user"
	apperrors "github.com/cloudcare/helpdesk/internal/shared/errors"
	"github.com/cloudcare/helpdesk/internal/shared/logger"
)

//go:embed defaults.yaml
var defaultSeed []byte

// Data is the content of a seed file.
type Data struct {
	Users   []UserSeed   `yaml:"users"`
	Tickets []TicketSeed `yaml:"tickets"`
}

type UserSeed struct {
	Email     string `yaml:"email"`
	Password  string `yaml:"password"`
	FirstName string `yaml:"firstName"`
	LastName  string `yaml:"lastName"`
	Role      string `yaml:"role"`
}

// TicketSeed refers to people by email. Number is fixed so that a second
// run finds the ticket already present.
type TicketSeed struct {
	Number      string   `yaml:"number"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Priority    string   `yaml:"priority"`
	Status      string   `yaml:"status"`
	Category    string   `yaml:"category"`
	Tags        []string `yaml:"tags"`
	CreatedBy   string   `yaml:"createdBy"`
	AssignedTo  string   `yaml:"assignedTo"`
}

// Parse decodes a seed file. Unknown keys are rejected.
func Parse(raw []byte) (*Data, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var data Data
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if err := data.validate(); err != nil {
		return nil, err
	}
	return &data, nil
}

// Defaults returns the built-in demo accounts and tickets.
func Defaults() (*Data, error) {
	return Parse(defaultSeed)
}

func (d *Data) validate() error {
	for i, u := range d.Users {
		if u.Email == "" || u.Password == "" {
			return fmt.Errorf("users[%d]: email and password are required", i)
		}
		if _, err := user.ParseRole(u.Role); err != nil {
			return fmt.Errorf("users[%d]: %w", i, err)
		}
	}
	for i, t := range d.Tickets {
		if t.Number == "" || t.CreatedBy == "" {
			return fmt.Errorf("tickets[%d]: number and createdBy are required", i)
		}
		if t.Priority != "" {
			if _, err := vo.NewPriority(t.Priority); err != nil {
				return fmt.Errorf("tickets[%d]: %w", i, err)
			}
		}
		if t.Status != "" {
			if _, err := vo.NewTicketStatus(t.Status); err != nil {
				return fmt.Errorf("tickets[%d]: %w", i, err)
			}
		}
	}
	return nil
}

type PasswordHasher interface {
	Hash(password string) (string, error)
}

// Result counts what a run inserted and what was already present.
type Result struct {
	UsersCreated   int
	UsersSkipped   int
	TicketsCreated int
	TicketsSkipped int
}

// Seeder inserts seed data that is not in the database yet.
type Seeder struct {
	userRepo   user.Repository
	ticketRepo ticket.Repository
	hasher     PasswordHasher
	logger     logger.Interface
}

func NewSeeder(userRepo user.Repository, ticketRepo ticket.Repository, hasher PasswordHasher, log logger.Interface) *Seeder {
	return &Seeder{
		userRepo:   userRepo,
		ticketRepo: ticketRepo,
		hasher:     hasher,
		logger:     log,
	}
}

// Seed creates the users first so tickets can reference them. Existing
// users are left untouched, including their passwords.
func (s *Seeder) Seed(ctx context.Context, data *Data) (*Result, error) {
	result := &Result{}

	for _, u := range data.Users {
		created, err := s.seedUser(ctx, u)
		if err != nil {
			return result, err
		}
		if created {
			result.UsersCreated++
		} else {
			result.UsersSkipped++
		}
	}

	for _, t := range data.Tickets {
		created, err := s.seedTicket(ctx, t)
		if err != nil {
			return result, err
		}
		if created {
			result.TicketsCreated++
		} else {
			result.TicketsSkipped++
		}
	}

	return result, nil
}

func (s *Seeder) seedUser(ctx context.Context, seed UserSeed) (bool, error) {
	email := user.NormalizeEmail(seed.Email)
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("failed to check user %s: %w", email, err)
	}
	if exists {
		s.logger.Debugw("user already present", "email", email)
		return false, nil
	}

	hash, err := s.hasher.Hash(seed.Password)
	if err != nil {
		return false, fmt.Errorf("failed to hash password for %s: %w", email, err)
	}
	role, err := user.ParseRole(seed.Role)
	if err != nil {
		return false, err
	}
	u, err := user.NewUser(email, hash, seed.FirstName, seed.LastName, role)
	if err != nil {
		return false, fmt.Errorf("invalid user %s: %w", email, err)
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return false, fmt.Errorf("failed to create user %s: %w", email, err)
	}

	s.logger.Infow("user seeded", "email", email, "role", role)
	return true, nil
}

func (s *Seeder) seedTicket(ctx context.Context, seed TicketSeed) (bool, error) {
	creatorID, err := s.userID(ctx, seed.CreatedBy)
	if err != nil {
		return false, fmt.Errorf("ticket %s: %w", seed.Number, err)
	}

	params := ticket.NewTicketParams{
		Number:      seed.Number,
		Title:       seed.Title,
		Description: seed.Description,
		Priority:    vo.Priority(seed.Priority),
		Tags:        seed.Tags,
		CreatedByID: creatorID,
	}
	if seed.Category != "" {
		category := seed.Category
		params.Category = &category
	}
	if seed.AssignedTo != "" {
		assigneeID, err := s.userID(ctx, seed.AssignedTo)
		if err != nil {
			return false, fmt.Errorf("ticket %s: %w", seed.Number, err)
		}
		params.AssignedToID = &assigneeID
	}

	t, err := ticket.NewTicket(params)
	if err != nil {
		return false, fmt.Errorf("invalid ticket %s: %w", seed.Number, err)
	}
	if seed.Status != "" {
		status := vo.TicketStatus(seed.Status)
		if err := t.Apply(ticket.Patch{Status: &status}); err != nil {
			return false, fmt.Errorf("invalid ticket %s: %w", seed.Number, err)
		}
	}

	if err := s.ticketRepo.Create(ctx, t); err != nil {
		if apperrors.IsConflictError(err) {
			s.logger.Debugw("ticket already present", "number", seed.Number)
			return false, nil
		}
		return false, fmt.Errorf("failed to create ticket %s: %w", seed.Number, err)
	}

	s.logger.Infow("ticket seeded", "number", seed.Number)
	return true, nil
}

func (s *Seeder) userID(ctx context.Context, email string) (string, error) {
	u, err := s.userRepo.GetByEmail(ctx, user.NormalizeEmail(email))
	if err != nil {
		return "", fmt.Errorf("failed to look up %s: %w", email, err)
	}
	if u == nil {
		return "", fmt.Errorf("unknown user %s", email)
	}
	return u.ID(), nil
}
