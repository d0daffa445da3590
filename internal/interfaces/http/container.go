package http

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authHelpers "github.com/cloudcare/helpdesk/internal/application/auth/helpers"
	authUsecases "github.com/cloudcare/helpdesk/internal/application/auth/usecases"
	ticketUsecases "github.com/cloudcare/helpdesk/internal/application/ticket/usecases"
	"github.com/cloudcare/helpdesk/internal/domain/access"
	"github.com/cloudcare/helpdesk/internal/domain/ticket"
	"github.com/cloudcare/helpdesk/internal/infrastructure/auth"
	"github.com/cloudcare/helpdesk/internal/infrastructure/config"
	"github.com/cloudcare/helpdesk/internal/infrastructure/email"
	"github.com/cloudcare/helpdesk/internal/infrastructure/metrics"
	"github.com/cloudcare/helpdesk/internal/infrastructure/permission"
	"github.com/cloudcare/helpdesk/internal/infrastructure/ratelimit"
	"github.com/cloudcare/helpdesk/internal/infrastructure/scheduler"
	"github.com/cloudcare/helpdesk/internal/interfaces/http/handlers"
	ticketHandlers "github.com/cloudcare/helpdesk/internal/interfaces/http/handlers/ticket"
	"github.com/cloudcare/helpdesk/internal/interfaces/http/middleware"
	shareddb "github.com/cloudcare/helpdesk/internal/shared/db"
	"github.com/cloudcare/helpdesk/internal/shared/logger"
	"github.com/cloudcare/helpdesk/internal/shared/services/markdown"
)

const (
	rateLimitScopeAPI  = "api"
	rateLimitScopeAuth = "auth"

	redisPingTimeout = 3 * time.Second
)

// Container holds the infrastructure, repositories, use cases and handlers
// of the API and owns their shutdown.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	apiRateLimiter       *middleware.RateLimiter
	authRateLimiter      *middleware.RateLimiter

	policy    *access.Policy
	enforcer  *permission.Enforcer
	metrics   *metrics.Metrics
	issuer    *authHelpers.TokenIssuer
	notifier  email.Notifier
	scheduler *scheduler.SchedulerManager
}

// Option customises a container before it is wired.
type Option func(*Container)

// WithRedis uses the given client for rate limiting instead of dialling
// the configured address.
func WithRedis(client *redis.Client) Option {
	return func(c *Container) { c.redis = client }
}

// WithNotifier replaces the configured email notifier.
func WithNotifier(n email.Notifier) Option {
	return func(c *Container) { c.notifier = n }
}

// NewContainer wires every component of the API against db.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface, opts ...Option) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}
	c.initUseCases()
	c.initHandlers()

	return c, nil
}

// ============================================================
// Section 1: Infrastructure
// ============================================================

func (c *Container) initInfrastructure() error {
	cfg := c.cfg
	log := c.log

	c.repos = newRepositories(c.db, log)
	c.metrics = metrics.New()
	c.policy = access.NewPolicy()

	enforcer, err := permission.NewEnforcer(c.db, log.Named("permission"))
	if err != nil {
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	if err := enforcer.Sync(c.policy.Grants()); err != nil {
		return fmt.Errorf("failed to sync permission policies: %w", err)
	}
	c.enforcer = enforcer

	jwtSvc := auth.NewJWTService(
		cfg.Auth.JWT.AccessSecret,
		cfg.Auth.JWT.RefreshSecret,
		cfg.Auth.JWT.AccessExpMinutes,
		cfg.Auth.JWT.RefreshExpDays,
	)
	c.issuer = authHelpers.NewTokenIssuer(
		jwtSvc,
		c.repos.tokenRepo,
		c.repos.userRepo,
		shareddb.NewTransactionManager(c.db),
		c.metrics,
		log.Named("token"),
	)

	if c.notifier == nil {
		c.notifier = email.NewNotifier(cfg.Email, log.Named("email"))
	}

	c.authMiddleware = middleware.NewAuthMiddleware(c.issuer, log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, log)

	limiter := c.newRateLimiter()
	window := cfg.RateLimit.Window()
	c.apiRateLimiter = middleware.NewRateLimiter(limiter, rateLimitScopeAPI, cfg.RateLimit.MaxRequests, window, log)
	c.authRateLimiter = middleware.NewRateLimiter(limiter, rateLimitScopeAuth, cfg.RateLimit.AuthMax, window, log)

	sched, err := scheduler.NewSchedulerManager(log.Named("scheduler"))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	if err := sched.RegisterTokenPurgeJob(scheduler.BatchJobFunc(c.issuer.PurgeExpired)); err != nil {
		return fmt.Errorf("failed to register token purge job: %w", err)
	}
	c.scheduler = sched

	return nil
}

// newRateLimiter prefers Redis and falls back to process memory when no
// Redis host is configured.
func (c *Container) newRateLimiter() ratelimit.RateLimiter {
	if c.redis == nil && c.cfg.Redis.Host != "" {
		c.redis = initRedis(c.cfg, c.log)
	}
	if c.redis == nil {
		c.log.Warnw("redis not configured, rate limits are per process")
		return ratelimit.NewMemoryRateLimiter()
	}
	return ratelimit.NewRedisRateLimiter(c.redis, "helpdesk:ratelimit:")
}

// initRedis creates the client and checks it once. An unreachable server
// is not fatal: the limiter fails open until Redis answers.
func initRedis(cfg *config.Config, log logger.Interface) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warnw("redis is unreachable, rate limiting fails open", "addr", cfg.Redis.GetAddr(), "error", err)
		return client
	}
	log.Infow("redis connection established successfully", "addr", cfg.Redis.GetAddr())
	return client
}

// ============================================================
// Section 2: Use cases
// ============================================================

func (c *Container) initUseCases() {
	log := c.log
	repos := c.repos
	m := c.metrics

	hasher := auth.NewBcryptPasswordHasher(c.cfg.Auth.Password.BcryptCost)
	renderer := markdown.NewRenderer()
	txMgr := shareddb.NewTransactionManager(c.db)

	c.ucs = &allUseCases{
		registerUC:       authUsecases.NewRegisterUseCase(repos.userRepo, hasher, log),
		loginUC:          authUsecases.NewLoginUseCase(repos.userRepo, hasher, c.issuer, m, log),
		refreshTokenUC:   authUsecases.NewRefreshTokenUseCase(c.issuer, log),
		logoutUC:         authUsecases.NewLogoutUseCase(c.issuer, log),
		getCurrentUserUC: authUsecases.NewGetCurrentUserUseCase(repos.userRepo, log),
		changePasswordUC: authUsecases.NewChangePasswordUseCase(repos.userRepo, hasher, c.issuer, txMgr, log),

		createTicketUC: ticketUsecases.NewCreateTicketUseCase(
			repos.ticketRepo, repos.userRepo, repos.auditRepo, ticket.NewDefaultNumberGenerator(), m, log,
		),
		getTicketUC: ticketUsecases.NewGetTicketUseCase(
			repos.ticketRepo, repos.commentRepo, repos.attachmentRepo, repos.userRepo, c.policy, renderer, log,
		),
		listTicketsUC: ticketUsecases.NewListTicketsUseCase(repos.ticketRepo, repos.userRepo, c.policy, log),
		ticketStatsUC: ticketUsecases.NewGetTicketStatsUseCase(repos.ticketRepo, c.policy, log),
		updateTicketUC: ticketUsecases.NewUpdateTicketUseCase(
			repos.ticketRepo, repos.userRepo, repos.auditRepo, c.policy, c.notifier, log,
		),
		deleteTicketUC: ticketUsecases.NewDeleteTicketUseCase(repos.ticketRepo, repos.auditRepo, c.policy, m, log),
		addCommentUC: ticketUsecases.NewAddCommentUseCase(
			repos.ticketRepo, repos.commentRepo, repos.userRepo, c.policy, renderer, m, log,
		),
	}
}

// ============================================================
// Section 3: Handlers
// ============================================================

func (c *Container) initHandlers() {
	ucs := c.ucs
	log := c.log

	c.hdlrs = &allHandlers{
		authHandler: handlers.NewAuthHandler(
			ucs.registerUC, ucs.loginUC, ucs.refreshTokenUC, ucs.logoutUC,
			ucs.getCurrentUserUC, ucs.changePasswordUC, log,
		),
		healthHandler: handlers.NewHealthHandler(c.pingDatabase, c.cfg.Server.Environment, c.cfg.Server.APIPrefix, log),
		ticketHandler: ticketHandlers.NewTicketHandler(
			ucs.createTicketUC, ucs.getTicketUC, ucs.listTicketsUC, ucs.ticketStatsUC,
			ucs.updateTicketUC, ucs.deleteTicketUC, ucs.addCommentUC, log,
		),
	}
}

func (c *Container) pingDatabase(ctx context.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// ============================================================
// Lifecycle
// ============================================================

// Engine returns the gin engine; call SetupRoutes first.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// StartBackground starts the scheduled maintenance jobs.
func (c *Container) StartBackground() {
	c.scheduler.Start()
}

// Shutdown stops background jobs and closes the Redis client. The database
// handle belongs to the caller.
func (c *Container) Shutdown() error {
	var errs []error
	if err := c.scheduler.Stop(); err != nil {
		errs = append(errs, fmt.Errorf("scheduler: %w", err))
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}
	return errors.Join(errs...)
}
