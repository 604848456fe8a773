package router

import (
	"github.com/mo7amed4522/user-services/internal/application"
	"github.com/mo7amed4522/user-services/internal/container"
	pginfra "github.com/mo7amed4522/user-services/internal/infrastructure/postgres"
	handlers "github.com/mo7amed4522/user-services/internal/interface/http"
	"github.com/mo7amed4522/user-services/internal/router/modules"
)

// Services holds the wired application layer shared by the HTTP and gRPC
// front ends.
type Services struct {
	Gateway *application.AuthGateway
	Users   *application.UserService
}

// BuildServices wires repositories and application services from the
// container singletons. Called once during startup.
func BuildServices() *Services {
	cfg := container.GetConfig()
	pool := container.GetPGPool()

	creds := application.NewCredentialStore(pginfra.NewUserRepository(pool))
	codes := application.NewVerificationCodeManager(
		pginfra.NewVerificationCodeRepository(pool),
		container.GetRedis(),
		application.CodePolicy{
			Length:     cfg.CodeLength,
			TTL:        cfg.CodeTTL,
			RateWindow: cfg.CodeRateWindow,
			RateMax:    cfg.CodeRateMax,
		},
		container.GetLogger(),
	)
	tokens := application.NewTokenService(
		pginfra.NewRefreshTokenRepository(pool),
		container.GetJWT(),
		cfg.RefreshTTL,
		container.GetLogger(),
	)
	gateway := application.NewAuthGateway(creds, codes, tokens, cfg.VerificationRequired, container.GetLogger())
	users := application.NewUserService(creds, container.GetGCS(), cfg.GCSBucket, container.GetLogger(), container.GetES(), cfg.ESUsersIndex)

	return &Services{Gateway: gateway, Users: users}
}

// InitModules registers all feature modules with the router registry.
func InitModules(r *Registry, svc *Services) {
	cfg := container.GetConfig()

	authHandler := handlers.NewAuthHandler(
		svc.Gateway,
		svc.Users,
		container.GetRabbitPub(),
		container.GetLogger(),
		cfg.CookieDomain,
		cfg.CookieSecure,
	)
	userHandler := handlers.NewUserHandler(svc.Users, svc.Gateway, container.GetLogger())

	r.Add(modules.NewAuthModule(authHandler))
	r.Add(modules.NewUserModule(userHandler))
}
