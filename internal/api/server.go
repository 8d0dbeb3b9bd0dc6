package api

import (
	"net/http"

	"vaultkeep/internal/api/middleware"
	"vaultkeep/internal/audit"
	"vaultkeep/internal/auth"
	"vaultkeep/internal/core"
	"vaultkeep/internal/ratelimit"
	"vaultkeep/internal/service"
)

type Server struct {
	users   *service.UserService
	creds   *service.CredentialService
	codec   *auth.Codec
	limiter *ratelimit.Limiter
	auditor core.Auditor
}

func NewServer(
	users *service.UserService,
	creds *service.CredentialService,
	codec *auth.Codec,
	limiter *ratelimit.Limiter,
	auditor core.Auditor,
) *Server {
	if auditor == nil {
		auditor = audit.NewNoopAuditor()
	}

	return &Server{
		users:   users,
		creds:   creds,
		codec:   codec,
		limiter: limiter,
		auditor: auditor,
	}
}

// Routes assembles the full handler pipeline:
// recover → transaction id → request logging → rate limiter → mux,
// with the bearer-token gate applied per protected route.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	// public routes
	mux.HandleFunc("GET "+HealthCheckRoute, s.handleHealth)
	mux.HandleFunc("GET "+AboutRoute, s.handleAbout)
	mux.HandleFunc("POST "+RegisterRoute, s.handleRegister)
	mux.HandleFunc("POST "+LoginRoute, s.handleLogin)

	// authenticated routes
	authed := middleware.BearerAuth(s.codec)
	protected := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, authed(h))
	}

	protected("GET "+ListUsersRoute, s.handleListUsers)
	protected("GET "+CurrentMeRoute, s.handleMe)
	protected("GET "+GetUserRoute, s.handleGetUser)
	protected("PUT "+UpdateUserRoute, s.handleUpdateUser)
	protected("DELETE "+DeleteUserRoute, s.handleDeleteUser)

	protected("POST "+CreateCredentialRoute, s.handleCreateCredential)
	protected("GET "+ListCredentialsRoute, s.handleListCredentials)
	protected("GET "+GetCredentialRoute, s.handleGetCredential)
	protected("PUT "+UpdateCredentialRoute, s.handleUpdateCredential)
	protected("DELETE "+DeleteCredentialRoute, s.handleDeleteCredential)

	return middleware.RecoverMiddleware(
		middleware.TransactionIDMiddleware(
			middleware.LoggingMiddleware(
				middleware.RateLimit(s.limiter)(
					mux))))
}
