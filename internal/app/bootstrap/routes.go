// internal/app/bootstrap/routes.go
package bootstrap

import (
	"fmt"
	"net/http"

	accountsfeature "github.com/dalemusser/contesthub/internal/app/features/accounts"
	competitionsfeature "github.com/dalemusser/contesthub/internal/app/features/competitions"
	healthfeature "github.com/dalemusser/contesthub/internal/app/features/health"
	paymentsfeature "github.com/dalemusser/contesthub/internal/app/features/payments"
	uploadsfeature "github.com/dalemusser/contesthub/internal/app/features/uploads"
	billstore "github.com/dalemusser/contesthub/internal/app/store/bills"
	competitionstore "github.com/dalemusser/contesthub/internal/app/store/competitions"
	paymentstore "github.com/dalemusser/contesthub/internal/app/store/payments"
	registrationstore "github.com/dalemusser/contesthub/internal/app/store/registrations"
	userstore "github.com/dalemusser/contesthub/internal/app/store/users"
	"github.com/dalemusser/contesthub/internal/app/system/auth"
	"github.com/dalemusser/contesthub/internal/app/system/mailer"
	"github.com/dalemusser/contesthub/internal/app/system/metrics"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// ContestHub is a JSON API: every feature router speaks the same
// {message, data} envelope, bearer tokens gate the authenticated groups,
// and Prometheus metrics wrap the whole router.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens := auth.NewManager(appCfg.JWTSecret, appCfg.JWTExpiry)

	mail := mailer.New(mailer.Config{
		Host: appCfg.MailSMTPHost,
		Port: appCfg.MailSMTPPort,
		User: appCfg.MailSMTPUser,
		Pass: appCfg.MailSMTPPass,
		From: appCfg.MailFrom,
	})

	store, err := buildStorage(appCfg)
	if err != nil {
		logger.Error("storage init failed", zap.Error(err))
		return nil, err
	}

	// Stores over the shared database.
	users := userstore.New(deps.MongoDatabase, logger)
	competitions := competitionstore.New(deps.MongoDatabase)
	registrations := registrationstore.New(deps.MongoDatabase, logger)
	bills := billstore.New(deps.MongoDatabase)
	payments := paymentstore.New(deps.MongoDatabase, logger)

	m := metrics.New()

	r := chi.NewRouter()
	r.Use(m.Middleware)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Prometheus scrape endpoint
	r.Handle("/metrics", metrics.Handler())

	// Accounts: signup, login, verification, profile, password flows
	accountsHandler := accountsfeature.NewHandler(users, tokens, mail, logger, appCfg.SiteName, appCfg.SupportEmail)
	r.Mount("/api/v1/user", accountsfeature.Routes(accountsHandler, tokens))

	// Competitions: catalog, registration, teams, submissions
	competitionsHandler := competitionsfeature.NewHandler(users, competitions, registrations, bills, payments, m, logger)
	r.Mount("/api/v1/competition", competitionsfeature.Routes(competitionsHandler, tokens))

	// Payments: proof submission, cancellation, admin verification
	paymentsHandler := paymentsfeature.NewHandler(users, payments, m, logger)
	r.Mount("/api/v1/payment", paymentsfeature.Routes(paymentsHandler, tokens))

	// Payment-proof and identity-document uploads
	uploadsHandler := uploadsfeature.NewHandler(store, logger)
	r.Mount("/api/v1/upload", uploadsfeature.Routes(uploadsHandler, tokens, logger))

	// Serve locally stored uploads with pre-compressed file support
	if appCfg.StorageType == "local" {
		r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))
	}

	return r, nil
}

// buildStorage selects the blob-storage backend from config. Only the local
// filesystem backend is wired today; ValidateConfig rejects anything else
// before we get here.
func buildStorage(appCfg AppConfig) (storage.Store, error) {
	switch appCfg.StorageType {
	case "local":
		local, err := storage.NewLocal(storage.LocalConfig{
			BasePath: appCfg.StorageLocalPath,
			BaseURL:  appCfg.StorageLocalURL,
		})
		if err != nil {
			return nil, err
		}
		return local, nil
	default:
		return nil, fmt.Errorf("unsupported storage_type %q", appCfg.StorageType)
	}
}
