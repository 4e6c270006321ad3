package policy

import (
	"github.com/diewo77/agence-immo/internal/handlers"
	"github.com/diewo77/agence-immo/internal/models"
	"github.com/diewo77/agence-immo/internal/repository"
	"github.com/diewo77/agence-immo/internal/services"
	"gorm.io/gorm"
)

// RouterConfig holds the configured handlers and authorization for the API.
type RouterConfig struct {
	// AuthGate checks role permissions after authentication
	AuthGate *AuthGate

	// Sessions resolves bearer tokens and backs the auth and user handlers
	Sessions *services.SessionService

	AuthHandler *handlers.AuthHandler
	UserHandler *handlers.UserHandler

	// Record handlers
	Mandats      *handlers.RecordHandler[models.Mandat, models.MandatFields]
	Transactions *handlers.RecordHandler[models.Transaction, models.TransactionFields]
	Suivis       *handlers.RecordHandler[models.Suivi, models.SuiviFields]
	Recherches   *handlers.RecordHandler[models.Recherche, models.RechercheFields]
	Gestion      *handlers.RecordHandler[models.GestionLocative, models.GestionLocativeFields]
}

// NewRouterConfig wires repositories, the session service and handlers
// over db.
func NewRouterConfig(db *gorm.DB) *RouterConfig {
	sessions := services.NewSessionService(db)

	return &RouterConfig{
		AuthGate:    NewAuthGate(),
		Sessions:    sessions,
		AuthHandler: handlers.NewAuthHandler(sessions),
		UserHandler: handlers.NewUserHandler(sessions),

		Mandats:      handlers.NewRecordHandler(repository.New[models.Mandat](db), models.NewMandat),
		Transactions: handlers.NewRecordHandler(repository.New[models.Transaction](db), models.NewTransaction),
		Suivis:       handlers.NewRecordHandler(repository.New[models.Suivi](db), models.NewSuivi),
		Recherches:   handlers.NewRecordHandler(repository.New[models.Recherche](db), models.NewRecherche),
		Gestion:      handlers.NewRecordHandler(repository.New[models.GestionLocative](db), models.NewGestionLocative),
	}
}
