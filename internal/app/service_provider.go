package app

import (
	"context"
	"net/http"

	resultAPI "matka_backend/internal/api/result"
	statsAPI "matka_backend/internal/api/stats"
	"matka_backend/internal/config"
	"matka_backend/internal/config/env"
	"matka_backend/internal/events"
	mw "matka_backend/internal/middleware"
	"matka_backend/internal/repository"
	"matka_backend/internal/repository/bet_repo"
	"matka_backend/internal/repository/result_repo"
	"matka_backend/internal/repository/settlement_repo"
	"matka_backend/internal/repository/settlement_stats_repo"
	"matka_backend/internal/service"
	"matka_backend/internal/service/declaration"
	"matka_backend/internal/service/stats"
	"matka_backend/pkg/logger"
	"matka_backend/pkg/resp"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ServiceProvider struct {
	configPath string

	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Game config
	gameCfg config.GameConfig

	// Auth
	jwtCfg config.JWTConfig

	// Events
	natsCfg config.NATSConfig
	emitter events.Emitter

	// Repositories
	betRepo        repository.BetRepository
	resultRepo     repository.ResultRepository
	settlementRepo repository.SettlementRepository
	statsRepo      repository.SettlementStatsRepository

	// Declaration bits
	declarationServ service.DeclarationService
	resultHand      *resultAPI.Handler

	// Stats bits
	statsServ service.StatsService
	statsHand *statsAPI.Handler

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider(configPath string) *ServiceProvider {
	return &ServiceProvider{configPath: configPath}
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) GameCfg() config.GameConfig {
	if sp.gameCfg == nil {
		cfg, err := env.NewGameConfigFromYAML(sp.configPath)
		if err != nil {
			panic("failed to get game config: " + err.Error())
		}
		sp.gameCfg = cfg
	}
	return sp.gameCfg
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) NATSCfg() config.NATSConfig {
	if sp.natsCfg == nil {
		cfg, err := env.NewNATSConfig()
		if err != nil {
			panic("failed to get nats config: " + err.Error())
		}
		sp.natsCfg = cfg
	}
	return sp.natsCfg
}

func (sp *ServiceProvider) Emitter() events.Emitter {
	if sp.emitter == nil {
		cfg := sp.NATSCfg()
		if !cfg.Enabled() {
			logger.Info("NATS_URL is empty, settlement events are disabled")
			sp.emitter = events.NewNopEmitter()
			return sp.emitter
		}

		e, err := events.NewNATSEmitter(cfg.URL(), cfg.Subject())
		if err != nil {
			panic("failed to connect to nats: " + err.Error())
		}
		sp.emitter = e
	}
	return sp.emitter
}

func (sp *ServiceProvider) BetRepository(ctx context.Context) repository.BetRepository {
	if sp.betRepo == nil {
		sp.betRepo = bet_repo.NewBetRepository(sp.DBClient(ctx))
	}
	return sp.betRepo
}

func (sp *ServiceProvider) ResultRepository(ctx context.Context) repository.ResultRepository {
	if sp.resultRepo == nil {
		sp.resultRepo = result_repo.NewResultRepository(sp.DBClient(ctx))
	}
	return sp.resultRepo
}

func (sp *ServiceProvider) SettlementRepository(ctx context.Context) repository.SettlementRepository {
	if sp.settlementRepo == nil {
		sp.settlementRepo = settlement_repo.NewSettlementRepository(sp.DBClient(ctx))
	}
	return sp.settlementRepo
}

func (sp *ServiceProvider) SettlementStatsRepository() repository.SettlementStatsRepository {
	if sp.statsRepo == nil {
		sp.statsRepo = settlement_stats_repo.NewSettlementStatsRepository()
	}
	return sp.statsRepo
}

func (sp *ServiceProvider) DeclarationService(ctx context.Context) service.DeclarationService {
	if sp.declarationServ == nil {
		sp.declarationServ = declaration.NewDeclarationService(
			sp.GameCfg(),
			sp.BetRepository(ctx),
			sp.ResultRepository(ctx),
			sp.SettlementRepository(ctx),
			sp.SettlementStatsRepository(),
			sp.Emitter(),
			sp.TXManager(ctx),
		)
	}
	return sp.declarationServ
}

func (sp *ServiceProvider) ResultHandler(ctx context.Context) *resultAPI.Handler {
	if sp.resultHand == nil {
		sp.resultHand = resultAPI.NewHandler(resultAPI.HandlerDeps{
			Serv: sp.DeclarationService(ctx),
		})
	}
	return sp.resultHand
}

func (sp *ServiceProvider) StatsService() service.StatsService {
	if sp.statsServ == nil {
		sp.statsServ = stats.NewStatsService(sp.SettlementStatsRepository())
	}
	return sp.statsServ
}

func (sp *ServiceProvider) StatsHandler() *statsAPI.Handler {
	if sp.statsHand == nil {
		sp.statsHand = statsAPI.NewHandler(statsAPI.HandlerDeps{Serv: sp.StatsService()})
	}
	return sp.statsHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(mw.RequestLogger)

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			resp.WriteJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		// Result endpoints
		resultHandler := sp.ResultHandler(ctx)
		r.Post("/results/preview", resultHandler.Preview)
		r.Route("/markets/{marketID}/results", func(rr chi.Router) {
			rr.With(mw.Auth(sp.JWTCfg().AccessTokenSecretKey())).Post("/", resultHandler.Declare)
			rr.Get("/{date}/{session}", resultHandler.GetResult)
		})

		// Stats endpoints
		statsHandler := sp.StatsHandler()
		r.Route("/stats", func(rr chi.Router) {
			rr.Get("/", statsHandler.List)
			rr.Get("/{marketID}", statsHandler.Market)
		})

		sp.router = r
	}

	return sp.router
}

// Close освобождает соединения с БД и NATS
func (sp *ServiceProvider) Close() {
	if sp.emitter != nil {
		sp.emitter.Close()
	}
	if sp.dbClient != nil {
		sp.dbClient.Close()
	}
}
