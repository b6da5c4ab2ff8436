package middlewares

import (
	"clinic-ledger-service/internal/app/config"
	"clinic-ledger-service/internal/app/services/shared/jwtmanager"
	"clinic-ledger-service/internal/app/services/shared/ratelimiter"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

type Middlewares struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
	JWTManager     *jwtmanager.JWTManager
	Enforcer       *casbin.Enforcer
	ExportLimiter  *ratelimiter.KeyedLimiter
}

func NewMiddlewares(logger *zap.Logger, internalConfig *config.InternalConfig, jwtManager *jwtmanager.JWTManager, enforcer *casbin.Enforcer) *Middlewares {
	return &Middlewares{
		Log:            logger,
		InternalConfig: internalConfig,
		JWTManager:     jwtManager,
		Enforcer:       enforcer,
		ExportLimiter: ratelimiter.NewKeyedLimiter(
			internalConfig.Report.ExportRateLimitPerMinute,
			internalConfig.Report.ExportRateLimitBurst,
		),
	}
}

// BasePath is the prefix every API route is mounted under, e.g. /api/v1.
func (m *Middlewares) BasePath() string {
	return "/" + m.InternalConfig.App.EndpointPrefix + "/" + m.InternalConfig.App.Version
}
