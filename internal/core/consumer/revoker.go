package consumer

import (
	"context"

	"go.uber.org/zap"

	"github.com/orderflow-io/orderflow/internal/core/domain"
	"github.com/orderflow-io/orderflow/internal/core/port"
)

// TokenRevoker forces re-authentication after a stored payment instrument
// is deactivated. "Revoke all active tokens" is idempotent by
// construction: a second run finds nothing left to revoke.
type TokenRevoker struct {
	repo   port.Repository
	logger *zap.Logger
}

func NewTokenRevoker(repo port.Repository, logger *zap.Logger) *TokenRevoker {
	return &TokenRevoker{repo: repo, logger: logger}
}

func (h *TokenRevoker) Handle(ctx context.Context, event domain.Event) error {
	e, ok := event.(domain.PaymentMethodDeactivated)
	if !ok {
		return nil
	}

	revoked, err := h.repo.RevokeRefreshTokens(ctx, e.UserID)
	if err != nil {
		return err
	}

	h.logger.Info("refresh tokens revoked",
		zap.String("user", e.UserID.String()), zap.Int64("count", revoked))
	return nil
}
