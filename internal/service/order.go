package service

import (
	"context"
	"log/slog"

	"recipeapi/internal/model"
)

// OrderService places ingredient orders with a grocery provider.
type OrderService interface {
	PlaceOrder(ctx context.Context, req model.OrderRequest) (*model.OrderResult, error)
}

// stubOrderService acknowledges every order without contacting anyone.
type stubOrderService struct {
	log *slog.Logger
}

// NewStubOrderService returns an OrderService that always succeeds.
func NewStubOrderService(log *slog.Logger) OrderService {
	return &stubOrderService{log: log}
}

func (s *stubOrderService) PlaceOrder(ctx context.Context, req model.OrderRequest) (*model.OrderResult, error) {
	s.log.InfoContext(ctx, "order_accepted", "provider", "stub", "body_bytes", len(req.Body))
	return &model.OrderResult{Status: model.OrderPlacedStatus}, nil
}
