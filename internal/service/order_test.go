package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipeapi/internal/logging"
	"recipeapi/internal/model"
)

func TestStubOrderService_PlaceOrder(t *testing.T) {
	svc := NewStubOrderService(logging.Discard())

	for _, body := range []string{``, `{}`, `{"items":["tofu","rice"]}`, `not json`} {
		res, err := svc.PlaceOrder(context.Background(), model.OrderRequest{Body: json.RawMessage(body)})
		require.NoError(t, err)
		assert.Equal(t, "Order placed successfully!", res.Status)
	}
}
