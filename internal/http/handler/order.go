package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"recipeapi/internal/model"
	"recipeapi/internal/service"
)

// OrderIngredients forwards the raw JSON body to the order service. The body is not validated.
//
// @Summary Place an ingredient order
// @Tags orders
// @Accept json
// @Produce json
// @Param order body object false "Order payload, passed through unvalidated"
// @Success 200 {object} model.OrderResult
// @Failure 500 {object} model.OrderResult
// @Router /api/order-ingredients [post]
func OrderIngredients(svc service.OrderService, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// c.Body is only valid until the handler returns.
		body := append([]byte(nil), c.Body()...)

		res, err := svc.PlaceOrder(c.UserContext(), model.OrderRequest{Body: body})
		if err != nil {
			log.ErrorContext(c.UserContext(), "order_failed", "error", err.Error())
			return c.Status(fiber.StatusInternalServerError).JSON(model.OrderResult{Status: model.OrderFailedStatus})
		}
		return c.JSON(res)
	}
}
