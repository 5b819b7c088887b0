package middleware

import (
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

// RateLimit rejects requests with 429 once limiter has no tokens left. A nil limiter disables it.
func RateLimit(limiter *rate.Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limiter == nil {
			return c.Next()
		}

		r := limiter.Reserve()
		if !r.OK() {
			return fiber.NewError(fiber.StatusTooManyRequests)
		}
		if delay := r.Delay(); delay > 0 {
			r.Cancel()
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(delay.Seconds()))))
			return fiber.NewError(fiber.StatusTooManyRequests)
		}

		return c.Next()
	}
}

// NewLimiter builds a token bucket allowing rps requests per second with the given burst.
// It returns nil when rps is not positive.
func NewLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}
