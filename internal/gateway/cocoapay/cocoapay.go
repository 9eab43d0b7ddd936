package cocoapay

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"github.com/y00ns00/cafe-mobile-order/internal/service/ports"
)

const (
	defaultMinDelay    = 100 * time.Millisecond
	defaultMaxDelay    = 3000 * time.Millisecond
	defaultFailureRate = 0.3
)

// Client simulates the CoCoa payment gateway: every call waits a randomized
// network delay and fails with a fixed probability. This is the only source
// of non-determinism in the system.
type Client struct {
	minDelay    time.Duration
	maxDelay    time.Duration
	failureRate float64

	mu  sync.Mutex
	rnd *rand.Rand
}

// option is a function that configures the Client.
type option func(*Client)

// MustNewClient creates a gateway client configured from payment.gateway.*,
// falling back to the reference defaults.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func MustNewClient(opts ...option) *Client {
	c := &Client{
		minDelay:    defaultMinDelay,
		maxDelay:    defaultMaxDelay,
		failureRate: defaultFailureRate,
		rnd:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if v := viper.GetInt("payment.gateway.min_delay_ms"); v > 0 {
		c.minDelay = time.Duration(v) * time.Millisecond
	}
	if v := viper.GetInt("payment.gateway.max_delay_ms"); v > 0 {
		c.maxDelay = time.Duration(v) * time.Millisecond
	}
	if viper.IsSet("payment.gateway.failure_rate") {
		c.failureRate = viper.GetFloat64("payment.gateway.failure_rate")
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithDelayBounds sets the simulated network delay bounds.
func WithDelayBounds(min, max time.Duration) option {
	return func(c *Client) {
		c.minDelay = min
		c.maxDelay = max
	}
}

// WithFailureRate sets the simulated failure probability.
func WithFailureRate(rate float64) option {
	return func(c *Client) {
		c.failureRate = rate
	}
}

// WithRand sets the randomness source.
func WithRand(rnd *rand.Rand) option {
	return func(c *Client) {
		c.rnd = rnd
	}
}

// Pay authorizes a payment. It blocks for the simulated network round-trip
// and returns the gateway outcome; a declined payment is a result, not an error.
func (c *Client) Pay(ctx context.Context, name, birthDate, phone, amount string) ports.GatewayResult {
	paymentKey := uuid.NewString()

	if err := c.simulateNetworkDelay(ctx); err != nil {
		return ports.GatewayResult{Success: false, Message: err.Error()}
	}

	if c.roll() {
		slog.Warn("payment declined by gateway", "payment_key", paymentKey, "name", name, "amount", amount)

		return ports.GatewayResult{Success: false, Message: "external payment gateway processing failed"}
	}

	return ports.GatewayResult{Success: true, PaymentKey: paymentKey}
}

// Cancel requests cancellation of a payment. The caller is not blocked: the
// returned channel delivers exactly one result once the round-trip completes.
func (c *Client) Cancel(ctx context.Context, paymentKey string) <-chan ports.GatewayResult {
	resultCh := make(chan ports.GatewayResult, 1)

	go func() {
		defer close(resultCh)

		if err := c.simulateNetworkDelay(ctx); err != nil {
			resultCh <- ports.GatewayResult{Success: false, Message: err.Error(), PaymentKey: paymentKey}

			return
		}

		if c.roll() {
			slog.Warn("payment cancel declined by gateway", "payment_key", paymentKey)

			resultCh <- ports.GatewayResult{Success: false, Message: "external payment gateway processing failed", PaymentKey: paymentKey}

			return
		}

		resultCh <- ports.GatewayResult{Success: true, PaymentKey: paymentKey}
	}()

	return resultCh
}

func (c *Client) simulateNetworkDelay(ctx context.Context) error {
	delay := c.minDelay
	if c.maxDelay > c.minDelay {
		c.mu.Lock()
		delay += time.Duration(c.rnd.Int63n(int64(c.maxDelay - c.minDelay)))
		c.mu.Unlock()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Client) roll() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.rnd.Float64() < c.failureRate
}
