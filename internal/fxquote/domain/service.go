package domain

import (
	"context"
	"errors"
	"time"
)

type SubmitQuoteRequest struct {
	Rate     float64    `json:"rate"`
	Source   string     `json:"source"`
	QuotedAt *time.Time `json:"quoted_at"`
}

type Service interface {
	Submit(ctx context.Context, req SubmitQuoteRequest) (SpotQuote, error)
	Latest(ctx context.Context) (SpotQuote, error)
}

var (
	ErrInvalidRate = errors.New("invalid_spot_rate")
	ErrNoQuote     = errors.New("no_spot_quote")
)
