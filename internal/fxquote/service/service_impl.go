package service

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/movelar/proforma/internal/config"
	"github.com/movelar/proforma/internal/fxquote/domain"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const latestQuoteKey = "fxquote:usdbrl:latest"

type Params struct {
	fx.In

	Cfg      config.Config
	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Defaults *config.PricingDefaultsHolder
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	cache    *redis.Client
	defaults *config.PricingDefaultsHolder
}

// New builds the quote service. An empty redis address disables the cache;
// reads then always hit the quote history table.
func New(p Params) domain.Service {
	var cache *redis.Client
	if addr := strings.TrimSpace(p.Cfg.RedisAddr); addr != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: p.Cfg.RedisPassword,
			DB:       p.Cfg.RedisDB,
		})
	}
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("fxquote.service"),
		genID:    p.GenID,
		cache:    cache,
		defaults: p.Defaults,
	}
}

func (s *Service) Submit(ctx context.Context, req domain.SubmitQuoteRequest) (domain.SpotQuote, error) {
	if math.IsNaN(req.Rate) || math.IsInf(req.Rate, 0) || req.Rate <= 0 {
		return domain.SpotQuote{}, domain.ErrInvalidRate
	}

	source := strings.TrimSpace(req.Source)
	if source == "" {
		source = "manual"
	}
	quotedAt := time.Now().UTC()
	if req.QuotedAt != nil {
		quotedAt = req.QuotedAt.UTC()
	}

	quote := domain.SpotQuote{
		ID:        s.genID.Generate(),
		Rate:      req.Rate,
		Source:    source,
		QuotedAt:  quotedAt,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&quote).Error; err != nil {
		return domain.SpotQuote{}, err
	}

	s.prime(ctx, quote)
	s.log.Info("spot quote submitted",
		zap.Float64("rate", quote.Rate),
		zap.String("source", quote.Source),
	)
	return quote, nil
}

func (s *Service) Latest(ctx context.Context) (domain.SpotQuote, error) {
	if quote, ok := s.cached(ctx); ok {
		return quote, nil
	}

	var quote domain.SpotQuote
	err := s.db.WithContext(ctx).
		Order("quoted_at desc, id desc").
		Take(&quote).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.SpotQuote{}, domain.ErrNoQuote
		}
		return domain.SpotQuote{}, err
	}

	s.prime(ctx, quote)
	return quote, nil
}

func (s *Service) cached(ctx context.Context) (domain.SpotQuote, bool) {
	if s.cache == nil {
		return domain.SpotQuote{}, false
	}
	raw, err := s.cache.Get(ctx, latestQuoteKey).Bytes()
	if err != nil {
		return domain.SpotQuote{}, false
	}
	var quote domain.SpotQuote
	if err := json.Unmarshal(raw, &quote); err != nil {
		return domain.SpotQuote{}, false
	}
	return quote, true
}

// prime is best effort; a cache write failure never fails the request.
func (s *Service) prime(ctx context.Context, quote domain.SpotQuote) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(quote)
	if err != nil {
		return
	}
	ttl := time.Duration(s.defaults.Get().QuoteTTLMinutes) * time.Minute
	if err := s.cache.Set(ctx, latestQuoteKey, raw, ttl).Err(); err != nil {
		s.log.Warn("quote cache write failed", zap.Error(err))
	}
}
