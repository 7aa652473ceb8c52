package service

import (
	"context"
	"time"

	"github.com/pawstore/pawstore-backend/internal/app/repository"
	"github.com/pawstore/pawstore-backend/pkg/logger"
	"github.com/pawstore/pawstore-backend/pkg/redis"
)

const (
	overviewCacheKey = "admin:overview"
	overviewCacheTTL = 5 * time.Minute
)

// Overview is the admin dashboard snapshot across all entities
type Overview struct {
	Accessories *repository.AccessoryStats `json:"accessories"`
	Pets        *repository.PetStats       `json:"pets"`
	Carts       *repository.CartStats      `json:"carts"`
	Orders      *repository.OrderStats     `json:"orders"`
	Payments    *repository.PaymentStats   `json:"payments"`
	Contacts    *repository.ContactStats   `json:"contacts"`
	GeneratedAt time.Time                  `json:"generated_at"`
}

type OverviewService interface {
	Get(ctx context.Context) (*Overview, error)
	Refresh(ctx context.Context) (*Overview, error)
}

type overviewService struct {
	accessoryRepo repository.AccessoryRepository
	petRepo       repository.PetRepository
	cartRepo      repository.CartRepository
	orderRepo     repository.OrderRepository
	paymentRepo   repository.PaymentRepository
	contactRepo   repository.ContactRepository
}

func NewOverviewService(
	accessoryRepo repository.AccessoryRepository,
	petRepo repository.PetRepository,
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	contactRepo repository.ContactRepository,
) OverviewService {
	return &overviewService{
		accessoryRepo: accessoryRepo,
		petRepo:       petRepo,
		cartRepo:      cartRepo,
		orderRepo:     orderRepo,
		paymentRepo:   paymentRepo,
		contactRepo:   contactRepo,
	}
}

// Get serves the cached snapshot when present, recomputing on a miss
func (s *overviewService) Get(ctx context.Context) (*Overview, error) {
	var cached Overview
	hit, err := redis.GetJSON(ctx, overviewCacheKey, &cached)
	if err != nil {
		logger.Warn("Overview cache read failed, recomputing", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if hit {
		logger.Debug("Overview served from cache", map[string]interface{}{
			"generated_at": cached.GeneratedAt,
		})
		return &cached, nil
	}

	return s.Refresh(ctx)
}

// Refresh recomputes the snapshot and stores it in the cache
func (s *overviewService) Refresh(ctx context.Context) (*Overview, error) {
	logger.Info("Refreshing admin overview snapshot", nil)

	overview := &Overview{GeneratedAt: time.Now()}

	var err error
	if overview.Accessories, err = s.accessoryRepo.Stats(); err != nil {
		return nil, err
	}
	if overview.Pets, err = s.petRepo.Stats(); err != nil {
		return nil, err
	}
	if overview.Carts, err = s.cartRepo.Stats(); err != nil {
		return nil, err
	}
	if overview.Orders, err = s.orderRepo.Stats(); err != nil {
		return nil, err
	}
	if overview.Payments, err = s.paymentRepo.Stats(); err != nil {
		return nil, err
	}
	if overview.Contacts, err = s.contactRepo.Stats(); err != nil {
		return nil, err
	}

	if err := redis.SetJSON(ctx, overviewCacheKey, overview, overviewCacheTTL); err != nil {
		// serve the fresh snapshot even if caching fails
		logger.Warn("Failed to cache overview snapshot", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("Admin overview snapshot refreshed", map[string]interface{}{
		"orders":   overview.Orders.Total,
		"payments": overview.Payments.Total,
	})
	return overview, nil
}
