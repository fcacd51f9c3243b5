package cart

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/nasif952/La-valecia/internal/cache"
	"github.com/nasif952/La-valecia/internal/domain"
	"github.com/nasif952/La-valecia/internal/repository"
	"golang.org/x/sync/singleflight"
)

// Service owns the authoritative cart state for each user. Carts are
// single-writer per user, so mutations load the snapshot, apply the domain
// operation and write the full snapshot back.
type Service struct {
	repo  repository.CartRepository
	cache cache.CartCache
	sfg   singleflight.Group // Prevents cache stampede
}

func NewService(repo repository.CartRepository, cache cache.CartCache) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
	}
}

func (s *Service) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := s.sfg.Do(userID, func() (interface{}, error) {

		cart, err := s.cache.Get(ctx, userID)
		if err == nil {
			return cart, nil // cart is in cache
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v \n", err) // log cache error but continue
		}

		cart, errGet := s.loadSnapshot(ctx, userID)
		if errGet != nil {
			return nil, errGet
		}

		// set cache
		go func() {
			errSet := s.cache.Set(context.Background(), userID, cart)
			if errSet != nil {
				log.Printf("cache set error: %v \n", errSet)
			}
		}()

		return cart, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

// loadSnapshot rehydrates from durable storage. A missing or corrupt snapshot
// degrades to an empty cart; persistence failures must never take the
// storefront down.
func (s *Service) loadSnapshot(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.repo.GetCart(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if errors.Is(err, repository.ErrCartNotFound) {
		return domain.NewCart(userID), nil
	}
	if errors.Is(err, repository.ErrCartCorrupt) {
		log.Printf("discarding corrupt cart snapshot for user %s: %v \n", userID, err)
		return domain.NewCart(userID), nil
	}
	return nil, err
}

func (s *Service) AddItem(ctx context.Context, userID, productID, variantID string, unitPriceCents int64, stockCeiling, qty int) (*domain.Cart, error) {
	return s.mutate(ctx, userID, func(c *domain.Cart) error {
		return c.AddLine(productID, variantID, unitPriceCents, stockCeiling, qty)
	})
}

func (s *Service) UpdateQuantity(ctx context.Context, userID, lineID string, qty int) (*domain.Cart, error) {
	return s.mutate(ctx, userID, func(c *domain.Cart) error {
		return c.SetQuantity(lineID, qty)
	})
}

func (s *Service) RemoveItem(ctx context.Context, userID, lineID string) (*domain.Cart, error) {
	return s.mutate(ctx, userID, func(c *domain.Cart) error {
		c.RemoveLine(lineID)
		return nil
	})
}

func (s *Service) ClearCart(ctx context.Context, userID string) error {
	errDelete := s.repo.DeleteCart(ctx, userID)
	if errDelete != nil && !errors.Is(errDelete, repository.ErrCartNotFound) {
		log.Printf("repo delete cart error: %v \n", errDelete)
		return errDelete
	}

	s.invalidateCache(userID)
	return nil
}

// mutate applies op to the current snapshot and persists the whole cart.
// Rejected operations (stock ceiling, validation) leave storage untouched.
func (s *Service) mutate(ctx context.Context, userID string, op func(*domain.Cart) error) (*domain.Cart, error) {
	cart, err := s.loadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	if errOp := op(cart); errOp != nil {
		return nil, errOp
	}

	if errUpsert := s.repo.UpsertCart(ctx, cart); errUpsert != nil {
		log.Printf("repo upsert cart error: %v \n", errUpsert)
		return nil, errUpsert
	}

	s.invalidateCache(userID)
	return cart, nil
}

func (s *Service) invalidateCache(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	errInvalidate := s.cache.Delete(ctx, userID)
	if errInvalidate != nil {
		log.Printf("cache invalidate error: %v \n", errInvalidate)
	}
}
