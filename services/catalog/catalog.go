package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"localbooker/models"
	"localbooker/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	listCacheKey = "catalog:services"
	listCacheTTL = 60 * time.Second
)

func (s *DefaultCatalogService) CreateService(ctx context.Context, name, description string, price float64) (*models.Service, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("service name is required")
	}
	if price <= 0 {
		return nil, fmt.Errorf("price must be positive")
	}
	now := time.Now()
	svc := &models.Service{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Price:       price,
		IsAvailable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	s.invalidateListCache(ctx)
	return svc, nil
}

func (s *DefaultCatalogService) UpdateService(ctx context.Context, id, name, description string, price float64) (*models.Service, error) {
	if price <= 0 {
		return nil, fmt.Errorf("price must be positive")
	}
	svc, err := s.Repo.Update(ctx, id, strings.TrimSpace(name), description, price)
	if err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	if svc == nil {
		return nil, fmt.Errorf("service %s not found", id)
	}
	s.invalidateListCache(ctx)
	return svc, nil
}

func (s *DefaultCatalogService) DeleteService(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	s.invalidateListCache(ctx)
	return nil
}

func (s *DefaultCatalogService) GetService(ctx context.Context, id string) (*models.Service, error) {
	svc, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch service: %w", err)
	}
	if svc == nil {
		return nil, fmt.Errorf("service %s not found", id)
	}
	return svc, nil
}

// ListServices returns the catalog, served from the cache when fresh. A cache
// miss or a broken cache entry falls through to the database.
func (s *DefaultCatalogService) ListServices(ctx context.Context) ([]models.Service, error) {
	client := utils.GetCacheClient()
	if data, err := client.Get(ctx, listCacheKey).Result(); err == nil {
		var cached []models.Service
		if err := json.Unmarshal([]byte(data), &cached); err == nil {
			return cached, nil
		}
	}

	services, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	if data, err := json.Marshal(services); err == nil {
		if err := client.Set(ctx, listCacheKey, data, listCacheTTL).Err(); err != nil {
			utils.GetLogger().Warn("failed to cache service list", zap.Error(err))
		}
	}
	return services, nil
}

// ListWithBookingState annotates each service with the status of the booking
// occupying it right now, reading the ledger rather than trusting the cached
// projection.
func (s *DefaultCatalogService) ListWithBookingState(ctx context.Context) ([]models.ServiceListing, error) {
	services, err := s.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	listings := make([]models.ServiceListing, 0, len(services))
	for _, svc := range services {
		listing := models.ServiceListing{Service: svc}
		active, err := s.Bookings.ListActiveForService(ctx, svc.ID, now)
		if err != nil {
			utils.GetLogger().Warn("failed to read bookings for listing",
				zap.String("serviceID", svc.ID), zap.Error(err))
			listings = append(listings, listing)
			continue
		}
		for _, b := range active {
			iv := models.Interval{Start: b.CheckIn, End: b.CheckOut}
			if iv.Contains(now) {
				listing.CurrentBookingStatus = b.Status
				break
			}
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

func (s *DefaultCatalogService) invalidateListCache(ctx context.Context) {
	if err := utils.GetCacheClient().Del(ctx, listCacheKey).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate service list cache", zap.Error(err))
	}
}
