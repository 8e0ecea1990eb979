package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/medcamp/mcms/internal/errs"
	"github.com/medcamp/mcms/internal/model"
	"github.com/medcamp/mcms/internal/repository"
)

const (
	// popularCampsLimit caps the popularity listing.
	popularCampsLimit = 6

	popularCampsCacheKey = "camps:popular"
	popularCampsCacheTTL = 30 * time.Second
)

// CampService manages camps and their listings. The popular listing is
// cached in Redis for a short window; everything else reads through.
type CampService struct {
	store  CampStore
	redis  *redis.Client
	logger *zerolog.Logger
}

// NewCampService constructs a CampService.
func NewCampService(store CampStore, redisClient *redis.Client, logger *zerolog.Logger) *CampService {
	return &CampService{
		store:  store,
		redis:  redisClient,
		logger: logger,
	}
}

func campNotFound() *errs.HTTPError {
	code := errs.CodeCampNotFound
	return errs.NewNotFoundError("Camp not found", true, &code)
}

// Create publishes a new camp and returns its identifier.
func (s *CampService) Create(ctx context.Context, camp *model.Camp) (string, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	id, err := s.store.Create(ctx, camp)
	if err != nil {
		return "", err
	}

	s.invalidatePopularCache(ctx)
	return id, nil
}

// Get returns a single camp.
func (s *CampService) Get(ctx context.Context, id string) (*model.Camp, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	camp, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, campNotFound()
		}
		return nil, err
	}
	return camp, nil
}

// List returns all camps.
func (s *CampService) List(ctx context.Context) ([]model.Camp, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	return s.store.List(ctx)
}

// ListUpcoming returns camps scheduled from now on.
func (s *CampService) ListUpcoming(ctx context.Context) ([]model.Camp, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	return s.store.ListUpcoming(ctx, time.Now().UTC())
}

// Popular returns the camps with the highest participant counts. Results are
// served from a short-lived Redis cache when available; a cache outage
// degrades to a direct store read.
func (s *CampService) Popular(ctx context.Context) ([]model.Camp, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if s.redis != nil {
		cached, err := s.redis.Get(ctx, popularCampsCacheKey).Bytes()
		if err == nil {
			var camps []model.Camp
			if err := json.Unmarshal(cached, &camps); err == nil {
				return camps, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("popular camps cache read failed")
		}
	}

	camps, err := s.store.Popular(ctx, popularCampsLimit)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if encoded, err := json.Marshal(camps); err == nil {
			if err := s.redis.Set(ctx, popularCampsCacheKey, encoded, popularCampsCacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("popular camps cache write failed")
			}
		}
	}

	return camps, nil
}

// Update applies a partial update to a camp. A request that names no fields,
// targets a missing camp, or changes nothing observable reports that nothing
// was modified.
func (s *CampService) Update(ctx context.Context, id string, update model.CampUpdate) error {
	if update.Empty() {
		return errs.NewBadRequestError("No fields to update", true, nil, nil)
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if err := s.store.Update(ctx, id, update); err != nil {
		if errors.Is(err, repository.ErrNoChange) {
			code := errs.CodeCampNotFound
			return errs.NewNotFoundError("Camp not found or no changes made", true, &code)
		}
		return err
	}

	s.invalidatePopularCache(ctx)
	return nil
}

// Delete removes a camp and, through the store's cascade, its registrations.
func (s *CampService) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return campNotFound()
		}
		return err
	}

	s.invalidatePopularCache(ctx)
	return nil
}

func (s *CampService) invalidatePopularCache(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, popularCampsCacheKey).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("popular camps cache invalidation failed")
	}
}
