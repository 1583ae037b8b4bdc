package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/willyyyaj/medical-system/internal/api/errors"
	"github.com/willyyyaj/medical-system/internal/app/medinfo"
	"github.com/willyyyaj/medical-system/internal/app/model"
)

// medicationCacheTTL bounds how long a scraped record is reused. The
// hospital's medicine list changes rarely.
const medicationCacheTTL = 24 * time.Hour

// MedicationServiceImpl implements MedicationService
type MedicationServiceImpl struct {
	source *medinfo.Source
	cache  *redis.Client
}

// NewMedicationService creates a new medication service. cache may be nil
// to disable caching.
func NewMedicationService(source *medinfo.Source, cache *redis.Client) MedicationService {
	return &MedicationServiceImpl{source: source, cache: cache}
}

// Lookup resolves a medication code, serving scraped records from Redis
// when possible.
func (s *MedicationServiceImpl) Lookup(ctx context.Context, code string) (*model.MedicationInfo, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, errors.NewBadRequestError("No medication code provided")
	}

	cacheKey := "medinfo:" + code
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var info model.MedicationInfo
			if err := json.Unmarshal([]byte(cached), &info); err == nil {
				return &info, nil
			}
		}
	}

	info := s.source.Lookup(ctx, code)

	if s.cache != nil {
		if data, err := json.Marshal(info); err == nil {
			s.cache.Set(ctx, cacheKey, data, medicationCacheTTL)
		}
	}
	return &info, nil
}
