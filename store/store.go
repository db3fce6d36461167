// Package store provides database access to all raw objects: the discipline
// tree, study history, planner settings and the persisted agenda snapshot.
package store

import (
	"time"

	"github.com/studyforge/studyforge/internal/profile"
	"github.com/studyforge/studyforge/store/cache"
)

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver

	// Caches
	settingCache *cache.Cache // cache for setting rows
	treeCache    *cache.Cache // cache for the assembled discipline tree
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	cacheConfig := cache.Config{
		DefaultTTL:      10 * time.Minute,
		CleanupInterval: 5 * time.Minute,
		MaxItems:        1000,
	}

	return &Store{
		driver:       driver,
		profile:      profile,
		settingCache: cache.New(cacheConfig),
		treeCache:    cache.New(cacheConfig),
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	s.settingCache.Close()
	s.treeCache.Close()
	return s.driver.Close()
}
