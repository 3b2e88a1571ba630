package service

import (
	"database/sql"
	"runtime"

	"github.com/aayushs-edu/stockapp-sub000/internal/database"
	"github.com/aayushs-edu/stockapp-sub000/internal/model"
	"github.com/aayushs-edu/stockapp-sub000/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{
		db: db,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// CheckVersion returns the build identification of the running binary.
func (s *SystemService) CheckVersion() model.VersionInfo {
	return model.VersionInfo{
		Version:   version.Version,
		GoVersion: runtime.Version(),
		BuildTime: version.BuildTime,
	}
}
