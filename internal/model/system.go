package model

// VersionInfo contains application version details returned by the system endpoints.
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"goVersion"`
	BuildTime string `json:"buildTime,omitempty"`
}

// HealthStatus represents the health check response.
type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
