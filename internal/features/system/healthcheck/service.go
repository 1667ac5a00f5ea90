package system_healthcheck

import (
	"log/slog"

	"eagleflow/internal/config"
	"eagleflow/internal/storage"

	"github.com/shirou/gopsutil/v4/disk"
)

type HealthcheckService struct {
	logger *slog.Logger
}

type HealthStatus struct {
	Status          string  `json:"status"`
	Database        string  `json:"database"`
	DiskUsedPercent float64 `json:"diskUsedPercent"`
}

func (s *HealthcheckService) GetHealth() *HealthStatus {
	status := &HealthStatus{
		Status:   "ok",
		Database: "ok",
	}

	sqlDb, err := storage.GetDb().DB()
	if err != nil || sqlDb.Ping() != nil {
		status.Status = "degraded"
		status.Database = "unavailable"
		s.logger.Error("healthcheck database ping failed", "error", err)
	}

	usage, err := disk.Usage(config.GetEnv().UploadsDir)
	if err != nil {
		usage, err = disk.Usage("/")
	}

	if err == nil {
		status.DiskUsedPercent = usage.UsedPercent
	}

	return status
}
