package handler

import (
	"time"

	"timeclock-sync/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type SyncHandler struct {
	uc *usecase.SyncUsecase
}

func NewSyncHandler(uc *usecase.SyncUsecase) *SyncHandler {
	return &SyncHandler{uc: uc}
}

func (h *SyncHandler) Employees(c *fiber.Ctx) error {
	limit, offset, err := queryPage(c)
	if err != nil {
		return err
	}
	full, err := queryBool(c, "full")
	if err != nil {
		return err
	}

	res, err := h.uc.SyncEmployees(c.UserContext(), usecase.SyncQuery{
		DeviceID: queryOptional(c, "device_id"),
		Full:     full != nil && *full,
		Since:    c.Query("since"),
		Limit:    limit,
		Offset:   offset,
	}, caller(c))
	if err != nil {
		return err
	}

	var lastSync *string
	if res.LastSync != nil {
		s := res.LastSync.Format(time.RFC3339)
		lastSync = &s
	}

	return success(c, fiber.Map{
		"is_first_sync": res.IsFirstSync,
		"last_sync":     lastSync,
		"current_sync":  res.CurrentSync.Format(time.RFC3339),
		"sync_type":     res.SyncType,
		"device_id":     res.DeviceID,
		"total_count":   res.TotalCount,
		"count":         res.Count,
		"limit":         res.Limit,
		"offset":        res.Offset,
		"has_more":      res.HasMore,
		"data":          res.Items,
	})
}

func (h *SyncHandler) Logs(c *fiber.Ctx) error {
	limit, offset, err := queryPage(c)
	if err != nil {
		return err
	}

	page, err := h.uc.ListLogs(c.UserContext(), usecase.SyncLogQuery{
		DeviceID: queryOptional(c, "device_id"),
		SyncType: c.Query("sync_type"),
		Status:   c.Query("status"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return err
	}

	return success(c, fiber.Map{
		"count":  len(page.Items),
		"total":  page.Total,
		"limit":  page.Limit,
		"offset": page.Offset,
		"data":   page.Items,
	})
}
