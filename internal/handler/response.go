package handler

import (
	"strconv"
	"strings"
	"time"

	"timeclock-sync/internal/apperror"
	"timeclock-sync/internal/middleware"
	"timeclock-sync/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

// success writes body wrapped with the status/timestamp fields every response carries.
func success(c *fiber.Ctx, body fiber.Map) error {
	body["status"] = "success"
	body["timestamp"] = time.Now().Format(time.RFC3339)
	return c.Status(fiber.StatusOK).JSON(body)
}

func caller(c *fiber.Ctx) usecase.Caller {
	return usecase.Caller{IP: c.IP(), Subject: middleware.Subject(c)}
}

func queryInt(c *fiber.Ctx, name string) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.InvalidParameter(name, raw)
	}
	return v, nil
}

func queryUint(c *fiber.Ctx, name string) (*uint, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 0)
	if err != nil {
		return nil, apperror.InvalidParameter(name, raw)
	}
	id := uint(v)
	return &id, nil
}

func queryBool(c *fiber.Ctx, name string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperror.InvalidParameter(name, raw)
	}
	return &v, nil
}

// queryActive reads the active filter: true when absent, nil for "all".
func queryActive(c *fiber.Ctx) (*bool, error) {
	if strings.EqualFold(strings.TrimSpace(c.Query("active")), "all") {
		return nil, nil
	}
	active, err := queryBool(c, "active")
	if err != nil || active != nil {
		return active, err
	}
	yes := true
	return &yes, nil
}

func queryOptional(c *fiber.Ctx, name string) *string {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil
	}
	return &raw
}

func queryPage(c *fiber.Ctx) (limit, offset int, err error) {
	if limit, err = queryInt(c, "limit"); err != nil {
		return 0, 0, err
	}
	if offset, err = queryInt(c, "offset"); err != nil {
		return 0, 0, err
	}
	return limit, offset, nil
}
