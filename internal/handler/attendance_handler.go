package handler

import (
	"timeclock-sync/internal/apperror"
	"timeclock-sync/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type AttendanceHandler struct {
	uc *usecase.AttendanceUsecase
}

func NewAttendanceHandler(uc *usecase.AttendanceUsecase) *AttendanceHandler {
	return &AttendanceHandler{uc: uc}
}

func (h *AttendanceHandler) Create(c *fiber.Ctx) error {
	var req usecase.CreateAttendanceInput
	if err := c.BodyParser(&req); err != nil {
		return apperror.InvalidJSON(err)
	}

	res, err := h.uc.Create(c.UserContext(), req)
	if err != nil {
		return err
	}

	return success(c, fiber.Map{
		"message":     "attendance recorded",
		"data":        res.Attendance,
		"daily_count": res.DailyCount,
	})
}

func (h *AttendanceHandler) List(c *fiber.Ctx) error {
	limit, offset, err := queryPage(c)
	if err != nil {
		return err
	}
	employeeID, err := queryUint(c, "employee_id")
	if err != nil {
		return err
	}

	page, err := h.uc.List(c.UserContext(), usecase.AttendanceQuery{
		RegistrationNumber: c.Query("registration_number"),
		EmployeeID:         employeeID,
		CheckType:          c.Query("check_type"),
		LogStatus:          c.Query("log_status"),
		Status:             c.Query("status"),
		DateFrom:           c.Query("date_from"),
		DateTo:             c.Query("date_to"),
		DeviceID:           queryOptional(c, "device_id"),
		Limit:              limit,
		Offset:             offset,
	}, caller(c))
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
