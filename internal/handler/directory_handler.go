package handler

import (
	"timeclock-sync/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

// DirectoryHandler serves the department, job position and schedule projections.
type DirectoryHandler struct {
	uc *usecase.DirectoryUsecase
}

func NewDirectoryHandler(uc *usecase.DirectoryUsecase) *DirectoryHandler {
	return &DirectoryHandler{uc: uc}
}

func (h *DirectoryHandler) Departments(c *fiber.Ctx) error {
	active, err := queryActive(c)
	if err != nil {
		return err
	}
	list, err := h.uc.ListDepartments(c.UserContext(), active)
	if err != nil {
		return err
	}
	return success(c, fiber.Map{"count": len(list), "data": list})
}

func (h *DirectoryHandler) JobPositions(c *fiber.Ctx) error {
	departmentID, err := queryUint(c, "department_id")
	if err != nil {
		return err
	}
	list, err := h.uc.ListJobs(c.UserContext(), departmentID)
	if err != nil {
		return err
	}
	return success(c, fiber.Map{"count": len(list), "data": list})
}

func (h *DirectoryHandler) Schedules(c *fiber.Ctx) error {
	active, err := queryActive(c)
	if err != nil {
		return err
	}
	list, err := h.uc.ListSchedules(c.UserContext(), active)
	if err != nil {
		return err
	}
	return success(c, fiber.Map{"count": len(list), "data": list})
}
