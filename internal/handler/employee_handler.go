package handler

import (
	"fmt"
	"net/url"
	"strings"

	"timeclock-sync/internal/apperror"
	"timeclock-sync/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type EmployeeHandler struct {
	uc *usecase.DirectoryUsecase
}

func NewEmployeeHandler(uc *usecase.DirectoryUsecase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc}
}

func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	active, err := queryActive(c)
	if err != nil {
		return err
	}
	departmentID, err := queryUint(c, "department_id")
	if err != nil {
		return err
	}
	hasContract, err := queryBool(c, "has_contract")
	if err != nil {
		return err
	}
	limit, offset, err := queryPage(c)
	if err != nil {
		return err
	}

	page, err := h.uc.ListEmployees(c.UserContext(), usecase.EmployeeQuery{
		Active:             active,
		DepartmentID:       departmentID,
		HasContract:        hasContract,
		Search:             strings.TrimSpace(c.Query("search")),
		RegistrationNumber: strings.TrimSpace(c.Query("registration_number")),
		Limit:              limit,
		Offset:             offset,
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

// GetByID is kept for older devices; new clients look employees up by registration number.
func (h *EmployeeHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return apperror.InvalidParameter("id", c.Params("id"))
	}

	employee, err := h.uc.GetEmployee(c.UserContext(), uint(id))
	if err != nil {
		return err
	}

	c.Set("Deprecation", "true")
	c.Set("Link", fmt.Sprintf(`</api/v1/employees/by-number/%s>; rel="successor-version"`,
		url.PathEscape(employee.RegistrationNumber)))
	return success(c, fiber.Map{"data": employee})
}

func (h *EmployeeHandler) GetByNumber(c *fiber.Ctx) error {
	reg, err := url.PathUnescape(c.Params("reg"))
	if err != nil || strings.TrimSpace(reg) == "" {
		return apperror.InvalidParameter("registration_number", c.Params("reg"))
	}

	employee, err := h.uc.GetEmployeeByNumber(c.UserContext(), reg)
	if err != nil {
		return err
	}
	return success(c, fiber.Map{"data": employee})
}
