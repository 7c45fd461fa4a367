package usecase

import (
	"context"
	"errors"
	"strconv"

	"timeclock-sync/internal/apperror"
	"timeclock-sync/internal/model"
	"timeclock-sync/internal/repository"
)

// EmployeeQuery filters the employee directory. A zero Limit returns every match.
type EmployeeQuery struct {
	Active             *bool
	DepartmentID       *uint
	HasContract        *bool
	Search             string
	RegistrationNumber string
	Limit              int
	Offset             int
}

type EmployeePage struct {
	Items  []model.EmployeeView
	Total  int64
	Limit  int
	Offset int
}

// DirectoryUsecase serves the read-only employee, department, job and schedule projections.
type DirectoryUsecase struct {
	store repository.Store
}

func NewDirectoryUsecase(store repository.Store) *DirectoryUsecase {
	return &DirectoryUsecase{store: store}
}

func (u *DirectoryUsecase) ListEmployees(ctx context.Context, q EmployeeQuery) (*EmployeePage, error) {
	if q.Limit < 0 {
		q.Limit = 0
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	list, total, err := u.store.Employees().List(ctx, repository.EmployeeFilter{
		Active:             q.Active,
		DepartmentID:       q.DepartmentID,
		HasOpenContract:    q.HasContract,
		Search:             q.Search,
		RegistrationNumber: q.RegistrationNumber,
		Limit:              q.Limit,
		Offset:             q.Offset,
	})
	if err != nil {
		return nil, err
	}

	items := make([]model.EmployeeView, 0, len(list))
	for i := range list {
		items = append(items, model.NewEmployeeView(&list[i]))
	}
	return &EmployeePage{Items: items, Total: total, Limit: q.Limit, Offset: q.Offset}, nil
}

// GetEmployee looks an employee up by internal id.
func (u *DirectoryUsecase) GetEmployee(ctx context.Context, id uint) (*model.EmployeeView, error) {
	e, err := u.store.Employees().FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.EmployeeNotFound(strconv.FormatUint(uint64(id), 10))
	}
	if err != nil {
		return nil, err
	}
	v := model.NewEmployeeView(e)
	return &v, nil
}

func (u *DirectoryUsecase) GetEmployeeByNumber(ctx context.Context, registrationNumber string) (*model.EmployeeView, error) {
	e, err := u.store.Employees().FindByRegistrationNumber(ctx, registrationNumber)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.EmployeeNotFound(registrationNumber)
	}
	if err != nil {
		return nil, err
	}
	v := model.NewEmployeeView(e)
	return &v, nil
}

func (u *DirectoryUsecase) ListDepartments(ctx context.Context, active *bool) ([]model.DepartmentView, error) {
	departments, err := u.store.Departments().List(ctx, active)
	if err != nil {
		return nil, err
	}
	counts, err := u.store.Employees().CountActiveByDepartment(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.DepartmentView, 0, len(departments))
	for i := range departments {
		out = append(out, model.NewDepartmentView(&departments[i], counts[departments[i].ID]))
	}
	return out, nil
}

func (u *DirectoryUsecase) ListJobs(ctx context.Context, departmentID *uint) ([]model.JobView, error) {
	jobs, err := u.store.Jobs().List(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	counts, err := u.store.Employees().CountActiveByJob(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.JobView, 0, len(jobs))
	for i := range jobs {
		out = append(out, model.NewJobView(&jobs[i], counts[jobs[i].ID]))
	}
	return out, nil
}

func (u *DirectoryUsecase) ListSchedules(ctx context.Context, active *bool) ([]model.ScheduleView, error) {
	schedules, err := u.store.Schedules().List(ctx, active)
	if err != nil {
		return nil, err
	}

	out := make([]model.ScheduleView, 0, len(schedules))
	for i := range schedules {
		out = append(out, model.NewScheduleView(&schedules[i]))
	}
	return out, nil
}
