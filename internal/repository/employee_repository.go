package repository

import (
	"context"
	"time"

	"timeclock-sync/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EmployeeFilter struct {
	Active             *bool
	DepartmentID       *uint
	HasOpenContract    *bool
	Search             string
	RegistrationNumber string
	Limit              int // 0 = no limit
	Offset             int
}

// SyncWindow selects the employees delivered by one sync cycle.
type SyncWindow struct {
	// Since nil selects the active employees, otherwise every employee (active or
	// not) modified strictly after Since.
	Since *time.Time
	// ChangedAfter, when set, also selects every employee modified after it. Later
	// pages of a cycle pass the cycle start, so a record touched mid-cycle moves to
	// the front of the updated_at order instead of leaving the set.
	ChangedAfter *time.Time
}

type EmployeeRepository interface {
	FindByID(ctx context.Context, id uint) (*model.Employee, error)
	FindByRegistrationNumber(ctx context.Context, registrationNumber string) (*model.Employee, error)
	// LockForUpdate takes a row lock on the employee until the surrounding transaction ends.
	LockForUpdate(ctx context.Context, id uint) error
	List(ctx context.Context, f EmployeeFilter) ([]model.Employee, int64, error)
	// ListForSync pages through the window ordered by updated_at desc, id desc.
	ListForSync(ctx context.Context, w SyncWindow, limit, offset int) ([]model.Employee, int64, error)
	CountActiveByDepartment(ctx context.Context) (map[uint]int64, error)
	CountActiveByJob(ctx context.Context) (map[uint]int64, error)
}

type employeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db}
}

func withRelations(q *gorm.DB) *gorm.DB {
	return q.Preload("Department").Preload("Job").Preload("WorkSchedule").Preload("Contracts")
}

func (r *employeeRepository) FindByID(ctx context.Context, id uint) (*model.Employee, error) {
	var e model.Employee
	if err := withRelations(r.db.WithContext(ctx)).First(&e, id).Error; err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

func (r *employeeRepository) FindByRegistrationNumber(ctx context.Context, registrationNumber string) (*model.Employee, error) {
	var e model.Employee
	err := withRelations(r.db.WithContext(ctx)).Where("registration_number = ?", registrationNumber).First(&e).Error
	if err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

func (r *employeeRepository) LockForUpdate(ctx context.Context, id uint) error {
	var e model.Employee
	err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&e, id).Error
	return wrap("lock employee", err)
}

func (r *employeeRepository) List(ctx context.Context, f EmployeeFilter) ([]model.Employee, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Employee{})

	if f.Active != nil {
		query = query.Where("active = ?", *f.Active)
	}
	if f.DepartmentID != nil {
		query = query.Where("department_id = ?", *f.DepartmentID)
	}
	if f.HasOpenContract != nil {
		open := r.db.Model(&model.Contract{}).Select("employee_id").Where("state = ?", model.ContractOpen)
		if *f.HasOpenContract {
			query = query.Where("id IN (?)", open)
		} else {
			query = query.Where("id NOT IN (?)", open)
		}
	}
	if f.Search != "" {
		searchPattern := "%" + f.Search + "%"
		query = query.Where("name LIKE ? OR registration_number LIKE ?", searchPattern, searchPattern)
	}
	if f.RegistrationNumber != "" {
		query = query.Where("registration_number = ?", f.RegistrationNumber)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, wrap("count employees", err)
	}

	query = withRelations(query).Order("name asc").Order("id asc").Offset(f.Offset)
	if f.Limit > 0 {
		query = query.Limit(f.Limit)
	}

	var list []model.Employee
	if err := query.Find(&list).Error; err != nil {
		return nil, 0, wrap("list employees", err)
	}
	return list, total, nil
}

func (r *employeeRepository) ListForSync(ctx context.Context, w SyncWindow, limit, offset int) ([]model.Employee, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Employee{})
	switch {
	case w.Since != nil:
		query = query.Where("updated_at > ?", *w.Since)
	case w.ChangedAfter != nil:
		query = query.Where("active = ? OR updated_at > ?", true, *w.ChangedAfter)
	default:
		query = query.Where("active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, wrap("count sync employees", err)
	}

	var list []model.Employee
	err := withRelations(query).
		Order("updated_at desc").Order("id desc").
		Limit(limit).Offset(offset).
		Find(&list).Error
	if err != nil {
		return nil, 0, wrap("list sync employees", err)
	}
	return list, total, nil
}

func (r *employeeRepository) CountActiveByDepartment(ctx context.Context) (map[uint]int64, error) {
	return r.countActiveBy(ctx, "department_id")
}

func (r *employeeRepository) CountActiveByJob(ctx context.Context) (map[uint]int64, error) {
	return r.countActiveBy(ctx, "job_id")
}

// column is always one of the fixed foreign key names above
func (r *employeeRepository) countActiveBy(ctx context.Context, column string) (map[uint]int64, error) {
	var rows []groupCount
	err := r.db.WithContext(ctx).Model(&model.Employee{}).
		Select(column+" AS group_id, count(*) AS total").
		Where("active = ? AND "+column+" IS NOT NULL", true).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, wrap("count employees by "+column, err)
	}
	return countsToMap(rows), nil
}
