// Package database seeds demo directory data and the API settings.
package database

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"timeclock-sync/config"
	"timeclock-sync/internal/model"
	"timeclock-sync/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type demoEmployee struct {
	name       string
	reg        string
	department string
	job        string
	active     bool
	contract   string
}

var (
	// child departments of the root "Company"
	demoDepartments = []string{"Operations", "Administration"}

	demoJobs = []struct{ name, department string }{
		{"Operator", "Operations"},
		{"Supervisor", "Operations"},
		{"Accountant", "Administration"},
	}

	demoEmployees = []demoEmployee{
		{"Ana Ruiz", "00270", "Operations", "Operator", true, model.ContractOpen},
		{"Luis Mora", "00271", "Operations", "Supervisor", true, model.ContractOpen},
		{"Marta Gil", "00272", "Administration", "Accountant", true, model.ContractOpen},
		{"Pedro Díaz", "00273", "Operations", "Operator", false, model.ContractClosed},
	}

	demoManagers = map[string]string{"Operations": "00271"}
)

const demoSchedule = "Standard 40 hours"

func demoSlots() []model.ScheduleSlot {
	var slots []model.ScheduleSlot
	for day := 0; day < 5; day++ {
		slots = append(slots,
			model.ScheduleSlot{Name: model.DayName(day) + " mañana", DayOfWeek: day, HourFrom: 8, HourTo: 12, DayPeriod: "morning"},
			model.ScheduleSlot{Name: model.DayName(day) + " tarde", DayOfWeek: day, HourFrom: 13, HourTo: 17, DayPeriod: "afternoon"},
		)
	}
	return slots
}

// SeedAll idempotently creates the demo directory and writes the API settings.
func SeedAll(ctx context.Context, db *gorm.DB, cfg *config.Config, log *zap.Logger) error {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		company := model.Department{Name: "Company", Active: true}
		if err := tx.Where("name = ?", company.Name).FirstOrCreate(&company).Error; err != nil {
			return fmt.Errorf("seed department %s: %w", company.Name, err)
		}

		departments := map[string]*model.Department{}
		for _, name := range demoDepartments {
			d := model.Department{Name: name, ParentID: &company.ID, Active: true}
			if err := tx.Where("name = ?", name).FirstOrCreate(&d).Error; err != nil {
				return fmt.Errorf("seed department %s: %w", name, err)
			}
			departments[name] = &d
		}

		jobs := map[string]*model.JobPosition{}
		for _, j := range demoJobs {
			job := model.JobPosition{Name: j.name, DepartmentID: &departments[j.department].ID}
			if err := tx.Where("name = ?", j.name).FirstOrCreate(&job).Error; err != nil {
				return fmt.Errorf("seed job %s: %w", j.name, err)
			}
			jobs[j.name] = &job
		}

		schedule := model.WorkSchedule{Name: demoSchedule, HoursPerDay: 8, Timezone: cfg.Location.String(), Active: true}
		if err := tx.Where("name = ?", demoSchedule).FirstOrCreate(&schedule).Error; err != nil {
			return fmt.Errorf("seed schedule: %w", err)
		}
		var slotCount int64
		if err := tx.Model(&model.ScheduleSlot{}).Where("work_schedule_id = ?", schedule.ID).Count(&slotCount).Error; err != nil {
			return err
		}
		if slotCount == 0 {
			slots := demoSlots()
			for i := range slots {
				slots[i].WorkScheduleID = schedule.ID
			}
			if err := tx.Create(&slots).Error; err != nil {
				return fmt.Errorf("seed schedule slots: %w", err)
			}
		}

		for _, de := range demoEmployees {
			e := model.Employee{
				Name:               de.name,
				RegistrationNumber: de.reg,
				DepartmentID:       &departments[de.department].ID,
				JobID:              &jobs[de.job].ID,
				WorkScheduleID:     &schedule.ID,
				WorkEmail:          de.reg + "@example.com",
				Active:             de.active,
			}
			if err := tx.Where("registration_number = ?", de.reg).FirstOrCreate(&e).Error; err != nil {
				return fmt.Errorf("seed employee %s: %w", de.reg, err)
			}

			contract := model.Contract{EmployeeID: e.ID, Name: "Contract " + de.reg, DateStart: time.Date(2024, 1, 1, 0, 0, 0, 0, cfg.Location), State: de.contract}
			if err := tx.Where("employee_id = ?", e.ID).FirstOrCreate(&contract).Error; err != nil {
				return fmt.Errorf("seed contract %s: %w", de.reg, err)
			}

			for dep, reg := range demoManagers {
				if reg == de.reg {
					if err := tx.Model(departments[dep]).Update("manager_id", e.ID).Error; err != nil {
						return fmt.Errorf("seed manager of %s: %w", dep, err)
					}
				}
			}
		}

		return seedSettings(ctx, repository.NewSettingRepository(tx), cfg, log)
	})
	if err != nil {
		return err
	}

	log.Info("seeding finished", zap.Int("employees", len(demoEmployees)))
	return nil
}

func seedSettings(ctx context.Context, settings repository.SettingRepository, cfg *config.Config, log *zap.Logger) error {
	if err := settings.Set(ctx, model.SettingAPIEnabled, strconv.FormatBool(cfg.SeedAPIEnabled)); err != nil {
		return err
	}

	if cfg.SeedAPIUsername == "" || cfg.SeedAPIPassword == "" {
		log.Warn("API_USERNAME or API_PASSWORD not set, leaving API credentials untouched")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SeedAPIPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash api password: %w", err)
	}
	if err := settings.Set(ctx, model.SettingAPIUsername, cfg.SeedAPIUsername); err != nil {
		return err
	}
	return settings.Set(ctx, model.SettingAPIPassword, string(hash))
}
