package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"timeclock-sync/internal/apperror"
	"timeclock-sync/internal/model"
	"timeclock-sync/internal/repository"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// CheckWindow bounds how far a check timestamp may drift from server time.
const CheckWindow = 24 * time.Hour

// CreateAttendanceInput is the punch payload sent by a time-clock device.
type CreateAttendanceInput struct {
	RegistrationNumber string   `json:"registration_number"`
	CheckType          string   `json:"check_type"`
	CheckDate          string   `json:"check_date"`
	Latitude           *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude          *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	VerificationStatus string   `json:"verification_status" validate:"omitempty,oneof=automatic manual_review approved rejected"`
	MatchPercentage    *float64 `json:"match_percentage" validate:"omitempty,gte=0,lte=100"`
	LateTime           string   `json:"late_time" validate:"omitempty,hhmm"`
	EarlyLeaveTime     string   `json:"early_leave_time" validate:"omitempty,hhmm"`
	Message            string   `json:"message"`
}

type CreateAttendanceResult struct {
	Attendance model.AttendanceView
	DailyCount int64
}

// AttendanceQuery holds the listing filters; dates are raw query values.
type AttendanceQuery struct {
	RegistrationNumber string
	EmployeeID         *uint
	CheckType          string
	LogStatus          string
	Status             string
	DateFrom           string
	DateTo             string
	DeviceID           *string
	Limit              int
	Offset             int
}

type AttendancePage struct {
	Items  []model.AttendanceView
	Total  int64
	Limit  int
	Offset int
}

type AttendanceUsecase struct {
	store    repository.Store
	validate *validator.Validate
	loc      *time.Location
	now      func() time.Time
	log      *zap.Logger
	sync     syncRecorder
}

func NewAttendanceUsecase(store repository.Store, validate *validator.Validate, loc *time.Location, log *zap.Logger) *AttendanceUsecase {
	return &AttendanceUsecase{
		store:    store,
		validate: validate,
		loc:      loc,
		now:      time.Now,
		log:      log,
		sync:     syncRecorder{store: store, log: log},
	}
}

// WithClock replaces the wall clock, for tests.
func (u *AttendanceUsecase) WithClock(now func() time.Time) *AttendanceUsecase {
	u.now = now
	return u
}

// Create validates and stores one punch. Nothing is written when any check fails.
func (u *AttendanceUsecase) Create(ctx context.Context, in CreateAttendanceInput) (*CreateAttendanceResult, error) {
	in.RegistrationNumber = strings.TrimSpace(in.RegistrationNumber)
	in.CheckType = strings.TrimSpace(in.CheckType)
	in.CheckDate = strings.TrimSpace(in.CheckDate)

	switch {
	case in.RegistrationNumber == "":
		return nil, apperror.BadRequest(apperror.CodeMissingRegistration, "registration_number is required")
	case in.CheckType == "":
		return nil, apperror.BadRequest(apperror.CodeMissingCheckType, "check_type is required")
	case in.CheckDate == "":
		return nil, apperror.BadRequest(apperror.CodeMissingCheckDate, "check_date is required")
	}

	if !model.ValidCheckType(in.CheckType) {
		return nil, apperror.BadRequest(apperror.CodeInvalidCheckType,
			fmt.Sprintf("check_type must be %q or %q", model.CheckTypeEntry, model.CheckTypeExit))
	}

	checkDate, err := ParseCheckDate(in.CheckDate, u.loc)
	if err != nil {
		return nil, apperror.BadRequest(apperror.CodeInvalidDateFormat,
			fmt.Sprintf("check_date %q is not a valid ISO-8601 timestamp", in.CheckDate))
	}

	if err := u.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}

	var result CreateAttendanceResult
	err = u.store.WithTx(ctx, func(tx repository.Store) error {
		employee, err := tx.Employees().FindByRegistrationNumber(ctx, in.RegistrationNumber)
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.EmployeeNotFound(in.RegistrationNumber)
		}
		if err != nil {
			return err
		}

		now := u.now().In(u.loc)
		if checkDate.Before(now.Add(-CheckWindow)) || checkDate.After(now.Add(CheckWindow)) {
			return apperror.BadRequest(apperror.CodeInvalidDateRange,
				fmt.Sprintf("check_date %s is outside the accepted window of one day around %s",
					checkDate.Format(model.CheckDateLayout), now.Format(model.CheckDateLayout)))
		}

		// serializes concurrent punches of the same employee until commit
		if err := tx.Employees().LockForUpdate(ctx, employee.ID); err != nil {
			return err
		}

		dayStart := startOfDay(checkDate)
		count, err := tx.Attendances().CountForDay(ctx, in.RegistrationNumber, dayStart, dayStart.AddDate(0, 0, 1))
		if err != nil {
			return err
		}
		if count >= model.MaxChecksPerDay {
			return apperror.BadRequest(apperror.CodeMaxChecksExceeded,
				fmt.Sprintf("employee %s already has %d checks on %s", in.RegistrationNumber, count, dayStart.Format(time.DateOnly)))
		}

		record := &model.Attendance{
			CheckType:          in.CheckType,
			CheckDate:          checkDate,
			Latitude:           in.Latitude,
			Longitude:          in.Longitude,
			Status:             model.AttendanceSuccess,
			LogStatus:          model.LogPending,
			LateTime:           in.LateTime,
			EarlyLeaveTime:     in.EarlyLeaveTime,
			VerificationStatus: in.VerificationStatus,
			MatchPercentage:    in.MatchPercentage,
			Message:            in.Message,
		}
		if record.VerificationStatus == "" {
			record.VerificationStatus = model.VerificationAutomatic
		}
		record.AttachEmployee(employee)

		if err := tx.Attendances().Create(ctx, record); err != nil {
			return err
		}

		record.CheckDate = record.CheckDate.In(u.loc)
		result = CreateAttendanceResult{Attendance: model.NewAttendanceView(record), DailyCount: count + 1}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Info("attendance recorded",
		zap.String("registration_number", in.RegistrationNumber),
		zap.String("check_type", in.CheckType),
		zap.String("check_date", result.Attendance.CheckDate),
		zap.Int64("daily_count", result.DailyCount),
	)
	return &result, nil
}

// List returns one page of punches, newest first. When the query names a device the
// call is recorded as an attendances sync.
func (u *AttendanceUsecase) List(ctx context.Context, q AttendanceQuery, caller Caller) (*AttendancePage, error) {
	page := ClampPage(q.Limit, q.Offset)
	filter := repository.AttendanceFilter{
		RegistrationNumber: q.RegistrationNumber,
		EmployeeID:         q.EmployeeID,
		CheckType:          q.CheckType,
		LogStatus:          q.LogStatus,
		Status:             q.Status,
		Limit:              page.Limit,
		Offset:             page.Offset,
	}

	if q.DateFrom != "" {
		from, err := parseRangeStart(q.DateFrom, u.loc)
		if err != nil {
			return nil, apperror.InvalidParameter("date_from", q.DateFrom)
		}
		filter.DateFrom = &from
	}
	if q.DateTo != "" {
		before, err := parseRangeEnd(q.DateTo, u.loc)
		if err != nil {
			return nil, apperror.InvalidParameter("date_to", q.DateTo)
		}
		filter.DateBefore = &before
	}

	entry := model.SyncLog{
		SyncDate:   u.now().In(u.loc),
		SyncType:   model.SyncTypeAttendances,
		DeviceID:   q.DeviceID,
		SourceIP:   caller.IP,
		Subject:    caller.Subject,
		PageOffset: page.Offset,
	}
	if q.DeviceID != nil {
		previous, err := u.sync.watermark(ctx, q.DeviceID, model.SyncTypeAttendances)
		if err != nil {
			u.sync.failure(ctx, entry, err)
			return nil, err
		}
		entry.PreviousSyncDate = previous
	}

	list, total, err := u.store.Attendances().List(ctx, filter)
	if err != nil {
		if q.DeviceID != nil {
			u.sync.failure(ctx, entry, err)
		}
		return nil, err
	}

	items := make([]model.AttendanceView, 0, len(list))
	for i := range list {
		list[i].CheckDate = list[i].CheckDate.In(u.loc)
		items = append(items, model.NewAttendanceView(&list[i]))
	}

	if q.DeviceID != nil {
		entry.RecordsSynced = len(items)
		entry.Notes = fmt.Sprintf("offset=%d limit=%d total=%d", page.Offset, page.Limit, total)
		if err := u.sync.success(ctx, entry); err != nil {
			return nil, err
		}
	}

	return &AttendancePage{Items: items, Total: total, Limit: page.Limit, Offset: page.Offset}, nil
}
