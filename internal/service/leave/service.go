package leave

import (
	"context"
	"time"

	"github.com/umairahsan10/crm-backend-go/internal/domain/attendance"
	"github.com/umairahsan10/crm-backend-go/internal/domain/employee"
	"github.com/umairahsan10/crm-backend-go/internal/domain/leave"
	"github.com/umairahsan10/crm-backend-go/internal/pkg/database"
)

type leaveService struct {
	tx           database.Transactor
	leaveRepo    leave.Repository
	logRepo      attendance.DailyLogRepository
	counterRepo  attendance.CounterRepository
	employeeRepo employee.Repository
	now          func() time.Time
}

func NewLeaveService(
	tx database.Transactor,
	leaveRepo leave.Repository,
	logRepo attendance.DailyLogRepository,
	counterRepo attendance.CounterRepository,
	employeeRepo employee.Repository,
) leave.Service {
	return &leaveService{
		tx:           tx,
		leaveRepo:    leaveRepo,
		logRepo:      logRepo,
		counterRepo:  counterRepo,
		employeeRepo: employeeRepo,
		now:          time.Now,
	}
}

// Create implements leave.Service.
func (s *leaveService) Create(ctx context.Context, req leave.CreateRequest) (leave.Response, error) {
	if err := req.Validate(); err != nil {
		return leave.Response{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.Response{}, err
	}
	if !emp.IsActive() {
		return leave.Response{}, employee.ErrEmployeeInactive
	}

	start, err := attendance.ParseBusinessDate(req.StartDate)
	if err != nil {
		return leave.Response{}, err
	}
	end, err := attendance.ParseBusinessDate(req.EndDate)
	if err != nil {
		return leave.Response{}, err
	}

	overlap, err := s.leaveRepo.HasOverlap(ctx, emp.ID, start, end)
	if err != nil {
		return leave.Response{}, err
	}
	if overlap {
		return leave.Response{}, leave.ErrOverlap
	}

	created, err := s.leaveRepo.Create(ctx, leave.Request{
		EmployeeID: emp.ID,
		LeaveType:  req.LeaveType,
		StartDate:  start,
		EndDate:    end,
		Reason:     req.Reason,
		Status:     leave.StatusPending,
	})
	if err != nil {
		return leave.Response{}, err
	}

	return mapLeaveToResponse(created), nil
}

// Approve implements leave.Service. A leave whose range already passed
// is backfilled day by day: each covered date gets a leave log and an
// absent-to-leave counter transition against that date's own month, then
// the quarterly balance drops by the full length once.
func (s *leaveService) Approve(ctx context.Context, req leave.ReviewRequest) (leave.Response, error) {
	if err := req.Validate(); err != nil {
		return leave.Response{}, err
	}

	lr, err := s.leaveRepo.GetByID(ctx, req.LeaveID)
	if err != nil {
		return leave.Response{}, err
	}
	if lr.Status != leave.StatusPending {
		return leave.Response{}, leave.ErrAlreadyProcessed
	}

	reviewedOn := s.now().UTC()
	lr.Status = leave.StatusApproved
	lr.ReviewedBy = &req.ReviewerID
	lr.ReviewedOn = &reviewedOn
	lr.Comment = req.Comment

	localNow := reviewedOn.Add(time.Duration(attendance.DefaultTimezoneOffsetMinutes) * time.Minute)
	inPast := lr.EndDate.Before(attendance.BusinessDateOf(localNow))

	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.leaveRepo.Update(txCtx, lr); err != nil {
			return err
		}
		if !inPast {
			// Future or ongoing leave: the auto-absence job applies the
			// day-by-day effects as the dates arrive.
			return nil
		}

		for d := lr.StartDate; !d.After(lr.EndDate); d = d.AddDays(1) {
			if _, err := s.logRepo.Upsert(txCtx, attendance.DailyLog{
				EmployeeID: lr.EmployeeID,
				Date:       d,
				Mode:       attendance.ModeOnsite,
				Status:     attendance.StatusLeave,
			}); err != nil {
				return err
			}
			if err := s.counterRepo.ApplyTransition(txCtx, lr.EmployeeID, attendance.StatusAbsent, attendance.StatusLeave, d.Month()); err != nil {
				return err
			}
		}

		return s.counterRepo.AdjustQuarterlyLeaves(txCtx, lr.EmployeeID, -lr.TotalDays())
	})
	if err != nil {
		return leave.Response{}, err
	}

	return mapLeaveToResponse(lr), nil
}

// Reject implements leave.Service. Rejection never touches attendance
// logs or counters.
func (s *leaveService) Reject(ctx context.Context, req leave.ReviewRequest) (leave.Response, error) {
	if err := req.Validate(); err != nil {
		return leave.Response{}, err
	}

	lr, err := s.leaveRepo.GetByID(ctx, req.LeaveID)
	if err != nil {
		return leave.Response{}, err
	}
	if lr.Status != leave.StatusPending {
		return leave.Response{}, leave.ErrAlreadyProcessed
	}

	reviewedOn := s.now().UTC()
	lr.Status = leave.StatusRejected
	lr.ReviewedBy = &req.ReviewerID
	lr.ReviewedOn = &reviewedOn
	lr.Comment = req.Comment

	if err := s.leaveRepo.Update(ctx, lr); err != nil {
		return leave.Response{}, err
	}

	return mapLeaveToResponse(lr), nil
}

// List implements leave.Service.
func (s *leaveService) List(ctx context.Context, filter leave.Filter) ([]leave.Response, error) {
	requests, err := s.leaveRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]leave.Response, 0, len(requests))
	for _, lr := range requests {
		result = append(result, mapLeaveToResponse(lr))
	}
	return result, nil
}

func mapLeaveToResponse(lr leave.Request) leave.Response {
	return leave.Response{
		ID:         lr.ID,
		EmployeeID: lr.EmployeeID,
		LeaveType:  lr.LeaveType,
		StartDate:  lr.StartDate.String(),
		EndDate:    lr.EndDate.String(),
		TotalDays:  lr.TotalDays(),
		Reason:     lr.Reason,
		Status:     lr.Status,
		ReviewedBy: lr.ReviewedBy,
		Comment:    lr.Comment,
	}
}
