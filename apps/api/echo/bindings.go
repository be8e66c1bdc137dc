package echoapi

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/taskistry/collabo/core"
	"github.com/taskistry/collabo/core/stats"
	"github.com/taskistry/collabo/core/task"
	"github.com/taskistry/collabo/core/user"
)

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string    `json:"token"`
		User  user.User `json:"user"`
	}

	SessionResponse struct {
		State string     `json:"state"`
		User  *user.User `json:"user,omitempty"`
	}

	PasswordResetRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}

	AddMemberRequest struct {
		UserID string `json:"user_id" validate:"required"`
	}

	ChangeStatusRequest struct {
		Status task.Status `json:"status" validate:"required,status"`
	}

	ReassignRequest struct {
		// AssignedTo may be null to clear the assignment.
		AssignedTo *string `json:"assigned_to"`
	}

	OverviewResponse struct {
		stats.Overview
		Percentages stats.Percentages `json:"percentages"`
		Overdue     int               `json:"overdue"`
	}

	PerformanceEntry struct {
		stats.Performance
		Bonus stats.BonusTier `json:"bonus"`
	}
)

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	return validate.Struct(lr)
}

func (pr *PasswordResetRequest) Validate(validate *validator.Validate) error {
	pr.Email = core.CleanString(pr.Email, true /* lower */)
	return validate.Struct(pr)
}

func (cs *ChangeStatusRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(cs)
}

func (am *AddMemberRequest) Validate(validate *validator.Validate) error {
	am.UserID = core.CleanString(am.UserID)
	return validate.Struct(am)
}

func overdueCount(tasks []task.Task, now time.Time) int {
	var n int
	for i := range tasks {
		if tasks[i].IsOverdue(now) {
			n++
		}
	}
	return n
}
