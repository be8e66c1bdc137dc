package task

import (
	"time"

	"github.com/pkg/errors"

	"github.com/taskistry/collabo/core"
	"github.com/taskistry/collabo/core/project"
	"github.com/taskistry/collabo/core/user"
)

var (
	// errors
	ErrNotFound          = errors.New("task not found")
	ErrAssigneeNotMember = core.NewInvariantError("assignee must be a member of the task's project")
)

type (
	Repository interface {
		CreateTask(tsk Task) (Task, error)
		GetTaskByID(id string) (Task, error)
		QueryAllTasks() ([]Task, error)
		QueryProjectTasks(projectID string) ([]Task, error)
		UpdateTask(tsk Task) (Task, error)
		// UnassignMemberTasks resets AssignedTo to nil on all of the project's
		// tasks currently assigned to the user.
		UnassignMemberTasks(projectID, userID string) error
	}

	ProjectGetter interface {
		GetByID(id string) (project.Project, error)
	}

	UserGetter interface {
		GetByID(id string) (user.User, error)
	}

	Service struct {
		repo     Repository
		projects ProjectGetter
		users    UserGetter
	}
)

func NewService(repo Repository, projects ProjectGetter, users UserGetter) *Service {
	return &Service{repo: repo, projects: projects, users: users}
}

// Create validates the assignment rules before any record is produced: a
// failed membership or capability check leaves no task behind.
func (svc *Service) Create(actor user.User, nt NewTask) (Task, error) {
	proj, err := svc.projects.GetByID(nt.ProjectID)
	if err != nil {
		return Task{}, errors.Wrap(err, "resolving task project")
	}
	if nt.AssignedTo != nil {
		if err = svc.checkAssignment(actor, proj, *nt.AssignedTo); err != nil {
			return Task{}, err
		}
	}

	status := nt.Status
	if status == "" {
		status = StatusTodo
	}
	now := time.Now().UTC()
	tsk := Task{
		Title:       nt.Title,
		Description: nt.Description,
		ProjectID:   nt.ProjectID,
		Status:      status,
		DueDate:     nt.DueDate,
		AssignedTo:  nt.AssignedTo,
		CreatedBy:   actor.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateTask(tsk)
}

func (svc *Service) GetByID(id string) (Task, error) {
	return svc.repo.GetTaskByID(id)
}

func (svc *Service) QueryAll() ([]Task, error) {
	return svc.repo.QueryAllTasks()
}

func (svc *Service) QueryForProject(projectID string) ([]Task, error) {
	return svc.repo.QueryProjectTasks(projectID)
}

// ChangeStatus is total over the three statuses; re-setting the current
// status still succeeds and bumps UpdatedAt.
func (svc *Service) ChangeStatus(id string, status Status) (Task, error) {
	if !status.Valid() {
		return Task{}, core.NewValidationError(errors.New("invalid status"),
			core.FieldError{Field: "status", Error: "invalid status"})
	}
	tsk, err := svc.repo.GetTaskByID(id)
	if err != nil {
		return Task{}, err
	}
	tsk.Status = status
	tsk.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateTask(tsk)
}

// Reassign sets or clears (nil assignee) the task's assignment. The new
// assignee must be a member of the task's project and the actor must hold
// the capability to assign to the assignee's role.
func (svc *Service) Reassign(actor user.User, id string, assigneeID *string) (Task, error) {
	tsk, err := svc.repo.GetTaskByID(id)
	if err != nil {
		return Task{}, err
	}
	if assigneeID != nil {
		proj, err := svc.projects.GetByID(tsk.ProjectID)
		if err != nil {
			return Task{}, errors.Wrap(err, "resolving task project")
		}
		if err = svc.checkAssignment(actor, proj, *assigneeID); err != nil {
			return Task{}, err
		}
	}
	tsk.AssignedTo = assigneeID
	tsk.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateTask(tsk)
}

func (svc *Service) checkAssignment(actor user.User, proj project.Project, assigneeID string) error {
	if !proj.IsMember(assigneeID) {
		return ErrAssigneeNotMember
	}
	assignee, err := svc.users.GetByID(assigneeID)
	if err != nil {
		return errors.Wrap(err, "resolving assignee")
	}
	if !user.CanAssign(actor.Role, assignee.Role) {
		return user.ErrPermissionDenied
	}
	return nil
}
