package project

import (
	"time"

	"github.com/pkg/errors"

	"github.com/taskistry/collabo/core"
	"github.com/taskistry/collabo/core/user"
)

var (
	// errors
	ErrNotFound       = errors.New("project not found")
	ErrCreatorRemoval = core.NewInvariantError("the project creator cannot be removed from members")
)

type (
	Repository interface {
		CreateProject(proj Project) (Project, error)
		GetProjectByID(id string) (Project, error)
		QueryAllProjects() ([]Project, error)
		UpdateProject(proj Project) (Project, error)
	}

	// UserGetter resolves directory users referenced by member ids.
	UserGetter interface {
		GetByID(id string) (user.User, error)
	}

	// TaskUnassigner clears task assignments held by a removed member, as part
	// of the same logical operation as the removal.
	TaskUnassigner interface {
		UnassignMemberTasks(projectID, userID string) error
	}

	Service struct {
		repo  Repository
		users UserGetter
		tasks TaskUnassigner
	}
)

func NewService(repo Repository, users UserGetter, tasks TaskUnassigner) *Service {
	return &Service{repo: repo, users: users, tasks: tasks}
}

// Create makes the creator the project's sole initial member.
func (svc *Service) Create(creator user.User, np NewProject) (Project, error) {
	now := time.Now().UTC()
	proj := Project{
		Title:       np.Title,
		Description: np.Description,
		CreatedBy:   creator.ID,
		Members:     []string{creator.ID},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateProject(proj)
}

func (svc *Service) GetByID(id string) (Project, error) {
	return svc.repo.GetProjectByID(id)
}

func (svc *Service) QueryAll() ([]Project, error) {
	return svc.repo.QueryAllProjects()
}

// AddMember appends the user to the project's member set. Adding an existing
// member is a no-op. The user must exist in the directory.
func (svc *Service) AddMember(projectID, userID string) (Project, error) {
	proj, err := svc.repo.GetProjectByID(projectID)
	if err != nil {
		return Project{}, err
	}
	if proj.IsMember(userID) {
		return proj, nil
	}
	if _, err = svc.users.GetByID(userID); err != nil {
		return Project{}, errors.Wrap(err, "resolving new member")
	}
	proj.Members = append(proj.Members, userID)
	proj.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateProject(proj)
}

// RemoveMember drops the user from the project's member set and unassigns any
// of the project's tasks still held by them. Removing the creator is an
// invariant violation; removing an absent member is a no-op.
func (svc *Service) RemoveMember(projectID, userID string) (Project, error) {
	proj, err := svc.repo.GetProjectByID(projectID)
	if err != nil {
		return Project{}, err
	}
	if userID == proj.CreatedBy {
		return Project{}, ErrCreatorRemoval
	}
	if !proj.IsMember(userID) {
		return proj, nil
	}

	members := make([]string, 0, len(proj.Members)-1)
	for _, id := range proj.Members {
		if id != userID {
			members = append(members, id)
		}
	}
	proj.Members = members
	proj.UpdatedAt = time.Now().UTC()

	proj, err = svc.repo.UpdateProject(proj)
	if err != nil {
		return Project{}, err
	}
	if err = svc.tasks.UnassignMemberTasks(projectID, userID); err != nil {
		return Project{}, errors.Wrap(err, "unassigning removed member's tasks")
	}
	return proj, nil
}
