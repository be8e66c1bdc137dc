package dummydb

import (
	"github.com/google/uuid"

	"github.com/taskistry/collabo/core/project"
)

type projectRepository struct {
	db *projectTable
}

var _ project.Repository = (*projectRepository)(nil) // interface compliance check

func NewProjectRepository(db *DB) project.Repository {
	return &projectRepository{db: db.project}
}

func (repo *projectRepository) CreateProject(proj project.Project) (project.Project, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if proj.ID == "" {
		proj.ID = uuid.NewString()
	}
	repo.db.table[proj.ID] = &proj
	return proj, nil
}

func (repo *projectRepository) GetProjectByID(id string) (project.Project, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if proj, ok := repo.db.table[id]; ok {
		return *proj, nil
	}
	return project.Project{}, project.ErrNotFound
}

func (repo *projectRepository) QueryAllProjects() ([]project.Project, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	projects := make([]project.Project, 0, len(repo.db.table))
	for _, p := range repo.db.table {
		projects = append(projects, *p)
	}
	return projects, nil
}

func (repo *projectRepository) UpdateProject(proj project.Project) (project.Project, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[proj.ID]; !ok {
		return project.Project{}, project.ErrNotFound
	}
	repo.db.table[proj.ID] = &proj
	return proj, nil
}
