package project

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/taskistry/collabo/core"
)

// Project groups tasks and the members eligible to be assigned to them.
// CreatedBy is always present in Members.
type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedBy   string    `json:"created_by"`
	Members     []string  `json:"members"`
	CreatedAt   time.Time `json:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at"` // UTC
}

// IsMember reports whether the user is in the project's member set.
func (p *Project) IsMember(userID string) bool {
	for _, id := range p.Members {
		if id == userID {
			return true
		}
	}
	return false
}

// NewProject contains information needed to create a new Project.
type NewProject struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

func (np *NewProject) Validate(validate *validator.Validate) error {
	np.Title = core.CleanString(np.Title)
	np.Description = core.CleanString(np.Description)
	return validate.Struct(np)
}
