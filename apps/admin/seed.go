package main

import (
	"fmt"
	"time"

	"github.com/taskistry/collabo/core/project"
	"github.com/taskistry/collabo/core/task"
	"github.com/taskistry/collabo/core/user"
)

// demoPassword unlocks every seeded account. Demo data only; never
// load this into a real deployment.
const demoPassword = "Taskistry!2024"

type seedUser struct {
	name  string
	email string
	role  user.Role
}

var seedUsers = []seedUser{
	{"Sall Administrateur", "admin@esmt.sn", user.RoleAdmin},
	{"Enseignant Démo", "teacher@esmt.sn", user.RoleTeacher},
	{"Étudiant Démo", "student@esmt.sn", user.RoleStudent},
	{"Dr. Moussa Diop", "moussa.diop@esmt.sn", user.RoleTeacher},
	{"Prof. Fatou Ndiaye", "fatou.ndiaye@esmt.sn", user.RoleTeacher},
	{"Omar Faye", "omar.faye@esmt.sn", user.RoleStudent},
	{"Aminata Sow", "aminata.sow@esmt.sn", user.RoleStudent},
}

// seed loads a small ESMT demo directory with two projects and a
// handful of tasks in every status.
func (cli *commandLine) seed() error {
	now := time.Now().UTC()
	users := make(map[string]user.User, len(seedUsers))

	for _, su := range seedUsers {
		usr := user.User{
			Name:      su.name,
			Email:     su.email,
			Role:      su.role,
			AvatarURL: user.DefaultAvatarURL(su.name),
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := usr.SetPassword(demoPassword); err != nil {
			return err
		}
		usr, err := cli.usrRepo.CreateUser(usr)
		if err != nil {
			return err
		}
		users[su.email] = usr
		fmt.Printf("created %s <%s> (%s)\n", usr.Name, usr.Email, usr.Role)
	}

	diop := users["moussa.diop@esmt.sn"]
	ndiaye := users["fatou.ndiaye@esmt.sn"]
	faye := users["omar.faye@esmt.sn"]
	sow := users["aminata.sow@esmt.sn"]

	networks, err := cli.projRepo.CreateProject(project.Project{
		Title:       "Réseaux et Télécommunications",
		Description: "Travaux pratiques du module réseaux, semestre 1.",
		CreatedBy:   diop.ID,
		Members:     []string{diop.ID, faye.ID, sow.ID},
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return err
	}
	databases, err := cli.projRepo.CreateProject(project.Project{
		Title:       "Bases de Données Avancées",
		Description: "Projet de conception et d'optimisation de bases de données.",
		CreatedBy:   ndiaye.ID,
		Members:     []string{ndiaye.ID, sow.ID},
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return err
	}

	tasks := []task.Task{
		{
			Title:       "Configurer le laboratoire VLAN",
			Description: "Mettre en place la topologie du TP n°1.",
			ProjectID:   networks.ID,
			Status:      task.StatusCompleted,
			AssignedTo:  &diop.ID,
			DueDate:     now.Add(48 * time.Hour),
		},
		{
			Title:       "Rédiger le rapport du TP n°1",
			Description: "Compte rendu des mesures et captures.",
			ProjectID:   networks.ID,
			Status:      task.StatusInProgress,
			AssignedTo:  &faye.ID,
			DueDate:     now.Add(7 * 24 * time.Hour),
		},
		{
			Title:       "Modéliser le schéma relationnel",
			Description: "Diagramme entité-association de l'étude de cas.",
			ProjectID:   databases.ID,
			Status:      task.StatusTodo,
			AssignedTo:  &sow.ID,
			DueDate:     now.Add(14 * 24 * time.Hour),
		},
		{
			Title:       "Préparer le jeu de données de test",
			Description: "Générer les données de charge pour les benchmarks.",
			ProjectID:   databases.ID,
			Status:      task.StatusTodo,
			DueDate:     now.Add(-24 * time.Hour), // already overdue
		},
	}
	for _, tsk := range tasks {
		tsk.CreatedAt = now
		tsk.UpdatedAt = now
		if _, err := cli.taskRepo.CreateTask(tsk); err != nil {
			return err
		}
	}

	fmt.Printf("seeded %d users, 2 projects, %d tasks\n", len(seedUsers), len(tasks))
	return nil
}
