package main

import (
	"testing"

	"github.com/taskistry/collabo/core/user"
	dummydb "github.com/taskistry/collabo/storage/database/dummy"
	testutil "github.com/taskistry/collabo/tests"
)

func setup(t *testing.T) *commandLine {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}
	return &commandLine{
		usrRepo:  dummydb.NewUserRepository(db),
		projRepo: dummydb.NewProjectRepository(db),
		taskRepo: dummydb.NewTaskRepository(db),
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
}

func Test_commandLine_addUser(t *testing.T) {
	cli := setup(t)

	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("S3kr3tWord"), nil }

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"adduser"}, wantErr: errHelp},
		{name: "missing email", args: []string{"adduser", "-name", "Awa Ba"}, wantErr: errHelp},
		{name: "bad role", args: []string{"adduser", "-name", "Awa Ba", "-email", "awa@esmt.sn", "-role", "boss"}, wantErr: errHelp},
		{name: "default role", args: []string{"adduser", "-name", "Awa Ba", "-email", "awa@esmt.sn"}},
		{name: "teacher", args: []string{"adduser", "-name", "Dr. Cheikh Kane", "-email", "cheikh.kane@esmt.sn", "-role", "teacher"}},
		{name: "existing email updates", args: []string{"adduser", "-name", "Awa Ba", "-email", "awa@esmt.sn", "-role", "admin"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr == nil || err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if tt.wantErr != nil {
				t.Errorf("cli.run() expected error %v", tt.wantErr)
			}
		})
	}

	usr, err := cli.usrRepo.GetUserByEmail("awa@esmt.sn")
	if err != nil {
		t.Fatalf("GetUserByEmail() failed: %v", err)
	}
	if usr.Role != user.RoleAdmin {
		t.Errorf("Role = %v, want %v", usr.Role, user.RoleAdmin)
	}
	if err := usr.CheckPassword("S3kr3tWord"); err != nil {
		t.Error("CheckPassword() failed for the prompted password")
	}
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)

	usr := testutil.CreateUser(t, cli.usrRepo, "Omar Faye", "omar.faye@esmt.sn", "0ldPassword", user.RoleStudent, true)

	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("N3wPassword"), nil }

	tests := []cliTest{
		{name: "no email", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "unknown email", args: []string{"resetpassword", "-email", "nobody@esmt.sn"}, wantErr: user.ErrNotFound},
		{name: "ok", args: []string{"resetpassword", "-email", "omar.faye@esmt.sn"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr == nil || err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if tt.wantErr != nil {
				t.Errorf("cli.run() expected error %v", tt.wantErr)
			}
		})
	}

	usr, err := cli.usrRepo.GetUserByID(usr.ID)
	if err != nil {
		t.Fatalf("GetUserByID() failed: %v", err)
	}
	if err := usr.CheckPassword("N3wPassword"); err != nil {
		t.Error("CheckPassword() failed for the new password")
	}
	if err := usr.CheckPassword("0ldPassword"); err == nil {
		t.Error("CheckPassword() succeeded for the old password")
	}
}

func Test_commandLine_seed(t *testing.T) {
	cli := setup(t)

	if err := cli.run([]string{"admin", "seed"}); err != nil {
		t.Fatalf("cli.run() failed: %v", err)
	}

	users, err := cli.usrRepo.QueryAllUsers()
	if err != nil {
		t.Fatalf("QueryAllUsers() failed: %v", err)
	}
	if len(users) != len(seedUsers) {
		t.Errorf("len(users) = %d, want %d", len(users), len(seedUsers))
	}
	projects, err := cli.projRepo.QueryAllProjects()
	if err != nil {
		t.Fatalf("QueryAllProjects() failed: %v", err)
	}
	if len(projects) != 2 {
		t.Errorf("len(projects) = %d, want 2", len(projects))
	}
	tasks, err := cli.taskRepo.QueryAllTasks()
	if err != nil {
		t.Fatalf("QueryAllTasks() failed: %v", err)
	}
	if len(tasks) != 4 {
		t.Errorf("len(tasks) = %d, want 4", len(tasks))
	}
}
