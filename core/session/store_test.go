package session_test

import (
	"context"
	"io"
	"log"
	"net/mail"
	"testing"
	"time"

	"github.com/taskistry/collabo/core"
	"github.com/taskistry/collabo/core/session"
	"github.com/taskistry/collabo/core/user"
	emailsvc "github.com/taskistry/collabo/services/email"
	logsvc "github.com/taskistry/collabo/services/logger"
	dummydb "github.com/taskistry/collabo/storage/database/dummy"
	dummykv "github.com/taskistry/collabo/storage/kv/dummy"
	testutil "github.com/taskistry/collabo/tests"
)

const sessionKey = "taskistry:session:user"

type testEnv struct {
	conf    *core.Config
	usrSvc  *user.Service
	usrRepo user.Repository
	kv      core.KVStore
	store   *session.Store
}

func setup(t *testing.T) testEnv {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	conf := &core.Config{
		AppName:            "Taskistry",
		TestMode:           true,
		DefaultFromEmail:   mail.Address{Name: "Taskistry", Address: "noreply@esmt.sn"},
		SessionKey:         sessionKey,
		SessionReadTimeout: time.Second,
	}
	usrRepo := dummydb.NewUserRepository(db)
	usrSvc := user.NewService(usrRepo, emailsvc.NewConsoleServiceMock(conf))
	kv := dummykv.NewStore()
	logger := logsvc.NewStdLogger(log.New(io.Discard, "", 0))

	store := session.NewStore(usrSvc, kv, logger, conf)
	store.Init(context.Background())
	return testEnv{conf: conf, usrSvc: usrSvc, usrRepo: usrRepo, kv: kv, store: store}
}

func TestStore_Init(t *testing.T) {
	env := setup(t)

	// a fresh store settles Unauthenticated
	if got := env.store.State(); got != session.Unauthenticated {
		t.Errorf("State() = %v, want %v", got, session.Unauthenticated)
	}
	if _, ok := env.store.Current(); ok {
		t.Error("Current() returned a user on a fresh store")
	}
}

func TestStore_Init_restoresPersistedSession(t *testing.T) {
	env := setup(t)
	usr := testutil.CreateUser(t, env.usrRepo, "Omar Faye", "omar.faye@esmt.sn", "Taskistry!2024", user.RoleStudent, true)
	ctx := context.Background()

	if _, err := env.store.Login(ctx, usr.Email, "Taskistry!2024"); err != nil {
		t.Fatalf("Login() failed: %v", err)
	}

	// a second store over the same KV picks the session up
	logger := logsvc.NewStdLogger(log.New(io.Discard, "", 0))
	restored := session.NewStore(env.usrSvc, env.kv, logger, env.conf)
	restored.Init(ctx)

	if got := restored.State(); got != session.Authenticated {
		t.Fatalf("State() = %v, want %v", got, session.Authenticated)
	}
	current, ok := restored.Current()
	if !ok {
		t.Fatal("Current() returned no user")
	}
	if current.ID != usr.ID {
		t.Errorf("Current().ID = %s, want %s", current.ID, usr.ID)
	}
}

func TestStore_Init_discardsMalformedRecord(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	if err := env.kv.Set(ctx, sessionKey, []byte("{not json")); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	logger := logsvc.NewStdLogger(log.New(io.Discard, "", 0))
	store := session.NewStore(env.usrSvc, env.kv, logger, env.conf)
	store.Init(ctx)

	if got := store.State(); got != session.Unauthenticated {
		t.Errorf("State() = %v, want %v", got, session.Unauthenticated)
	}
	data, err := env.kv.Get(ctx, sessionKey)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if data != nil {
		t.Error("malformed record not deleted from the store")
	}
}

func TestStore_Init_dropsStaleUser(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	// a persisted record pointing at a user no longer in the directory
	if err := env.kv.Set(ctx, sessionKey, []byte(`{"id":"gone"}`)); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	logger := logsvc.NewStdLogger(log.New(io.Discard, "", 0))
	store := session.NewStore(env.usrSvc, env.kv, logger, env.conf)
	store.Init(ctx)

	if got := store.State(); got != session.Unauthenticated {
		t.Errorf("State() = %v, want %v", got, session.Unauthenticated)
	}
}

func TestStore_Login(t *testing.T) {
	env := setup(t)
	usr := testutil.CreateUser(t, env.usrRepo, "Omar Faye", "omar.faye@esmt.sn", "Taskistry!2024", user.RoleStudent, true)
	inactive := testutil.CreateUser(t, env.usrRepo, "Aminata Sow", "aminata.sow@esmt.sn", "Taskistry!2024", user.RoleStudent, false)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"ok", usr.Email, "Taskistry!2024", nil},
		{"wrong password", usr.Email, "nope", session.ErrAuthenticationFailed},
		{"unknown email", "nobody@esmt.sn", "Taskistry!2024", session.ErrAuthenticationFailed},
		{"inactive account", inactive.Email, "Taskistry!2024", session.ErrAuthenticationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := env.store.Login(ctx, tt.email, tt.password)
			if err != tt.wantErr {
				t.Fatalf("Login() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if state := env.store.State(); state != session.Unauthenticated {
					t.Errorf("State() = %v after failed login, want %v", state, session.Unauthenticated)
				}
				return
			}
			if got.ID != usr.ID {
				t.Errorf("Login().ID = %s, want %s", got.ID, usr.ID)
			}
			if state := env.store.State(); state != session.Authenticated {
				t.Errorf("State() = %v, want %v", state, session.Authenticated)
			}
			if got.LastLogin.IsZero() {
				t.Error("LastLogin not set")
			}
			data, err := env.kv.Get(ctx, sessionKey)
			if err != nil {
				t.Fatalf("Get() failed: %v", err)
			}
			if data == nil {
				t.Error("session record not persisted")
			}
		})
	}
}

func TestStore_Logout(t *testing.T) {
	env := setup(t)
	usr := testutil.CreateUser(t, env.usrRepo, "Omar Faye", "omar.faye@esmt.sn", "Taskistry!2024", user.RoleStudent, true)
	ctx := context.Background()

	if _, err := env.store.Login(ctx, usr.Email, "Taskistry!2024"); err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	if err := env.store.Logout(ctx); err != nil {
		t.Fatalf("Logout() failed: %v", err)
	}

	if got := env.store.State(); got != session.Unauthenticated {
		t.Errorf("State() = %v, want %v", got, session.Unauthenticated)
	}
	if _, ok := env.store.Current(); ok {
		t.Error("Current() returned a user after logout")
	}
	data, err := env.kv.Get(ctx, sessionKey)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if data != nil {
		t.Error("session record not deleted")
	}

	// logging out while unauthenticated is fine
	if err := env.store.Logout(ctx); err != nil {
		t.Errorf("Logout() failed: %v", err)
	}
}

func TestStore_Register(t *testing.T) {
	env := setup(t)
	existing := testutil.CreateUser(t, env.usrRepo, "Omar Faye", "omar.faye@esmt.sn", "Taskistry!2024", user.RoleStudent, true)
	ctx := context.Background()

	usr, err := env.store.Register(ctx, user.NewUser{
		Name:            "Aminata Sow",
		Email:           "aminata.sow@esmt.sn",
		Password:        "Taskistry!2024",
		PasswordConfirm: "Taskistry!2024",
		Role:            user.RoleStudent,
	})
	if err != nil {
		t.Fatalf("Register() failed: %v", err)
	}
	if state := env.store.State(); state != session.Authenticated {
		t.Errorf("State() = %v, want %v", state, session.Authenticated)
	}
	if current, ok := env.store.Current(); !ok || current.ID != usr.ID {
		t.Error("Current() does not return the registered user")
	}

	// duplicate email
	_, err = env.store.Register(ctx, user.NewUser{
		Name:            "Imposter",
		Email:           existing.Email,
		Password:        "Taskistry!2024",
		PasswordConfirm: "Taskistry!2024",
		Role:            user.RoleStudent,
	})
	if err != user.ErrEmailExists {
		t.Errorf("Register() error = %v, want %v", err, user.ErrEmailExists)
	}
}

// A store stuck mid-transition turns concurrent operations away instead of
// interleaving them.
func TestStore_busy(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	logger := logsvc.NewStdLogger(log.New(io.Discard, "", 0))
	fresh := session.NewStore(env.usrSvc, env.kv, logger, env.conf)

	// not yet initialized: still Loading
	if _, err := fresh.Login(ctx, "omar.faye@esmt.sn", "x"); err != session.ErrSessionBusy {
		t.Errorf("Login() error = %v, want %v", err, session.ErrSessionBusy)
	}
	if err := fresh.Logout(ctx); err != session.ErrSessionBusy {
		t.Errorf("Logout() error = %v, want %v", err, session.ErrSessionBusy)
	}
}
