// Package session tracks which user, if any, is currently authenticated, and
// persists that record through a key-value store so it survives restarts.
package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/taskistry/collabo/core"
	"github.com/taskistry/collabo/core/user"
)

// State of the session. Loading is only ever transient: every operation
// settles back to Unauthenticated or Authenticated.
type State int

const (
	Unauthenticated State = iota
	Loading
	Authenticated
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Authenticated:
		return "authenticated"
	}
	return "unauthenticated"
}

var (
	// errors
	ErrAuthenticationFailed = errors.New("invalid credentials")
	ErrSessionBusy          = errors.New("another authentication operation is in progress")
)

// Store is the process-wide session record. At most one authentication
// transition (Init/Login/Register/Logout) is in progress at any time; a
// concurrent call is rejected with ErrSessionBusy rather than interleaved.
type Store struct {
	mu      sync.Mutex
	state   State
	current *user.User

	users *user.Service
	kv    core.KVStore
	log   core.Logger

	key         string
	readTimeout time.Duration
}

func NewStore(users *user.Service, kv core.KVStore, log core.Logger, conf *core.Config) *Store {
	return &Store{
		state:       Loading,
		users:       users,
		kv:          kv,
		log:         log,
		key:         conf.SessionKey,
		readTimeout: conf.SessionReadTimeout,
	}
}

// Init restores the persisted session, if any. A missing, malformed or stale
// record simply leaves the session Unauthenticated; a store failure is logged
// and treated the same way. The store read is bounded by the configured
// timeout.
func (s *Store) Init(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.readTimeout)
	defer cancel()

	data, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.log.Warn("session: reading persisted session", err)
		s.settle(nil)
		return
	}
	if data == nil {
		s.settle(nil)
		return
	}

	var stored user.User
	if err = json.Unmarshal(data, &stored); err != nil {
		s.log.Warn("session: discarding malformed session record", err)
		_ = s.kv.Delete(ctx, s.key)
		s.settle(nil)
		return
	}

	// re-resolve from the directory so a stale persisted copy never wins
	usr, err := s.users.GetByID(stored.ID)
	if err != nil {
		if errors.Cause(err) != user.ErrNotFound {
			s.log.Warn("session: resolving persisted user", err)
		}
		s.settle(nil)
		return
	}
	s.settle(&usr)
}

// Login authenticates by email and password. On success the user record is
// persisted and the session becomes Authenticated; on failure the session is
// left Unauthenticated.
func (s *Store) Login(ctx context.Context, email, password string) (user.User, error) {
	if err := s.begin(); err != nil {
		return user.User{}, err
	}

	usr, err := s.authenticate(email, password)
	if err != nil {
		s.settle(nil)
		return user.User{}, err
	}

	s.persist(ctx, usr)
	s.settle(&usr)
	return usr, nil
}

// Register creates a new account and logs it in. A duplicate email fails
// with user.ErrEmailExists. Input validation is the caller's concern.
func (s *Store) Register(ctx context.Context, nu user.NewUser) (user.User, error) {
	if err := s.begin(); err != nil {
		return user.User{}, err
	}

	exists, err := s.users.Exists(nu.Email)
	if err != nil {
		s.settle(nil)
		return user.User{}, errors.Wrap(err, "checking email uniqueness")
	}
	if exists {
		s.settle(nil)
		return user.User{}, user.ErrEmailExists
	}

	usr, err := s.users.Create(nu)
	if err != nil {
		s.settle(nil)
		return user.User{}, errors.Wrap(err, "creating user")
	}

	s.persist(ctx, usr)
	s.settle(&usr)
	return usr, nil
}

// Logout clears the session and the persisted record unconditionally.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.begin(); err != nil {
		return err
	}
	if err := s.kv.Delete(ctx, s.key); err != nil {
		s.log.Warn("session: deleting persisted session", err)
	}
	s.settle(nil)
	return nil
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Current returns the authenticated user, if any.
func (s *Store) Current() (user.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return user.User{}, false
	}
	return *s.current, true
}

func (s *Store) authenticate(email, password string) (user.User, error) {
	usr, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return user.User{}, ErrAuthenticationFailed
		}
		return user.User{}, errors.Wrap(err, "finding user by email")
	}
	if err = usr.CheckPassword(password); err != nil {
		return user.User{}, ErrAuthenticationFailed
	}
	if !usr.IsActive {
		return user.User{}, ErrAuthenticationFailed
	}
	usr, err = s.users.SetLastLogin(usr)
	if err != nil {
		return user.User{}, errors.Wrap(err, "setting lastLogin")
	}
	return usr, nil
}

// begin claims the single in-flight auth transition slot.
func (s *Store) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Loading {
		return ErrSessionBusy
	}
	s.state = Loading
	return nil
}

func (s *Store) settle(usr *user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = usr
	if usr != nil {
		s.state = Authenticated
	} else {
		s.state = Unauthenticated
	}
}

// persist writes the user record under the fixed session key. Persistence
// failures are logged, not fatal: the in-process session stays valid.
func (s *Store) persist(ctx context.Context, usr user.User) {
	data, err := json.Marshal(usr) // PasswordHash excluded via json:"-"
	if err != nil {
		s.log.Warn("session: marshalling session record", err)
		return
	}
	if err = s.kv.Set(ctx, s.key, data); err != nil {
		s.log.Warn("session: persisting session record", err)
	}
}
