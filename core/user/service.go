package user

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/taskistry/collabo/core"
)

var (
	// errors
	ErrNotFound    = errors.New("user not found")
	ErrEmailExists = errors.New("a user with this email already exists")
)

type (
	// Repository is the user directory.
	Repository interface {
		CheckEmailUniqueness(email string, excludedUsers ...User) error
		CreateUser(user User) (User, error)
		QueryAllUsers() ([]User, error)
		GetUserByID(id string) (User, error)
		GetUserByEmail(email string) (User, error)
		// FilterUsers applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on one of User.Name or User.Email.
		FilterUsers(filter QueryFilter) ([]User, error)
		UpdateUser(user User, isActive *bool) (User, error)
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
	}
)

func NewService(repo Repository, mailSvc core.EmailService) *Service {
	return &Service{repo: repo, mailSvc: mailSvc}
}

func (svc *Service) CheckUniqueness(email string, exclUsers ...User) error {
	if err := svc.repo.CheckEmailUniqueness(email, exclUsers...); err != nil {
		if errors.Cause(err) == ErrEmailExists {
			return core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Create(nu NewUser) (User, error) {
	now := time.Now().UTC()
	usr := User{
		Name:      nu.Name,
		Email:     nu.Email,
		Role:      nu.Role,
		AvatarURL: DefaultAvatarURL(nu.Name),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}
	usr, err := svc.repo.CreateUser(usr)
	if err != nil {
		return User{}, err
	}
	svc.sendWelcomeEmail(usr)
	return usr, nil
}

func (svc *Service) QueryAll() ([]User, error) {
	return svc.repo.QueryAllUsers()
}

func (svc *Service) GetByID(id string) (User, error) {
	return svc.repo.GetUserByID(id)
}

func (svc *Service) GetByEmail(email string) (User, error) {
	return svc.repo.GetUserByEmail(core.CleanString(email, true /* lower */))
}

// Exists reports whether an account with the given email is present in the
// directory.
func (svc *Service) Exists(email string) (bool, error) {
	_, err := svc.GetByEmail(email)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (svc *Service) Filter(filter QueryFilter) ([]User, error) {
	return svc.repo.FilterUsers(filter)
}

func (svc *Service) SetLastLogin(usr User) (User, error) {
	usr.LastLogin = time.Now().UTC()
	return svc.repo.UpdateUser(usr, nil)
}

// RequestPasswordReset emails a signed reset link to the account matching
// email, if any.
func (svc *Service) RequestPasswordReset(email string) error {
	usr, err := svc.GetByEmail(email)
	if err != nil {
		return err
	}
	token := makeToken(usr)
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject: "Password Reset",
		TextContent: fmt.Sprintf(
			"Hi %s,\n\nUse the link below to reset your password:\n/password-reset/%s/%s\n\n"+
				"If you did not request a reset, you can ignore this email.",
			usr.Name, EncodeUID(usr), token,
		),
	})
	return nil
}

func (svc *Service) ResetPassword(rp ResetUserPassword) error {
	uid, err := decodeUID(rp.UID)
	if err != nil {
		return errInvalidToken
	}
	usr, err := svc.repo.GetUserByID(uid)
	if err != nil {
		return err
	}
	if err = verifyToken(usr, rp.Token); err != nil {
		return err
	}
	if err = usr.SetPassword(rp.Password); err != nil {
		return errors.Wrap(err, "hashing password")
	}
	usr.UpdatedAt = time.Now().UTC()
	_, err = svc.repo.UpdateUser(usr, nil)
	return err
}

func (svc *Service) sendWelcomeEmail(usr User) {
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject: "Bienvenue à Taskistry Collabo",
		TextContent: fmt.Sprintf(
			"Bonjour %s,\n\nVotre compte a été créé avec succès. "+
				"Bienvenue sur la plateforme de gestion de tâches de l'ESMT.",
			usr.Name,
		),
	})
}
