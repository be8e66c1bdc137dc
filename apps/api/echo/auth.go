package echoapi

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/taskistry/collabo/core"
	"github.com/taskistry/collabo/core/user"
)

const (
	claimsContextKey = "userToken"
	userContextKey   = "user"
)

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.RegisteredClaims
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	Role      user.Role `json:"role,omitempty"`
	IsStudent bool      `json:"is_student,omitempty"` // -> STUDENT PORTAL
	IsTeacher bool      `json:"is_teacher,omitempty"` // -> TEACHER PORTAL
	IsAdmin   bool      `json:"is_admin,omitempty"`   // -> ADMIN PORTAL
}

func appJWTMiddleware(conf *core.Config) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:    conf.SecretKey,
		SigningMethod: echojwt.AlgorithmHS256,
		ContextKey:    claimsContextKey,
		NewClaimsFunc: func(echo.Context) jwt.Claims { return new(Claims) },
	})
}

func GetUserClaims(conf *core.Config, usr user.User) *Claims {
	now := time.Now()
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    conf.AppName,
			Subject:   usr.ID,
			Audience:  jwt.ClaimStrings{"Academia"},
			ExpiresAt: jwt.NewNumericDate(now.Add(conf.Server.JWTExpirationDelta)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Name:      usr.Name,
		Email:     usr.Email,
		Role:      usr.Role,
		IsStudent: usr.IsStudent(),
		IsTeacher: usr.IsTeacher(),
		IsAdmin:   usr.IsAdmin(),
	}
}

// GenerateToken generates a signed JWT token string representing the user Claims.
func GenerateToken(conf *core.Config, claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString(conf.SecretKey)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(claimsContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

func getContextUser(ctx echo.Context, svc *user.Service, clms ...Claims) (user.User, error) {
	if usr, ok := ctx.Get(userContextKey).(user.User); ok {
		return usr, nil
	}

	var claims Claims
	var err error
	if len(clms) > 0 {
		claims = clms[0]
	} else {
		claims, err = getContextClaims(ctx)
		if err != nil {
			return user.User{}, errors.Wrap(err, "getting context claims")
		}
	}

	usr, err := svc.GetByID(claims.Subject)
	if err != nil {
		return user.User{}, errors.Wrap(err, "finding user by ID")
	}
	ctx.Set(userContextKey, usr)
	return usr, nil
}
