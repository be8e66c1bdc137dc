package logsvc

import (
	"log"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/taskistry/collabo/core"
	"github.com/taskistry/collabo/core/user"
)

// RollbarLogger reports to rollbar and echoes to a standard *log.Logger.
// A user.User passed among the args is attached to the report as the
// acting person instead of being logged; everything else is forwarded
// as extra payload.
type RollbarLogger struct {
	std *log.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{std: std}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

func (l RollbarLogger) report(send func(...interface{}), msg string, args []interface{}) {
	payload := make([]interface{}, 0, len(args)+1)
	payload = append(payload, msg)

	var person *user.User
	for _, arg := range args {
		if usr, ok := arg.(user.User); ok {
			if person == nil { // first user wins
				person = &usr
			}
			continue
		}
		payload = append(payload, arg)
	}
	if person != nil {
		rollbar.SetPerson(person.ID, person.Name, person.Email)
	} else {
		rollbar.ClearPerson()
	}
	send(payload...)

	l.std.Println(msg)
	for _, arg := range payload[1:] {
		l.std.Printf("%+v\n", arg)
	}
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	l.report(rollbar.Debug, msg, args)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	l.report(rollbar.Info, msg, args)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	l.report(rollbar.Warning, msg, args)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	l.report(rollbar.Error, msg, args)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	l.report(rollbar.Critical, msg, args)
	l.std.Fatal(msg)
}
