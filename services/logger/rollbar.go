// Package logsvc provides core.Logger implementations backed by external
// error trackers.
package logsvc

import (
	"log"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/lefika/ripota/core"
	"github.com/lefika/ripota/core/user"
)

// RollbarLogger reports to Rollbar and echoes everything to the standard
// logger so records survive locally when the tracker is unreachable.
type RollbarLogger struct {
	std *log.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer) // unwraps pkg/errors stacks
	return &RollbarLogger{std: std}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// tag attaches the acting user to the report when one is passed among the
// args. A user.User arg is consumed here, not forwarded to rollbar; at most
// one is honored.
func (l RollbarLogger) tag(msg string, args []interface{}) []interface{} {
	out := make([]interface{}, 0, len(args)+1)
	out = append(out, msg)

	var tagged bool
	for _, arg := range args {
		usr, ok := arg.(user.User)
		if !ok {
			out = append(out, arg)
			continue
		}
		if !tagged {
			rollbar.SetPerson(usr.ID, usr.Name, usr.Email)
			tagged = true
		}
	}
	if !tagged {
		rollbar.ClearPerson()
	}
	return out
}

func (l RollbarLogger) echo(msg string, args []interface{}) {
	l.std.Println(msg)
	for _, arg := range args {
		l.std.Printf("%+v\n", arg)
	}
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	rollbar.Debug(l.tag(msg, args)...)
	l.echo(msg, args)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	rollbar.Info(l.tag(msg, args)...)
	l.echo(msg, args)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	rollbar.Warning(l.tag(msg, args)...)
	l.echo(msg, args)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	rollbar.Error(l.tag(msg, args)...)
	l.echo(msg, args)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	rollbar.Critical(l.tag(msg, args)...)
	l.echo(msg, args)
	l.std.Fatal(msg)
}
