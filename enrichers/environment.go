package enrichers

import (
	"os"
	"os/user"
	"strings"
	"sync"

	"github.com/willibrandon/mtlog-log4net/core"
)

// EnvironmentUserNamePropertyName is split into the domain and username
// attributes by the formatter.
const EnvironmentUserNamePropertyName = "EnvironmentUserName"

// EnvironmentUserNameEnricher adds the current user as DOMAIN\user, or just
// user when no domain is known.
type EnvironmentUserNameEnricher struct {
	userName string
	once     sync.Once
}

// NewEnvironmentUserNameEnricher creates a new user name enricher.
func NewEnvironmentUserNameEnricher() *EnvironmentUserNameEnricher {
	return &EnvironmentUserNameEnricher{}
}

// Enrich adds the user name to the log event.
func (e *EnvironmentUserNameEnricher) Enrich(event *core.LogEvent, propertyFactory core.LogEventPropertyFactory) {
	e.once.Do(func() {
		e.userName = environmentUserName()
	})
	if e.userName != "" {
		event.AddPropertyIfAbsent(propertyFactory.CreateProperty(EnvironmentUserNamePropertyName, e.userName))
	}
}

func environmentUserName() string {
	name := os.Getenv("USERNAME")
	if name == "" {
		name = os.Getenv("USER")
	}
	if name == "" {
		if u, err := user.Current(); err == nil {
			name = u.Username
		}
	}
	// Windows user names from os/user already carry the domain.
	if strings.Contains(name, `\`) {
		return name
	}
	if domain := os.Getenv("USERDOMAIN"); domain != "" && name != "" {
		return domain + `\` + name
	}
	return name
}

// EnvironmentEnricher adds environment variable values to log events.
type EnvironmentEnricher struct {
	variableName string
	propertyName string
	cached       bool
	cachedValue  string
}

// NewEnvironmentEnricher creates an enricher that adds the value of an environment variable.
func NewEnvironmentEnricher(variableName, propertyName string) *EnvironmentEnricher {
	return &EnvironmentEnricher{
		variableName: variableName,
		propertyName: propertyName,
	}
}

// NewEnvironmentEnricherCached creates an enricher that caches the environment variable value.
func NewEnvironmentEnricherCached(variableName, propertyName string) *EnvironmentEnricher {
	enricher := &EnvironmentEnricher{
		variableName: variableName,
		propertyName: propertyName,
		cached:       true,
	}
	enricher.cachedValue = os.Getenv(variableName)
	return enricher
}

// Enrich adds the environment variable value to the log event.
func (e *EnvironmentEnricher) Enrich(event *core.LogEvent, propertyFactory core.LogEventPropertyFactory) {
	var value string
	if e.cached {
		value = e.cachedValue
	} else {
		value = os.Getenv(e.variableName)
	}

	if value != "" {
		event.AddOrUpdateProperty(propertyFactory.CreateProperty(e.propertyName, value))
	}
}
