package logging

import "github.com/rs/zerolog"

// Severity is the syslog severity carried in the GELF level field.
type Severity int8

const (
	SeverityEmergency Severity = iota
	SeverityAlert
	SeverityCritical
	SeverityError
	SeverityWarning
	SeverityNotice
	SeverityInfo
	SeverityDebug
)

var severities = map[zerolog.Level]Severity{
	zerolog.TraceLevel: SeverityDebug,
	zerolog.DebugLevel: SeverityDebug,
	zerolog.InfoLevel:  SeverityInfo,
	zerolog.WarnLevel:  SeverityWarning,
	zerolog.ErrorLevel: SeverityError,
	zerolog.FatalLevel: SeverityCritical,
	zerolog.PanicLevel: SeverityAlert,
}

// toSeverity maps a zerolog level to syslog. Unknown levels are treated as
// emergencies.
func toSeverity(level zerolog.Level) Severity {
	if severity, ok := severities[level]; ok {
		return severity
	}

	return SeverityEmergency
}
