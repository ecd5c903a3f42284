package core

// Logger is the app-wide logging service.
// `args` may contain bare values for context, an `error` and a user object;
// implementations decide how these are reported.
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Critical(msg string, args ...interface{})
}
