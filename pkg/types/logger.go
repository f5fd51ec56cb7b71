package types

// Logger receives diagnostic output from the store. The method set matches
// log/slog, so a *slog.Logger satisfies the interface directly. A nil
// logger disables logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}
