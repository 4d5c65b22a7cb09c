package logger

// NopLogger discards everything. Used by tests and the CLI.
type NopLogger struct{}

func NewNopLogger() ILogger {
	return NopLogger{}
}

func (NopLogger) Debug(string, string, map[string]interface{}) {}
func (NopLogger) Info(string, string, map[string]interface{})  {}
func (NopLogger) Warn(string, string, map[string]interface{})  {}
func (NopLogger) Error(string, string, map[string]interface{}) {}
func (NopLogger) Sync() error                                  { return nil }

func (NopLogger) GetLogs(string, int, int) ([]LogEntry, error) {
	return []LogEntry{}, nil
}

func (NopLogger) GetLogById(string) (*LogEntry, error) {
	return nil, ErrLogNotFound
}
