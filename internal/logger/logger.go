package logger

import "go.uber.org/zap"

// Log starts as a no-op so library code and tests can log without setup;
// Init swaps in the real production logger at process start.
var Log = zap.NewNop()

func Init() {
	Log = zap.Must(zap.NewProduction())
}

func Sugar() *zap.SugaredLogger {
	return Log.Sugar()
}
