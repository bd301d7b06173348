package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type LoggerTestSuite struct {
	suite.Suite
	originalLogger *zap.Logger
	observedLogs   *observer.ObservedLogs
}

func (suite *LoggerTestSuite) SetupSuite() {
	suite.originalLogger = zap.L()
}

func (suite *LoggerTestSuite) TearDownSuite() {
	zap.ReplaceGlobals(suite.originalLogger)
}

func (suite *LoggerTestSuite) SetupTest() {
	core, logs := observer.New(zap.DebugLevel)
	suite.observedLogs = logs
	zap.ReplaceGlobals(zap.New(core))
}

func (suite *LoggerTestSuite) TearDownTest() {
	suite.observedLogs.TakeAll()
}

func (suite *LoggerTestSuite) TestGetLogLevelFromString() {
	testCases := []struct {
		name     string
		input    string
		expected zapcore.Level
	}{
		{"debug lowercase", "debug", zapcore.DebugLevel},
		{"info lowercase", "info", zapcore.InfoLevel},
		{"warn lowercase", "warn", zapcore.WarnLevel},
		{"error lowercase", "error", zapcore.ErrorLevel},

		{"debug uppercase", "DEBUG", zapcore.DebugLevel},
		{"info mixed case", "Info", zapcore.InfoLevel},

		{"debug short", "dbg", zapcore.DebugLevel},
		{"error short", "err", zapcore.ErrorLevel},
		{"warning full", "warning", zapcore.WarnLevel},
		{"information full", "information", zapcore.InfoLevel},

		{"fatal", "fatal", zapcore.FatalLevel},

		{"debug with spaces", "  debug  ", zapcore.DebugLevel},

		{"empty string", "", zapcore.InfoLevel},
		{"invalid level", "invalid", zapcore.InfoLevel},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			assert.Equal(suite.T(), tc.expected, getLogLevelFromString(tc.input))
		})
	}
}

func (suite *LoggerTestSuite) TestInit() {
	require.NotPanics(suite.T(), func() {
		Init(&Config{
			Level:       "info",
			Env:         "test",
			ServiceName: "test-service",
		})
	})

	assert.NotNil(suite.T(), zap.L())

	require.NotPanics(suite.T(), func() {
		LogInfo("test message")
	})
}

func (suite *LoggerTestSuite) TestLoggingFunctions() {
	testCases := []struct {
		name    string
		logFunc func()
		level   zapcore.Level
		message string
	}{
		{"LogDebug", func() { LogDebug("test debug message") }, zapcore.DebugLevel, "test debug message"},
		{"LogInfo", func() { LogInfo("test info message") }, zapcore.InfoLevel, "test info message"},
		{"LogWarn", func() { LogWarn("test warn message") }, zapcore.WarnLevel, "test warn message"},
		{"LogError", func() { LogError("test error message") }, zapcore.ErrorLevel, "test error message"},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.observedLogs.TakeAll()

			tc.logFunc()

			logs := suite.observedLogs.All()
			require.Len(suite.T(), logs, 1)
			assert.Equal(suite.T(), tc.level, logs[0].Level)
			assert.Equal(suite.T(), tc.message, logs[0].Message)
		})
	}
}

func (suite *LoggerTestSuite) TestFormattedLoggingFunctions() {
	testCases := []struct {
		name          string
		logFunc       func()
		expectedLevel zapcore.Level
		expectedMsg   string
	}{
		{
			name:          "LogInfof with args",
			logFunc:       func() { LogInfof("user %s signed in with id %s", "ada", "u1") },
			expectedLevel: zapcore.InfoLevel,
			expectedMsg:   "user ada signed in with id u1",
		},
		{
			name:          "LogInfof without args",
			logFunc:       func() { LogInfof("simple message") },
			expectedLevel: zapcore.InfoLevel,
			expectedMsg:   "simple message",
		},
		{
			name:          "LogErrorf with args",
			logFunc:       func() { LogErrorf("refresh failed for %s: %v", "u1", "revoked") },
			expectedLevel: zapcore.ErrorLevel,
			expectedMsg:   "refresh failed for u1: revoked",
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.observedLogs.TakeAll()

			tc.logFunc()

			logs := suite.observedLogs.All()
			require.Len(suite.T(), logs, 1)
			assert.Equal(suite.T(), tc.expectedLevel, logs[0].Level)
			assert.Equal(suite.T(), tc.expectedMsg, logs[0].Message)
		})
	}
}

func (suite *LoggerTestSuite) TestLoggingWithFields() {
	LogInfo("test message",
		zap.String("user", "ada"),
		zap.Bool("active", true),
	)

	logs := suite.observedLogs.All()
	require.Len(suite.T(), logs, 1)
	assert.Equal(suite.T(), "test message", logs[0].Message)
	require.Len(suite.T(), logs[0].Context, 2)
}

func (suite *LoggerTestSuite) TestSync() {
	Init(&Config{Level: "info", Env: "test", ServiceName: "sync-test"})
	require.NotPanics(suite.T(), func() {
		Sync()
	})
}

func TestLoggerTestSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}
