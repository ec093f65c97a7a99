package logger

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus.Logger with additional functionality
type Logger struct {
	*logrus.Logger
}

// New creates a new logger instance
func New(level string) *Logger {
	log := logrus.New()

	// Set log level
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	log.SetLevel(logLevel)

	// Set output format
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})

	// Set output destination
	log.SetOutput(os.Stdout)

	return &Logger{Logger: log}
}

// WithFields creates a new logger entry with the specified fields
func (l *Logger) WithFields(fields map[string]interface{}) *logrus.Entry {
	return l.Logger.WithFields(fields)
}

// WithField creates a new logger entry with a single field
func (l *Logger) WithField(key string, value interface{}) *logrus.Entry {
	return l.Logger.WithField(key, value)
}

// WithError creates a new logger entry with an error field
func (l *Logger) WithError(err error) *logrus.Entry {
	return l.Logger.WithError(err)
}

// WithComponent creates a new logger entry with component name field
func (l *Logger) WithComponent(component string) *logrus.Entry {
	return l.Logger.WithField("component", component)
}

// WithHospital creates a new logger entry with hospital ID field
func (l *Logger) WithHospital(hospitalID string) *logrus.Entry {
	return l.Logger.WithField("hospital_id", hospitalID)
}

// Transition logs an encounter workflow transition as an audit event
func (l *Logger) Transition(encounterID string, from, to string) {
	l.Logger.WithFields(logrus.Fields{
		"audit":        true,
		"encounter_id": encounterID,
		"from_status":  from,
		"to_status":    to,
	}).Info("Encounter status transition")
}

// Suspicious logs a state change that was applied (or rejected) but
// walks against the expected workflow order
func (l *Logger) Suspicious(entity, id string, from, to string, applied bool) {
	l.Logger.WithFields(logrus.Fields{
		"suspicious":  true,
		"entity":      entity,
		"entity_id":   id,
		"from_status": from,
		"to_status":   to,
		"applied":     applied,
	}).Warn("Out-of-order status transition")
}

// ExternalCall logs the outcome of an external collaborator call
func (l *Logger) ExternalCall(service, operation string, success bool, details map[string]interface{}) {
	entry := l.Logger.WithFields(logrus.Fields{
		"external":  true,
		"service":   service,
		"operation": operation,
		"success":   success,
		"details":   details,
	})

	if success {
		entry.Info("External call completed")
	} else {
		entry.Warn("External call failed")
	}
}

// WithContext creates a logger with context-aware fields
func (l *Logger) WithContext(ctx context.Context) *logrus.Entry {
	entry := l.Logger.WithFields(logrus.Fields{})

	// Add trace ID if available
	if traceID := ctx.Value("trace_id"); traceID != nil {
		entry = entry.WithField("trace_id", traceID)
	}

	// Add request ID if available
	if requestID := ctx.Value("request_id"); requestID != nil {
		entry = entry.WithField("request_id", requestID)
	}

	return entry
}

// HTTPRequest logs HTTP request events
func (l *Logger) HTTPRequest(ctx context.Context, method, path, userAgent, clientIP string, statusCode int, duration int64, details map[string]interface{}) {
	entry := l.WithContext(ctx).WithFields(logrus.Fields{
		"http_request": true,
		"method":       method,
		"path":         path,
		"user_agent":   userAgent,
		"client_ip":    clientIP,
		"status_code":  statusCode,
		"duration_ms":  duration,
		"details":      details,
	})

	if statusCode >= 400 {
		entry.Warn("HTTP request completed with error")
	} else {
		entry.Info("HTTP request completed")
	}
}
