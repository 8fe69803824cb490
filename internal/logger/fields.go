package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	FieldWorkflow   = "workflow"
	FieldState      = "state"
	FieldCapability = "capability"
	FieldEndpoint   = "endpoint"
	FieldProvider   = "ai_provider"
	FieldModel      = "ai_model"
	FieldRequestID  = "request_id"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches the provided fields to the logger, defaulting to a
// no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// WorkflowFields describes a workflow engine and its current state.
func WorkflowFields(workflow, state string) []zap.Field {
	return StringFields(
		StringField{Key: FieldWorkflow, Value: workflow},
		StringField{Key: FieldState, Value: state},
	)
}

// CapabilityFields describes a remote capability call.
func CapabilityFields(capability, endpoint string) []zap.Field {
	return StringFields(
		StringField{Key: FieldCapability, Value: capability},
		StringField{Key: FieldEndpoint, Value: endpoint},
	)
}

// ProviderFields describes the AI provider and model serving a capability.
func ProviderFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}
