package logschema

// Log schema constants for framefit structured logs.
const (
	SchemaID    = "framefit.log.v1"
	FieldSchema = "log_schema"

	FieldTimestamp = "ts"
	FieldLevel     = "level"
	FieldMessage   = "msg"
	FieldLogger    = "logger"
	FieldCaller    = "caller"
	FieldStack     = "stack"

	FieldComponent = "component"
	FieldEvent     = "event"
	FieldResult    = "result"
	FieldError     = "error"

	// Decode fields.
	FieldSource        = "source"
	FieldBytes         = "bytes"
	FieldFrames        = "frames"
	FieldFramesDropped = "frames_dropped"
	FieldSamples       = "samples"
	FieldSequence      = "packet_sequence"
	FieldPending       = "pending_chars"
	FieldProgress      = "progress"

	// Analysis fields.
	FieldGroup      = "group"
	FieldChannel    = "channel"
	FieldModel      = "model"
	FieldPoints     = "points"
	FieldIterations = "iterations"
	FieldCentroid   = "centroid"
	FieldWidth      = "width"
	FieldWorkers    = "workers"
)

// LogRecord is a generic map representation of a log entry.
type LogRecord map[string]interface{}
