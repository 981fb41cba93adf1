package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldSource    = "source"
	FieldBackend   = "backend"
	FieldRows      = "rows"
	FieldCategory  = "category"
	FieldRunID     = "run_id"
	FieldArtifact  = "artifact"
	FieldReason    = "reason"
	FieldDuration  = "duration_ms"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentPipeline = "pipeline"
	ComponentIngest   = "ingest"
	ComponentStorage  = "storage"
	ComponentAMQP     = "amqp"
	ComponentWorker   = "worker"
	ComponentSite     = "site"
)
