package constant

const (
	// Watermill topic for queued generation runs.
	GenerationJobTopic = "docgen.generation.jobs"

	// NATS event types emitted by the pipeline.
	EventDocsGenerated    = "DOCS_GENERATED"
	EventGenerationFailed = "GENERATION_FAILED"

	// Link types between generated documents.
	LinkTypeReferences = "references"
	LinkTypeOverview   = "overview"
)
