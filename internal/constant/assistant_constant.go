package constant

const (
	// Upload limits
	MaxUploadFiles = 5

	// Watermill topic for corpus document ingestion
	CorpusIngestTopicDefault = "INGEST_CORPUS_DOCUMENT"

	// NATS event types
	EventChatTurnCompleted = "CHAT_TURN_COMPLETED"
	EventSessionDeleted    = "CHAT_SESSION_DELETED"

	// Join separator for persisted source and suggestion lists
	PersistedListSeparator = "\n\n"
)
