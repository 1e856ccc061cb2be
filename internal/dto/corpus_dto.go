package dto

// IngestCorpusDocumentMessage is the watermill payload queueing one corpus
// file for embedding into the shared index.
type IngestCorpusDocumentMessage struct {
	Path   string `json:"path"`
	Source string `json:"source"`
}
