package dto

// UploadFileResult reports the outcome for one file in an upload batch.
// Failed files carry the reason; successful ones the number of indexed
// chunks.
type UploadFileResult struct {
	FileName string `json:"file_name"`
	Success  bool   `json:"success"`
	Chunks   int    `json:"chunks,omitempty"`
	Error    string `json:"error,omitempty"`
}

type UploadResponse struct {
	SessionId string             `json:"session_id"`
	Files     []UploadFileResult `json:"files"`
}
