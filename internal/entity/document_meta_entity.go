package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentMeta is one row of the corpus metadata catalog. DocKey is the
// corpus file name without its extension; Extras carries the remaining
// catalog columns as raw JSON.
type DocumentMeta struct {
	Id        uuid.UUID
	DocKey    string
	Title     string
	Permalink string
	Extras    []byte
	CreatedAt time.Time
}
