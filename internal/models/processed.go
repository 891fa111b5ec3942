package models

// ProcessedEntry is the input to the indexing pipeline: already-transcribed
// text plus externally computed emotions, tags and sentiment. Classification
// and transcription happen outside the core; the pipeline treats every label
// as opaque.
type ProcessedEntry struct {
	// Date is the user-chosen date in any accepted layout; the pipeline
	// normalizes it to ISO-8601.
	Date string

	Text     string
	Emotions []string
	Tags     []string

	// Sentiment may be empty, in which case it is derived from Emotions by
	// majority vote.
	Sentiment string

	AttachmentRef  string
	AttachmentDesc string

	// Supersedes names the DocID of an earlier entry this one corrects.
	Supersedes string
}
