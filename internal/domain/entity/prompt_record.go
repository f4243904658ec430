package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// PromptHistoryVersion is the only document version this build understands.
const PromptHistoryVersion = "1.0"

// PromptRecord pairs an image reference with the prompt used to transform it.
// Records are immutable once created.
type PromptRecord struct {
	ID        string
	ImagePath string
	Prompt    string
	Timestamp time.Time
}

// NewPromptRecord validates the prompt and builds a record.
// The image reference is opaque and may be empty.
func NewPromptRecord(id, imagePath, prompt string, ts time.Time) (*PromptRecord, error) {
	if err := ValidatePrompt(prompt); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, &ValidationError{Field: "id", Reason: "must not be empty"}
	}
	return &PromptRecord{
		ID:        id,
		ImagePath: imagePath,
		Prompt:    prompt,
		Timestamp: ts.UTC(),
	}, nil
}

// ValidatePrompt rejects empty and whitespace-only prompt text.
func ValidatePrompt(prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		return &ValidationError{Field: "prompt", Reason: "must not be empty"}
	}
	return nil
}

// PromptRecordCollection is the ordered, versioned set of prompt records.
// Insertion order is display order.
type PromptRecordCollection struct {
	Version string
	Items   []PromptRecord
}

// NewPromptRecordCollection returns an empty collection at the current version.
func NewPromptRecordCollection() *PromptRecordCollection {
	return &PromptRecordCollection{
		Version: PromptHistoryVersion,
		Items:   []PromptRecord{},
	}
}

// Len returns the number of records.
func (c *PromptRecordCollection) Len() int {
	return len(c.Items)
}

// Append adds a record at the end.
func (c *PromptRecordCollection) Append(record PromptRecord) {
	c.Items = append(c.Items, record)
}

// Last returns the most recent record, or nil when empty.
func (c *PromptRecordCollection) Last() *PromptRecord {
	if len(c.Items) == 0 {
		return nil
	}
	last := c.Items[len(c.Items)-1]
	return &last
}

// Find returns the record with the given ID.
func (c *PromptRecordCollection) Find(id string) (*PromptRecord, bool) {
	for i := range c.Items {
		if c.Items[i].ID == id {
			record := c.Items[i]
			return &record, true
		}
	}
	return nil, false
}

// Remove deletes the record with the given ID, preserving order.
func (c *PromptRecordCollection) Remove(id string) bool {
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items = append(c.Items[:i:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a deep copy safe to hand to the UI.
func (c *PromptRecordCollection) Clone() *PromptRecordCollection {
	items := make([]PromptRecord, len(c.Items))
	copy(items, c.Items)
	return &PromptRecordCollection{Version: c.Version, Items: items}
}

// Document wire format.

type promptHistoryDocument struct {
	Version string              `json:"version"`
	Items   []promptRecordEntry `json:"items"`
}

type promptRecordEntry struct {
	ID        string     `json:"id"`
	ImagePath string     `json:"imagePath"`
	Prompt    string     `json:"prompt"`
	Timestamp recordTime `json:"timestamp"`
}

// recordTime encodes as RFC 3339 and decodes RFC 3339 strings or Unix epoch
// seconds.
type recordTime struct {
	time.Time
}

// RFC 3339 only covers years 0000 through 9999.
var (
	minRecordTime = time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC)
	maxRecordTime = time.Date(10000, time.January, 1, 0, 0, 0, 0, time.UTC)
)

func inRecordRange(ts time.Time) bool {
	return !ts.Before(minRecordTime) && ts.Before(maxRecordTime)
}

func (t recordTime) MarshalJSON() ([]byte, error) {
	if !inRecordRange(t.Time) {
		return nil, fmt.Errorf("timestamp year %d outside 0000-9999", t.UTC().Year())
	}
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

func (t *recordTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return fmt.Errorf("timestamp %q: %w", s, err)
		}
		t.Time = parsed.UTC()
		return nil
	}

	epoch, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("timestamp %s: %w", data, err)
	}
	// Comparisons are false for NaN, so it lands here too.
	if !(epoch >= float64(minRecordTime.Unix()) && epoch < float64(maxRecordTime.Unix())) {
		return fmt.Errorf("timestamp %s: epoch seconds outside years 0000-9999", data)
	}
	sec := int64(epoch)
	nsec := int64((epoch - float64(sec)) * float64(time.Second))
	t.Time = time.Unix(sec, nsec).UTC()
	return nil
}

// EncodePromptHistory serializes a collection into the persisted document.
func EncodePromptHistory(c *PromptRecordCollection) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("cannot encode nil collection")
	}
	if c.Version != PromptHistoryVersion {
		return nil, &FormatError{Version: c.Version}
	}

	doc := promptHistoryDocument{
		Version: c.Version,
		Items:   make([]promptRecordEntry, len(c.Items)),
	}
	for i, r := range c.Items {
		if !inRecordRange(r.Timestamp) {
			return nil, &FormatError{Version: c.Version, Err: fmt.Errorf("item %d: timestamp year %d outside 0000-9999", i, r.Timestamp.UTC().Year())}
		}
		doc.Items[i] = promptRecordEntry{
			ID:        r.ID,
			ImagePath: r.ImagePath,
			Prompt:    r.Prompt,
			Timestamp: recordTime{r.Timestamp},
		}
	}
	return json.MarshalIndent(doc, "", "  ")
}

// DecodePromptHistory parses a persisted document. It fails closed: an
// unknown version or a malformed document yields a FormatError and no data.
func DecodePromptHistory(data []byte) (*PromptRecordCollection, error) {
	var header struct {
		Version *string `json:"version"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, &FormatError{Err: err}
	}
	if header.Version == nil {
		return nil, &FormatError{Err: fmt.Errorf("missing version field")}
	}
	if *header.Version != PromptHistoryVersion {
		return nil, &FormatError{Version: *header.Version}
	}

	var doc promptHistoryDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &FormatError{Version: doc.Version, Err: err}
	}

	c := &PromptRecordCollection{
		Version: doc.Version,
		Items:   make([]PromptRecord, 0, len(doc.Items)),
	}
	for i, e := range doc.Items {
		if e.ID == "" {
			return nil, &FormatError{Version: doc.Version, Err: fmt.Errorf("item %d: missing id", i)}
		}
		if err := ValidatePrompt(e.Prompt); err != nil {
			return nil, &FormatError{Version: doc.Version, Err: fmt.Errorf("item %d: %w", i, err)}
		}
		c.Items = append(c.Items, PromptRecord{
			ID:        e.ID,
			ImagePath: e.ImagePath,
			Prompt:    e.Prompt,
			Timestamp: e.Timestamp.Time,
		})
	}
	return c, nil
}
