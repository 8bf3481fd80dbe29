package storage

import (
	"encoding/json"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Note is one stored note. Properties is free-form metadata; backends that
// add their own keys (encryption) strip them again on the way out.
type Note struct {
	ID         string         `json:"id"`
	Content    string         `json:"content"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	Properties map[string]any `json:"properties"`
}

// NewNote returns an empty note with a fresh v4 uuid.
func NewNote() *Note {
	now := time.Now().UTC()
	return &Note{
		ID:         uuid.NewString(),
		CreatedAt:  now,
		UpdatedAt:  now,
		Properties: map[string]any{},
	}
}

// Preview is the sidebar label: the first line of the note, cut to limit
// runes with a trailing "...".
func (n *Note) Preview(limit int) string {
	if n.Content == "" {
		return "(empty note)"
	}
	first, _, _ := strings.Cut(n.Content, "\n")
	r := []rune(first)
	if len(r) <= limit {
		return first
	}
	if limit <= 3 {
		return string(r[:max(limit, 0)])
	}
	return string(r[:limit-3]) + "..."
}

func (n *Note) Property(key string) any {
	return n.Properties[key]
}

// clone copies n deeply enough that the caller may mutate Properties.
func (n *Note) clone() *Note {
	c := *n
	c.Properties = maps.Clone(n.Properties)
	if c.Properties == nil {
		c.Properties = map[string]any{}
	}
	return &c
}

// touch stamps a save.
func (n *Note) touch() {
	now := time.Now().UTC()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = now
	}
	n.UpdatedAt = now
}

func encodeNote(n *Note) ([]byte, error) {
	return json.MarshalIndent(n, "", "  ")
}

func decodeNote(b []byte) (*Note, error) {
	var n Note
	if err := json.Unmarshal(b, &n); err != nil {
		return nil, err
	}
	if n.ID == "" {
		return nil, fmt.Errorf("note has no id")
	}
	if n.Properties == nil {
		n.Properties = map[string]any{}
	}
	return &n, nil
}

func encodeProperties(p map[string]any) (string, error) {
	if len(p) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(p)
	return string(b), err
}

func decodeProperties(s string) (map[string]any, error) {
	p := map[string]any{}
	if s == "" {
		return p, nil
	}
	if err := json.Unmarshal([]byte(s), &p); err != nil {
		return nil, err
	}
	return p, nil
}
