package knowledge

import (
	"errors"
	"time"
)

var (
	// ErrEmptyDocument is returned when a refresh document holds no records
	ErrEmptyDocument = errors.New("knowledge document contains no records")
	// ErrInvalidRecord is returned when a record lacks a question or an answer
	ErrInvalidRecord = errors.New("knowledge record requires question and answer")
)

// Source kinds accepted by NewSource
const (
	SourceNone      = "none"
	SourceFile      = "file"
	SourceURL       = "url"
	SourceConfigMap = "configmap"
)

// Config selects where the knowledge base is refreshed from
type Config struct {
	Source             string // "none", "file", "url", "configmap"
	Path               string
	URL                string
	ConfigMapNamespace string
	ConfigMapName      string
	ConfigMapKey       string
	FetchTimeout       time.Duration
}
