package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/valentinpelus/faqbot/pkg/types"
)

// Source fetches a knowledge document
type Source interface {
	Fetch(ctx context.Context) ([]types.FaqRecord, error)
	Name() string
}

// ConfigMapReader reads one key of a ConfigMap
type ConfigMapReader interface {
	GetConfigMapValue(ctx context.Context, namespace, name, key string) ([]byte, error)
}

// NewSource creates the source selected by cfg. It returns nil when refresh is disabled.
func NewSource(cfg Config, configMaps ConfigMapReader) (Source, error) {
	switch cfg.Source {
	case "", SourceNone:
		return nil, nil
	case SourceFile:
		if cfg.Path == "" {
			return nil, fmt.Errorf("KB_PATH is required for file knowledge source")
		}
		return NewFileSource(cfg.Path), nil
	case SourceURL:
		if cfg.URL == "" {
			return nil, fmt.Errorf("KB_URL is required for url knowledge source")
		}
		return NewHTTPSource(cfg.URL), nil
	case SourceConfigMap:
		if configMaps == nil {
			return nil, fmt.Errorf("kubernetes client is required for configmap knowledge source")
		}
		if cfg.ConfigMapName == "" {
			return nil, fmt.Errorf("KB_CONFIGMAP_NAME is required for configmap knowledge source")
		}
		return NewConfigMapSource(configMaps, cfg.ConfigMapNamespace, cfg.ConfigMapName, cfg.ConfigMapKey), nil
	default:
		return nil, fmt.Errorf("unsupported knowledge source: %s", cfg.Source)
	}
}

// FileSource reads a JSON or YAML document from disk
type FileSource struct {
	path string
}

// NewFileSource creates a file source
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name returns the source name
func (s *FileSource) Name() string {
	return "file:" + s.path
}

// Fetch reads and decodes the file. The format follows the extension.
func (s *FileSource) Fetch(ctx context.Context) ([]types.FaqRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge file: %w", err)
	}
	return decodeDocument(data, formatFromName(s.path))
}

// HTTPSource downloads the document from a URL
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource creates an HTTP source
func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{
		url:    url,
		client: &http.Client{},
	}
}

// Name returns the source name
func (s *HTTPSource) Name() string {
	return "url:" + s.url
}

// Fetch downloads and decodes the document
func (s *HTTPSource) Fetch(ctx context.Context) ([]types.FaqRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch knowledge document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("knowledge server returned status %d: %s", resp.StatusCode, string(body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge document: %w", err)
	}

	format := formatFromContentType(resp.Header.Get("Content-Type"))
	if format == "" {
		format = formatFromName(s.url)
	}
	return decodeDocument(data, format)
}

// ConfigMapSource reads the document from a key of a Kubernetes ConfigMap
type ConfigMapSource struct {
	reader    ConfigMapReader
	namespace string
	name      string
	key       string
}

// NewConfigMapSource creates a ConfigMap source
func NewConfigMapSource(reader ConfigMapReader, namespace, name, key string) *ConfigMapSource {
	if namespace == "" {
		namespace = "default"
	}
	if key == "" {
		key = "faq.json"
	}
	return &ConfigMapSource{
		reader:    reader,
		namespace: namespace,
		name:      name,
		key:       key,
	}
}

// Name returns the source name
func (s *ConfigMapSource) Name() string {
	return fmt.Sprintf("configmap:%s/%s[%s]", s.namespace, s.name, s.key)
}

// Fetch reads and decodes the ConfigMap key
func (s *ConfigMapSource) Fetch(ctx context.Context) ([]types.FaqRecord, error) {
	data, err := s.reader.GetConfigMapValue(ctx, s.namespace, s.name, s.key)
	if err != nil {
		return nil, err
	}
	return decodeDocument(data, formatFromName(s.key))
}

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

func formatFromName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return formatYAML
	default:
		return formatJSON
	}
}

func formatFromContentType(contentType string) string {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "yaml"):
		return formatYAML
	case strings.Contains(ct, "json"):
		return formatJSON
	default:
		return ""
	}
}

func decodeDocument(data []byte, format string) ([]types.FaqRecord, error) {
	var records []types.FaqRecord
	switch format {
	case formatYAML:
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("failed to parse yaml knowledge document: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("failed to parse json knowledge document: %w", err)
		}
	}
	if err := validateRecords(records); err != nil {
		return nil, err
	}
	return records, nil
}

func validateRecords(records []types.FaqRecord) error {
	if len(records) == 0 {
		return ErrEmptyDocument
	}
	for i, r := range records {
		if strings.TrimSpace(r.Question) == "" || strings.TrimSpace(r.Answer) == "" {
			return fmt.Errorf("record %d: %w", i, ErrInvalidRecord)
		}
	}
	return nil
}
