package knowledge

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonDoc = `[{"question":"Is there a hostel?","answer":"Yes, for female students.","keywords":["hostel","dorm"],"categories":["facilities"]}]`

const yamlDoc = `
- question: Is there a hostel?
  answer: Yes, for female students.
  keywords: [hostel, dorm]
  categories: [facilities]
`

type stubConfigMaps struct {
	data map[string]string
	err  error
}

func (s *stubConfigMaps) GetConfigMapValue(ctx context.Context, namespace, name, key string) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	v, ok := s.data[namespace+"/"+name+"/"+key]
	if !ok {
		return nil, errors.New("not found")
	}
	return []byte(v), nil
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		wantErr error
	}{
		{name: "json", file: "faq.json", content: jsonDoc},
		{name: "yaml", file: "faq.yaml", content: yamlDoc},
		{name: "yml", file: "faq.yml", content: yamlDoc},
		{name: "empty array", file: "empty.json", content: `[]`, wantErr: ErrEmptyDocument},
		{name: "missing answer", file: "bad.json", content: `[{"question":"q"}]`, wantErr: ErrInvalidRecord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			records, err := NewFileSource(path).Fetch(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, records, 1)
			assert.Equal(t, "Yes, for female students.", records[0].Answer)
			assert.Equal(t, []string{"hostel", "dorm"}, records[0].Keywords)
			assert.Equal(t, []string{"facilities"}, records[0].Categories)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := NewFileSource(filepath.Join(dir, "nope.json")).Fetch(context.Background())
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"question":`), 0644))
		_, err := NewFileSource(path).Fetch(context.Background())
		assert.Error(t, err)
	})
}

func TestHTTPSource(t *testing.T) {
	t.Run("json body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(jsonDoc))
		}))
		defer srv.Close()

		records, err := NewHTTPSource(srv.URL).Fetch(context.Background())
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("yaml by content type", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/yaml")
			w.Write([]byte(yamlDoc))
		}))
		defer srv.Close()

		records, err := NewHTTPSource(srv.URL).Fetch(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Is there a hostel?", records[0].Question)
	})

	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := NewHTTPSource(srv.URL).Fetch(context.Background())
		assert.ErrorContains(t, err, "status 500")
	})
}

func TestConfigMapSource(t *testing.T) {
	reader := &stubConfigMaps{data: map[string]string{
		"bots/faq/faq.json":    jsonDoc,
		"default/faq/faq.yaml": yamlDoc,
	}}

	records, err := NewConfigMapSource(reader, "bots", "faq", "").Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 1)

	records, err = NewConfigMapSource(reader, "", "faq", "faq.yaml").Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 1)

	_, err = NewConfigMapSource(&stubConfigMaps{err: errors.New("forbidden")}, "bots", "faq", "").Fetch(context.Background())
	assert.Error(t, err)
}

func TestNewSource(t *testing.T) {
	src, err := NewSource(Config{Source: SourceNone}, nil)
	require.NoError(t, err)
	assert.Nil(t, src)

	src, err = NewSource(Config{Source: SourceFile, Path: "/tmp/faq.json"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "file:/tmp/faq.json", src.Name())

	_, err = NewSource(Config{Source: SourceURL}, nil)
	assert.Error(t, err)

	_, err = NewSource(Config{Source: SourceConfigMap, ConfigMapName: "faq"}, nil)
	assert.Error(t, err)

	_, err = NewSource(Config{Source: "ftp"}, nil)
	assert.Error(t, err)
}
