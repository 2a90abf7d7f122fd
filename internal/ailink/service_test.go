package ailink

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestServiceGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "gpt-utils", payload["model"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"gpt-utils","choices":[{"message":{"role":"assistant","content":"  中文名：卡坦岛\n英文名：Catan  "},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	svc := NewService(Config{Models: map[string]ModelConfig{
		"utils": {Enabled: true, BaseURL: server.URL, APIKey: "test-key", Model: "gpt-utils"},
	}}, nil)

	res, err := svc.Generate(context.Background(), GenerateRequest{Prompt: "提取英文名", ModelKey: "utils"})
	require.NoError(t, err)
	require.Equal(t, "utils", res.Key)
	require.Equal(t, "gpt-utils", res.Model)
	require.Equal(t, "中文名：卡坦岛\n英文名：Catan", res.Text, "completion text is trimmed")
}

func TestServiceGenerateEmptyCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"   "},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	svc := NewService(Config{Models: map[string]ModelConfig{
		"utils": {Enabled: true, BaseURL: server.URL, Model: "gpt-utils"},
	}}, nil)

	_, err := svc.Generate(context.Background(), GenerateRequest{Prompt: "p", ModelKey: "utils"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "empty completion")
}

func TestServiceGenerateNoModels(t *testing.T) {
	svc := NewService(Config{}, nil)

	_, err := svc.Generate(context.Background(), GenerateRequest{Prompt: "p", ModelKey: "utils"})
	require.Error(t, err)
}
