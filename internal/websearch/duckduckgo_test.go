package websearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const resultsPage = `<html><body>
<div class="result">
  <h2><a class="result__a" href="https://example.test/one">方舟动物园 Ark Nova 介绍</a></h2>
  <a class="result__snippet" href="https://example.test/one">Ark Nova 是一款动物园主题桌游。</a>
</div>
<div class="result">
  <h2><a class="result__a" href="https://example.test/two">购买链接</a></h2>
</div>
<div class="result">
  <h2><a class="result__a" href="https://example.test/three">规则详解</a></h2>
  <div class="result__snippet">完整规则说明。</div>
</div>
</body></html>`

func TestDuckDuckGoParsesResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "方舟动物园 桌游的英文名是什么", r.URL.Query().Get("q"))
		require.Equal(t, "zh-cn", r.URL.Query().Get("kl"))
		_, _ = w.Write([]byte(resultsPage))
	}))
	defer server.Close()

	ddg := &DuckDuckGo{HTTPClient: server.Client(), BaseURL: server.URL}

	results, err := ddg.Search(context.Background(), "方舟动物园 桌游的英文名是什么", "zh-cn", 20)
	require.NoError(t, err)
	require.Len(t, results, 3)

	require.Equal(t, "方舟动物园 Ark Nova 介绍", results[0].Title)
	require.Equal(t, "Ark Nova 是一款动物园主题桌游。", results[0].Body)
	require.Equal(t, "购买链接", results[1].Title)
	require.Empty(t, results[1].Body, "snippet never attaches across a later title")
	require.Equal(t, "完整规则说明。", results[2].Body)
}

func TestDuckDuckGoCapsResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(resultsPage))
	}))
	defer server.Close()

	ddg := &DuckDuckGo{HTTPClient: server.Client(), BaseURL: server.URL}

	results, err := ddg.Search(context.Background(), "q", "", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
}

func TestDuckDuckGoErrorOnBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer server.Close()

	ddg := &DuckDuckGo{HTTPClient: server.Client(), BaseURL: server.URL}

	_, err := ddg.Search(context.Background(), "q", "", 10)
	require.Error(t, err)
}

func TestDuckDuckGoOmitsRegionWhenEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := r.URL.Query()["kl"]
		require.False(t, ok)
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	ddg := &DuckDuckGo{HTTPClient: server.Client(), BaseURL: server.URL}

	results, err := ddg.Search(context.Background(), "q", "", 10)
	require.NoError(t, err)
	require.Empty(t, results)
}
