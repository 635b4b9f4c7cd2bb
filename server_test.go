package main

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedArticle(t *testing.T) {
	calls := 0
	run := func() (int, error) {
		calls++
		return calls, nil
	}

	v, err := cachedArticle("test-key", time.Hour, run)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	// Second hit inside the TTL returns the cached value
	v, err = cachedArticle("test-key", time.Hour, run)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, 1, calls)

	// A zero TTL forces a re-run
	v, err = cachedArticle("test-key", 0, run)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestCachedArticleErrorNotCached(t *testing.T) {
	calls := 0
	run := func() (int, error) {
		calls++
		return 0, errors.New("boom")
	}
	_, err := cachedArticle("err-key", time.Hour, run)
	assert.Error(t, err)
	_, err = cachedArticle("err-key", time.Hour, run)
	assert.Error(t, err)
	assert.Equal(t, 2, calls, "failures must not be cached")
}

func TestChartHandlerRejectsNonPNG(t *testing.T) {
	h := chartHandler(Config{ChartDir: t.TempDir()})

	for _, target := range []string{"/charts/", "/charts/../secret.txt", "/charts/run.svg"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		h(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
	}
}
