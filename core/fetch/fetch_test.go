package fetch

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gamedata-wiki/core/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetter_FetchLocalFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "bundle.json")
	require.NoError(t, os.WriteFile(src, []byte(`{"item_base":[]}`), 0644))

	g := NewGetter(t.TempDir())
	data, err := g.Fetch(context.Background(), src)

	require.NoError(t, err)
	assert.JSONEq(t, `{"item_base":[]}`, string(data))
}

func TestGetter_FetchMissingFile(t *testing.T) {
	g := NewGetter(t.TempDir())
	_, err := g.Fetch(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestBucket_Fetch(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "gamedata", "lang/languages.json", mock.Anything).
		Return(io.NopCloser(strings.NewReader(`{"en":{"name":"English"}}`)), nil)

	f := NewBucket(client, "gamedata")
	data, err := f.Fetch(context.Background(), "/lang/languages.json")

	require.NoError(t, err)
	assert.JSONEq(t, `{"en":{"name":"English"}}`, string(data))
	client.AssertExpectations(t)
}
