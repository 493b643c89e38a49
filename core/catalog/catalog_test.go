package catalog

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gamedata-wiki/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const fullBundle = `{
	"item_base": [{"b_i": 1, "name": "Sword", "params": {"price": 100}}, "junk"],
	"CARPENTRY_FORMULAS": {"floors": [], "furniture": [], "walls": []},
	"FORGE_FORMULAS": {"7": {"item_id": 1}},
	"npc_base": [],
	"pets": [],
	"SkillQuest": {"quests": []},
	"object_base": [],
	"Forge": {},
	"IMAGE_SHEET": {}
}`

func TestParse(t *testing.T) {
	b, err := Parse("2025_0417", []byte(fullBundle), nil)
	require.NoError(t, err)

	assert.Equal(t, "2025_0417", b.Version)
	assert.Len(t, b.Names(), len(Required))

	items, ok := b.Records(ItemBase)
	require.True(t, ok)
	require.Len(t, items, 1)
	assert.Equal(t, "Sword", items[0]["name"])
	assert.Equal(t, float64(1), items[0]["b_i"])

	forge, ok := b.Object(ForgeFormulas)
	require.True(t, ok)
	assert.Contains(t, forge, "7")

	_, ok = b.Records(ForgeFormulas)
	assert.False(t, ok)
	_, ok = b.Raw("unknown")
	assert.False(t, ok)
}

func TestParse_MissingDatasets(t *testing.T) {
	_, err := Parse("v1", []byte(`{"item_base": [], "pets": null}`), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDatasetMissing))

	var missing *MissingError
	require.True(t, errors.As(err, &missing))
	assert.Contains(t, missing.Datasets, Pets)
	assert.Contains(t, missing.Datasets, ImageSheet)
	assert.NotContains(t, missing.Datasets, ItemBase)
	assert.Contains(t, err.Error(), "v1")
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := Parse("v1", []byte(`{"item_base": [`), nil)
	assert.ErrorIs(t, err, ErrInvalidBundle)
}

func TestParse_CustomPaths(t *testing.T) {
	doc := `{"data": {"items": [{"b_i": 2}]}}`
	b, err := ParseDatasets("v", []byte(doc), Paths{ItemBase: "data.items"}, []string{ItemBase})
	require.NoError(t, err)

	items, ok := b.Records(ItemBase)
	require.True(t, ok)
	assert.Equal(t, float64(2), items[0]["b_i"])
}

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2025_0101.json"), []byte(fullBundle), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2025_0417.json"), []byte(fullBundle), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	src := &DirSource{Dir: dir}
	versions, err := src.Versions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2025_0417", "2025_0101"}, versions)

	b, err := Load(context.Background(), src, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "2025_0417", b.Version)

	_, err = Load(context.Background(), src, "1999_0101", nil)
	assert.Error(t, err)
}

func TestLatest_Empty(t *testing.T) {
	_, err := Latest(context.Background(), &DirSource{Dir: t.TempDir()})
	assert.ErrorIs(t, err, ErrNoVersions)
}

func TestStorageSource(t *testing.T) {
	client := new(mocks.Client)
	src := NewStorageSource(client, "wiki")

	ch := make(chan minio.ObjectInfo, 3)
	ch <- minio.ObjectInfo{Key: "releases/2025_0101.json"}
	ch <- minio.ObjectInfo{Key: "releases/2025_0417.json"}
	ch <- minio.ObjectInfo{Key: "releases/readme.md"}
	close(ch)
	client.On("ListObjects", mock.Anything, "wiki", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
		return opts.Prefix == "releases/"
	})).Return((<-chan minio.ObjectInfo)(ch))
	client.On("GetObject", mock.Anything, "wiki", "releases/2025_0417.json", mock.Anything).
		Return(io.NopCloser(strings.NewReader(fullBundle)), nil)

	b, err := Load(context.Background(), src, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "2025_0417", b.Version)
	client.AssertExpectations(t)
}

func TestStorageSource_ListError(t *testing.T) {
	client := new(mocks.Client)
	src := NewStorageSource(client, "wiki")

	ch := make(chan minio.ObjectInfo, 1)
	ch <- minio.ObjectInfo{Err: assert.AnError}
	close(ch)
	client.On("ListObjects", mock.Anything, "wiki", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

	_, err := src.Versions(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}

type fakeFetcher map[string]string

func (f fakeFetcher) Fetch(ctx context.Context, src string) ([]byte, error) {
	body, ok := f[src]
	if !ok {
		return nil, errors.New("not found: " + src)
	}
	return []byte(body), nil
}

func TestRemoteSource(t *testing.T) {
	src := &RemoteSource{
		BaseURL: "https://cdn.example.com/releases/",
		Fetcher: fakeFetcher{
			"https://cdn.example.com/releases/versions.json":  `["2025_0101", "2025_0417"]`,
			"https://cdn.example.com/releases/2025_0417.json": fullBundle,
		},
	}

	versions, err := src.Versions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2025_0417", "2025_0101"}, versions)

	b, err := Load(context.Background(), src, "2025_0417", nil)
	require.NoError(t, err)
	assert.Equal(t, "2025_0417", b.Version)

	_, err = Load(context.Background(), src, "2025_0101", nil)
	assert.Error(t, err)
}

func TestNewSource(t *testing.T) {
	src, err := NewSource(Config{Source: SourceDir, Dir: "x"}, nil, "", nil)
	require.NoError(t, err)
	assert.IsType(t, &DirSource{}, src)

	src, err = NewSource(Config{Source: SourceStorage}, new(mocks.Client), "wiki", nil)
	require.NoError(t, err)
	assert.Equal(t, "releases/2025_0417.json", src.(*StorageSource).ObjectName("2025_0417"))

	_, err = NewSource(Config{Source: SourceStorage}, nil, "wiki", nil)
	assert.Error(t, err)

	_, err = NewSource(Config{Source: SourceRemote}, nil, "", fakeFetcher{})
	assert.Error(t, err)

	_, err = NewSource(Config{Source: "ftp"}, nil, "", nil)
	assert.EqualError(t, err, "unknown data source: ftp")
}
