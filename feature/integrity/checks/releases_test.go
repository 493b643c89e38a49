package checks

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gamedata-wiki/core/catalog"
	"gamedata-wiki/core/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func completeBundle() string {
	parts := make([]string, len(catalog.Required))
	for i, name := range catalog.Required {
		parts[i] = `"` + name + `":{}`
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func TestCheckReleases(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, "gamedata").Return(true, nil)

	mockClient.OnList("gamedata", "releases/2024_01.json", "releases/2024_02.json", "releases/2024_03.json")
	mockClient.OnObject("gamedata", "releases/2024_03.json", completeBundle())
	mockClient.OnObject("gamedata", "releases/2024_02.json", `{"item_base":[]}`)
	mockClient.On("GetObject", mock.Anything, "gamedata", "releases/2024_01.json", mock.Anything).
		Return(nil, errors.New("read failed"))

	reports, err := CheckReleases(context.Background(), mockClient, "gamedata", "releases/", nil)
	require.NoError(t, err)
	require.Len(t, reports, 3)

	assert.Equal(t, "2024_03", reports[0].Version)
	assert.Equal(t, "ok", reports[0].Status)

	assert.Equal(t, "error", reports[1].Status)
	assert.Contains(t, reports[1].Missing, catalog.ImageSheet)
	assert.NotContains(t, reports[1].Missing, catalog.ItemBase)

	assert.Equal(t, "error", reports[2].Status)
	assert.Contains(t, reports[2].Error, "read failed")
}

func TestCheckReleasesBucketMissing(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, "gamedata").Return(false, nil)

	_, err := CheckReleases(context.Background(), mockClient, "gamedata", "releases/", nil)
	assert.Error(t, err)
}
