package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/marquee/internal/media"
	"github.com/lepinkainen/marquee/internal/resolve"
	"github.com/lepinkainen/marquee/internal/testutil"
)

func TestLoadFile_CSV(t *testing.T) {
	env := testutil.NewTestEnv(t)
	path := env.WriteFileString("titles.csv", `Title,Year,IMDb_ID,Kind,Tags
Severance,2022,,tv,"thriller, office"
,,tt0944947,,
Heat,nineteen,,,
,,,,
`)

	items, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, Item{Title: "Severance", Year: 2022, Kind: "tv", Tags: "thriller, office"}, items[0])
	assert.Equal(t, Item{IMDbID: "tt0944947"}, items[1])
}

func TestLoadFile_YAML(t *testing.T) {
	env := testutil.NewTestEnv(t)
	list := env.WriteFileString("list.yaml", `- title: Dune
  year: 2021
  types: movie
- imdb_id: tt0944947
`)
	wrapped := env.WriteFileString("wrapped.yml", `items:
  - title: Solaris
    description: a psychologist on a space station
`)

	items, err := LoadFile(list)
	require.NoError(t, err)
	assert.Equal(t, []Item{{Title: "Dune", Year: 2021, Types: "movie"}, {IMDbID: "tt0944947"}}, items)

	items, err = LoadFile(wrapped)
	require.NoError(t, err)
	assert.Equal(t, []Item{{Title: "Solaris", Description: "a psychologist on a space station"}}, items)
}

func TestLoadFile_Errors(t *testing.T) {
	env := testutil.NewTestEnv(t)

	_, err := LoadFile(env.WriteFileString("titles.txt", "Heat"))
	assert.ErrorContains(t, err, "unsupported input format")

	_, err = LoadFile(env.WriteFileString("bad.yaml", "items: [title: x"))
	assert.ErrorContains(t, err, "failed to parse YAML file")

	items, err := LoadFile(env.WriteFileString("empty.yaml", ""))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestItemQuery(t *testing.T) {
	defaults := resolve.NewQuery("")
	defaults.MinScore = 70
	defaults.Language = "de-DE"

	q := Item{Title: "Dark", Year: 2017, Kind: "series", Types: "tv", Tags: "time travel"}.Query(defaults)
	assert.Equal(t, "Dark", q.Text)
	require.NotNil(t, q.Year)
	assert.Equal(t, 2017, *q.Year)
	require.NotNil(t, q.PreferredKind)
	assert.Equal(t, media.KindSeries, *q.PreferredKind)
	assert.Equal(t, media.KindSet{Series: true}, q.Allowed)
	assert.Equal(t, "time travel", q.Tags)
	assert.Equal(t, 70.0, q.MinScore)
	assert.Equal(t, "de-DE", q.Language)

	q = Item{IMDbID: "tt0944947"}.Query(defaults)
	assert.Nil(t, q.Year)
	assert.Nil(t, q.PreferredKind)
	assert.Equal(t, media.AllKinds(), q.Allowed)
	assert.Equal(t, "tt0944947", q.ExternalID)
}

func TestItemLabel(t *testing.T) {
	assert.Equal(t, "Heat (1995)", Item{Title: "Heat", Year: 1995}.Label())
	assert.Equal(t, "Heat", Item{Title: "Heat"}.Label())
	assert.Equal(t, "tt0113277", Item{IMDbID: "tt0113277"}.Label())
}
