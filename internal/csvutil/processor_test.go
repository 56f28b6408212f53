package csvutil

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/marquee/internal/testutil"
)

type title struct {
	Name string
	Year string
	Line int
}

func parseTitle(row Row) (title, error) {
	name := row.Get("title", "name")
	if name == "" {
		return title{}, errors.New("missing title")
	}
	return title{Name: name, Year: row.Get("year"), Line: row.Line}, nil
}

func TestProcessCSV(t *testing.T) {
	env := testutil.NewTestEnv(t)
	path := env.WriteFileString("titles.csv", "\ufeffTitle,Year\nHeat,1995\n\"Crouching Tiger, Hidden Dragon\",2000\n")

	items, err := ProcessCSV(path, parseTitle, ProcessorOptions{})
	require.NoError(t, err)
	assert.Equal(t, []title{
		{Name: "Heat", Year: "1995", Line: 2},
		{Name: "Crouching Tiger, Hidden Dragon", Year: "2000", Line: 3},
	}, items)
}

func TestProcess_ColumnAliasesAndRaggedRows(t *testing.T) {
	input := "name,extra\nSolaris\nStalker,x\n"

	items, err := Process(strings.NewReader(input), parseTitle, ProcessorOptions{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Solaris", items[0].Name)
	assert.Empty(t, items[0].Year)
}

func TestProcess_InvalidRows(t *testing.T) {
	input := "title,year\n,1999\nHeat,1995\n"

	_, err := Process(strings.NewReader(input), parseTitle, ProcessorOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	items, err := Process(strings.NewReader(input), parseTitle, ProcessorOptions{SkipInvalid: true})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Heat", items[0].Name)
}

func TestProcessCSV_Errors(t *testing.T) {
	env := testutil.NewTestEnv(t)

	_, err := ProcessCSV(env.Path("missing.csv"), parseTitle, ProcessorOptions{})
	require.Error(t, err)

	empty := env.WriteFileString("empty.csv", "")
	_, err = ProcessCSV(empty, parseTitle, ProcessorOptions{})
	assert.EqualError(t, err, "CSV file is empty")
}
