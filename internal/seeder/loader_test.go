package seeder

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reviews.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_DryRunCountsRows(t *testing.T) {
	path := writeCSV(t, `Id,UserId,Score,Summary,Text
1,A3SGXH7AUHU8GW,5,Good Quality Dog Food,I have bought several of the canned dog food products
2,A1D87F6ZCVE5NK,1,Not as Advertised,Product arrived labeled as jumbo salted peanuts
`)

	loader := NewLoader(nil, logrus.New(), 100, true)

	total, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestLoader_SkipsMalformedRows(t *testing.T) {
	path := writeCSV(t, `Score,Summary,Text,UserId
5,Fine,Tastes great,user-1
nine,Bad,Not a number,user-2
7,Too high,Out of band,user-3
4,Ok,Solid,user-4
`)

	loader := NewLoader(nil, logrus.New(), 100, true)

	total, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestLoader_MissingColumns(t *testing.T) {
	path := writeCSV(t, `Score,Summary
5,Fine
`)

	loader := NewLoader(nil, logrus.New(), 100, true)

	_, err := loader.Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestLoader_MissingFile(t *testing.T) {
	loader := NewLoader(nil, logrus.New(), 100, true)

	_, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
}

func TestMapColumns_CaseInsensitive(t *testing.T) {
	idx, err := mapColumns([]string{"ID", "userid", "SCORE", "summary", "TEXT"})
	require.NoError(t, err)
	assert.Equal(t, 1, idx.userID)
	assert.Equal(t, 2, idx.score)
	assert.Equal(t, 3, idx.summary)
	assert.Equal(t, 4, idx.text)
}
