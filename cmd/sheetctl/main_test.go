package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"smartsheetsvc/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFixture(t *testing.T, raw []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sheet.json")
	require.NoError(t, os.WriteFile(path, raw, 0o644))
	return path
}

func TestParseCmd(t *testing.T) {
	path := writeFixture(t, testkit.PerfusionsSheet().Build())

	stdout, _, err := run(t, "parse", path, "--schema", "perfusions", "--strict")
	require.NoError(t, err)

	var recs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &recs))
	require.Len(t, recs, 2)
	assert.Equal(t, "2023-10-02", recs[0]["date"])
}

func TestParseCmd_LenientWarns(t *testing.T) {
	raw := testkit.NewSheetBuilder(testkit.ProtocolsSheetID, "Protocols").
		WithColumns(testkit.ProtocolsColumns...).
		AddRow("Specimen Procedures", "Delipidation", "Legacy row", "doi/2", "v1", nil).
		Build()
	path := writeFixture(t, raw)

	stdout, stderr, err := run(t, "parse", path, "--schema", "protocols")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"Version": "v1"`)
	assert.Contains(t, stderr, "warning: row 1")

	_, _, err = run(t, "parse", path, "--schema", "protocols", "--strict")
	require.Error(t, err)
}

func TestParseCmd_UnknownSchema(t *testing.T) {
	path := writeFixture(t, testkit.FundingSheet().Build())
	_, _, err := run(t, "parse", path, "--schema", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown schema")
}

func TestFetchAndProjectNamesCmd(t *testing.T) {
	sheets := map[string][]byte{
		fmt.Sprintf("/sheets/%d", testkit.FundingSheetID):    testkit.FundingSheet().Build(),
		fmt.Sprintf("/sheets/%d", testkit.PerfusionsSheetID): testkit.PerfusionsSheet().Build(),
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := sheets[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"errorCode":1006,"message":"Not Found"}`))
			return
		}
		_, _ = w.Write(raw)
	}))
	defer server.Close()

	t.Setenv("SMARTSHEET_ACCESS_TOKEN", "tok")
	t.Setenv("SMARTSHEET_BASE_URL", server.URL)
	t.Setenv("SMARTSHEET_FUNDING_ID", fmt.Sprint(testkit.FundingSheetID))
	t.Setenv("SMARTSHEET_PROTOCOLS_ID", fmt.Sprint(testkit.ProtocolsSheetID))
	t.Setenv("SMARTSHEET_PERFUSIONS_ID", fmt.Sprint(testkit.PerfusionsSheetID))
	t.Setenv("LOG_LEVEL", "ERROR")

	stdout, _, err := run(t, "fetch", "perfusions", "--subject-id", "700001")
	require.NoError(t, err)
	var recs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &recs))
	require.Len(t, recs, 1)

	stdout, _, err = run(t, "project-names")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Len(t, lines, 5)

	xlsx := filepath.Join(t.TempDir(), "funding.xlsx")
	stdout, _, err = run(t, "fetch", "funding", "--xlsx", xlsx)
	require.NoError(t, err)
	assert.Contains(t, stdout, "wrote 9 funding records")
	assert.FileExists(t, xlsx)

	_, _, err = run(t, "fetch", "protocols")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Not Found")
}

func TestCacheCmd(t *testing.T) {
	t.Setenv("CACHE_DATABASE_URL", "")
	url := "sqlite://" + filepath.Join(t.TempDir(), "cache.db")

	stdout, _, err := run(t, "cache", "migrate", "--database-url", url)
	require.NoError(t, err)
	assert.Contains(t, stdout, "up to date")

	stdout, _, err = run(t, "cache", "purge", "--database-url", url)
	require.NoError(t, err)
	assert.Contains(t, stdout, "purged 0 expired entries")

	_, _, err = run(t, "cache", "purge")
	require.Error(t, err)
}
