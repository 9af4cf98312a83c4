package main

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mandv/dataset"
	"github.com/arloliu/mandv/errs"
)

func writeCoolingCSV(t *testing.T, dir string) string {
	t.Helper()

	var b strings.Builder
	b.WriteString("timestamp,x,y\n")
	base := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := range 21 {
		x := float64(i)
		y := 10 + 3*math.Max(x-10, 0)
		fmt.Fprintf(&b, "%s,%g,%g\n", base.AddDate(0, 0, i).Format("2006-01-02"), x, y)
	}

	path := filepath.Join(dir, "usage.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))

	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))

	err := cmd.Execute()

	return out.String(), err
}

func TestFitAndInspectReport(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeCoolingCSV(t, dir)
	reportPath := filepath.Join(dir, "report.yaml.zst")

	_, err := execute(t, "fit", csvPath, "--shapes", "2P,3PC", "--encoding", "yaml", "--compression", "zstd", "-o", reportPath)
	require.NoError(t, err)

	out, err := execute(t, "inspect", "--report", "--encoding", "yaml", "--compression", "zstd", reportPath)
	require.NoError(t, err)
	require.Contains(t, out, "Observations: 21")
	require.Contains(t, out, "Best fit:     3PC")
	require.Contains(t, out, "2P")
}

func TestFit_Stdout(t *testing.T) {
	csvPath := writeCoolingCSV(t, t.TempDir())

	out, err := execute(t, "fit", csvPath, "--shapes", "3PC")
	require.NoError(t, err)
	require.Contains(t, out, `"best_fit": "3PC"`)
}

func TestArchiveAndInspect(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeCoolingCSV(t, dir)
	archivePath := filepath.Join(dir, "usage.mandv")

	_, err := execute(t, "archive", csvPath, archivePath, "--compression", "s2")
	require.NoError(t, err)

	data, err := os.ReadFile(archivePath)
	require.NoError(t, err)
	ds, err := dataset.UnmarshalBlob(data)
	require.NoError(t, err)
	require.Equal(t, 21, ds.Len())

	out, err := execute(t, "inspect", archivePath)
	require.NoError(t, err)
	require.Contains(t, out, "Observations: 21")
	require.Contains(t, out, "X range:      0 .. 20")
	require.Contains(t, out, "Period:       2023-06-01 .. 2023-06-21")
}

func TestCommandErrors(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeCoolingCSV(t, dir)

	_, err := execute(t, "fit", csvPath, "--shapes", "6P")
	require.ErrorIs(t, err, errs.ErrUnknownShape)

	_, err = execute(t, "fit", csvPath, "--encoding", "toml")
	require.ErrorIs(t, err, errs.ErrUnknownEncoding)

	_, err = execute(t, "archive", csvPath, filepath.Join(dir, "out"), "--compression", "gzip")
	require.ErrorIs(t, err, errs.ErrUnsupportedCompress)

	_, err = execute(t, "inspect", filepath.Join(dir, "missing.mandv"))
	require.Error(t, err)

	_, err = execute(t, "--log-level", "loud", "inspect", csvPath)
	require.ErrorIs(t, err, errs.ErrInvalidConfiguration)

	_, err = execute(t, "fit")
	require.Error(t, err)
}
