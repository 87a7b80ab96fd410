package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const inputCSV = "incident_date,region_code,city,latitude,longitude,school_name,number_killed,number_wounded\n" +
	"2021-03-01,OH,Columbus,39.96,-83.0,East High,0,1\n" +
	"2022-05-24,TX,Uvalde,29.21,-99.79,Robb Elementary,21,17\n"

type failingCloseFile struct {
	bytes.Buffer
}

func (f *failingCloseFile) Close() error {
	return errors.New("no space left on device")
}

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(io.Discard)
	return rootCmd.ExecuteContext(context.Background())
}

func TestRunExport(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.csv")
	require.NoError(t, os.WriteFile(input, []byte(inputCSV), 0o600))

	t.Run("Writes file", func(t *testing.T) {
		output := filepath.Join(dir, "fatal.csv")

		err := runCLI(t, "--input", input, "--log-level", "error", "--format", "csv", "-o", output)

		require.NoError(t, err)
		data, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Contains(t, string(data), "Robb Elementary")
		assert.Contains(t, string(data), "East High")
	})

	t.Run("Close error fails the export", func(t *testing.T) {
		original := createFile
		defer func() { createFile = original }()
		out := &failingCloseFile{}
		createFile = func(string) (io.WriteCloser, error) { return out, nil }

		err := runCLI(t, "--input", input, "--log-level", "error", "--format", "csv", "-o", filepath.Join(dir, "full.csv"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "close output file")
		assert.Contains(t, out.String(), "East High")
	})

	t.Run("Unsupported format", func(t *testing.T) {
		err := runCLI(t, "--input", input, "--log-level", "error", "--format", "json", "-o", filepath.Join(dir, "out.json"))

		assert.EqualError(t, err, `unsupported format "json"`)
	})
}
