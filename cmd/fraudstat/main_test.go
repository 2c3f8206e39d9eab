package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gotest.tools/assert"
)

func Test_readValues(t *testing.T) {
	res, err := readValues(strings.NewReader("10, 20,30\n40 50\n\n80,90"))
	assert.NilError(t, err)
	assert.DeepEqual(t, res, []float64{10, 20, 30, 40, 50, 80, 90})

	_, err = readValues(strings.NewReader("10 abc"))
	assert.Assert(t, err != nil)
}

func Test_count(t *testing.T) {
	file := filepath.Join(t.TempDir(), "expenses.txt")
	assert.NilError(t, os.WriteFile(file, []byte("10 20 30 40 50 80 90\n"), 0644))

	var out bytes.Buffer
	assert.NilError(t, count(&out, file, 3, 2))
	assert.Equal(t, out.String(), "2\n")

	out.Reset()
	assert.NilError(t, count(&out, file, 0, 2))
	assert.Equal(t, out.String(), "0\n")

	assert.Assert(t, count(&out, filepath.Join(t.TempDir(), "missing"), 3, 2) != nil)
}

func Test_logWrite(t *testing.T) {
	var out bytes.Buffer
	logWrite(newLogger(&out))(context.Background(), "ALERT: key=%q", "card-1")
	assert.Assert(t, strings.Contains(out.String(), "level=info"), out.String())
	assert.Assert(t, strings.Contains(out.String(), `msg="ALERT: key=\"card-1\""`), out.String())
	assert.Assert(t, strings.Contains(out.String(), "caller=") == false, out.String())
}
