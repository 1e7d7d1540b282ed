package main

import (
	"io/ioutil"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevels(t *testing.T) {
	want := []uint16{5, 7, 12, 20, 33, 55, 91, 150, 247, 408, 672, 1109, 1828, 3014, 4969, 8192}
	require.Equal(t, want, newTable().Levels)
}

func TestGeneratedFileIsUpToDate(t *testing.T) {
	var out strings.Builder
	require.NoError(t, generate(&out))

	committed, err := ioutil.ReadFile("../pkg/psg/volume.gen.go")
	require.NoError(t, err)
	require.Equal(t, string(committed), out.String(), `run "go generate ./..." to update`)
}
