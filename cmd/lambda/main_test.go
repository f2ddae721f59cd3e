package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseArgs_IntOrZero(t *testing.T) {
	assert.Equal(t, []int64{1, 0, 3}, parseArgs([]string{"1", "notanumber", "3"}))
	assert.Equal(t, []int64{}, parseArgs(nil))
}

func TestRun_SumsArgs(t *testing.T) {
	code := run([]string{"2", "3", "4"})
	assert.Equal(t, 9, code)
}

func TestRun_NoArgsSumsToZero(t *testing.T) {
	code := run(nil)
	assert.Equal(t, 0, code)
}

func TestRun_WrapsModulo256(t *testing.T) {
	code := run([]string{"200", "100"})
	assert.Equal(t, 44, code) // 300 % 256
}
