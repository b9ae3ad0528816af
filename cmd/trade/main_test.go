package main

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestPositive(t *testing.T) {
	check := positive("ticket")

	assert.NoError(t, check(1))
	assert.NoError(t, check(9001))
	assert.EqualError(t, check(0), "--ticket must be a positive number, got 0")
	assert.EqualError(t, check(-5), "--ticket must be a positive number, got -5")
}

func runFlags(t *testing.T, flag cli.Flag, args ...string) (int64, bool, error) {
	t.Helper()

	var (
		value  int64
		called bool
	)

	cmd := &cli.Command{
		Name:      "test",
		Flags:     []cli.Flag{flag},
		Writer:    io.Discard,
		ErrWriter: io.Discard,
		Action: func(_ context.Context, cmd *cli.Command) error {
			called = true
			value = cmd.Int(flag.Names()[0])

			return nil
		},
	}

	err := cmd.Run(context.Background(), append([]string{"test"}, args...))

	return value, called, err
}

func TestTicketFlag(t *testing.T) {
	value, called, err := runFlags(t, ticketFlag(), "--ticket", "42")
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, int64(42), value)

	_, called, err = runFlags(t, ticketFlag(), "--ticket", "-5")
	assert.Error(t, err)
	assert.False(t, called)
}

func TestLimitFlag(t *testing.T) {
	value, called, err := runFlags(t, limitFlag())
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, int64(50), value)

	_, called, err = runFlags(t, limitFlag(), "--limit", "-1")
	assert.Error(t, err)
	assert.False(t, called)
}
