package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/junglebet-games/viptransfer/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, in string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetIn(strings.NewReader(in))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestStepsCommand(t *testing.T) {
	out, err := execute(t, "", "steps", "--platform", "stake.com", "--bonus")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "1. "+wizard.StepWelcome.Title(), lines[0])
	assert.Equal(t, "3. "+wizard.StepStakeVerification.Title(), lines[2])
	assert.Equal(t, "8. "+wizard.StepReceiptReview.Title(), lines[7])
}

func TestStepsCommandDefault(t *testing.T) {
	out, err := execute(t, "", "steps")
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(out, "\n"))
}

func TestStepsCommandUnknownPlatform(t *testing.T) {
	_, err := execute(t, "", "steps", "--platform", "roobet")
	require.ErrorIs(t, err, wizard.ErrPlatform)
}

func TestRunCommandQuit(t *testing.T) {
	out, err := execute(t, "ana\nana@example.com\ny\nq\n", "run", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "Step 1 of 4: Welcome & Your Details")
}
