package annotate

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/eventmaster"
	"github.com/agentstation/eventmaster/internal/cmd/application"
	"github.com/agentstation/eventmaster/internal/testhelper"
	"github.com/agentstation/eventmaster/pkg/errors"
	"github.com/agentstation/eventmaster/pkg/view"
)

func setup(t *testing.T) (eventmaster.Board, *application.Mock) {
	t.Helper()
	board, err := eventmaster.New(
		eventmaster.WithTextReader(testhelper.PlainReader{}),
		eventmaster.WithExtractor(testhelper.Extractor(testhelper.DayFixture())),
	)
	require.NoError(t, err)
	seating, media := testhelper.Documents()
	_, err = board.Merge(context.Background(), seating, media)
	require.NoError(t, err)

	return board, &application.Mock{
		BoardFunc:        func(...eventmaster.Option) (eventmaster.Board, error) { return board, nil },
		OutputFormatFunc: func() string { return "json" },
	}
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (view.Item, error) {
	t.Helper()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		return view.Item{}, err
	}
	var item view.Item
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &item))
	return item, nil
}

func TestPinCommand(t *testing.T) {
	board, app := setup(t)

	item, err := run(t, NewPinCommand(app), "evt-1")
	require.NoError(t, err)
	assert.True(t, item.Annotation.Pinned)
	assert.True(t, board.Annotation("evt-1").Pinned)

	item, err = run(t, NewPinCommand(app), "evt-1")
	require.NoError(t, err)
	assert.False(t, item.Annotation.Pinned)
}

func TestDoneCommand(t *testing.T) {
	board, app := setup(t)

	item, err := run(t, NewDoneCommand(app), "evt-0")
	require.NoError(t, err)
	assert.True(t, item.Annotation.Completed)
	assert.True(t, board.Annotation("evt-0").Completed)
}

func TestNoteCommand(t *testing.T) {
	board, app := setup(t)

	item, err := run(t, NewNoteCommand(app), "evt-2", "Wasser", "bereitstellen")
	require.NoError(t, err)
	assert.Equal(t, "Wasser bereitstellen", item.Annotation.Note)

	_, err = run(t, NewNoteCommand(app), "evt-2", "--clear")
	require.NoError(t, err)
	assert.Empty(t, board.Annotation("evt-2").Note)

	_, err = run(t, NewNoteCommand(app), "evt-2")
	assert.Error(t, err)
}

func TestAnnotateUnknownEvent(t *testing.T) {
	_, app := setup(t)

	_, err := run(t, NewPinCommand(app), "evt-9")
	assert.True(t, errors.IsNotFound(err))
}
