package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ylikuutio/ylikuutio/internal/core/events/bus"
	"github.com/ylikuutio/ylikuutio/internal/core/factory"
	"github.com/ylikuutio/ylikuutio/internal/core/world"
)

type fakeRunner struct {
	paths []string
}

func (r *fakeRunner) DoFile(path string) error {
	r.paths = append(r.paths, path)
	return nil
}

func newConsole(t *testing.T, opts ...Option) (*Console, *factory.Factory, *bytes.Buffer) {
	t.Helper()
	b := bus.New()
	b.AddObserver(bus.NewLogObserver(nil))
	f := factory.New(world.NewUniverse(), b, nil)
	out := &bytes.Buffer{}
	return New(f, out, opts...), f, out
}

func TestCreateAndInspect(t *testing.T) {
	c, f, out := newConsole(t)

	require.NoError(t, c.Exec("create scene helsinki"))
	require.NoError(t, c.Exec(`create material "green grass" helsinki`))
	require.NoError(t, c.Exec(`create object tree "green grass"`))
	assert.Contains(t, out.String(), `created scene "helsinki" (child 0)`)
	assert.NotNil(t, f.Universe().Lookup("green grass"))

	out.Reset()
	require.NoError(t, c.Exec("info helsinki"))
	assert.Contains(t, out.String(), `scene "helsinki"`)
	assert.Contains(t, out.String(), "parent:      universe")
	assert.Contains(t, out.String(), "descendants: 2")

	out.Reset()
	require.NoError(t, c.Exec("ls helsinki"))
	assert.Equal(t, "   0  material  green grass\n", out.String())

	out.Reset()
	require.NoError(t, c.Exec("ls"))
	assert.Equal(t, "green grass\nhelsinki\nscenes\ntree\n", out.String())

	out.Reset()
	require.NoError(t, c.Exec("info universe"))
	assert.Contains(t, out.String(), "children:    1")

	out.Reset()
	require.NoError(t, c.Exec("stats"))
	assert.Contains(t, out.String(), "entities: 3")
	assert.Contains(t, out.String(), "instances 1")
	assert.Contains(t, out.String(), "events: published 3  handlers 0  errors 0")
}

func TestMoveAndDelete(t *testing.T) {
	c, f, _ := newConsole(t)
	for _, line := range []string{
		"create scene a",
		"create scene b",
		"create camera eye a",
		"move eye b",
		"delete a",
	} {
		require.NoError(t, c.Exec(line), line)
	}
	u := f.Universe()
	assert.Nil(t, u.Lookup("a"))
	assert.Equal(t, 1, u.Scene("b").NumberOfChildren())
}

func TestCompletion(t *testing.T) {
	c, _, out := newConsole(t)
	require.NoError(t, c.Exec("create scene ab"))
	require.NoError(t, c.Exec("create scene ac"))
	require.NoError(t, c.Exec("create scene helsinki"))

	out.Reset()
	require.NoError(t, c.Exec("complete a"))
	assert.Equal(t, "a\n  ab  ac\n", out.String())

	out.Reset()
	require.NoError(t, c.Exec("complete hel"))
	assert.Equal(t, "helsinki\n", out.String())

	out.Reset()
	require.NoError(t, c.Exec("complete helsinkk"))
	assert.Equal(t, "no match for \"helsinkk\", did you mean \"helsinki\"?\n", out.String())

	out.Reset()
	require.NoError(t, c.Exec("complete zzz"))
	assert.Equal(t, "no match for \"zzz\"\n", out.String())
}

func TestErrorsAndSuggestions(t *testing.T) {
	c, _, _ := newConsole(t)
	require.NoError(t, c.Exec("create scene helsinki"))

	err := c.Exec("crate scene turku")
	assert.ErrorIs(t, err, ErrUnknownCommand)
	assert.Contains(t, err.Error(), `did you mean "create"?`)

	err = c.Exec("delete helsinkk")
	assert.ErrorIs(t, err, factory.ErrNotFound)
	assert.Contains(t, err.Error(), `did you mean "helsinki"?`)

	err = c.Exec("info nowhere-at-all")
	assert.ErrorIs(t, err, factory.ErrNotFound)

	assert.ErrorIs(t, c.Exec("move helsinki"), ErrUsage)
	assert.ErrorIs(t, c.Exec("stats now"), ErrUsage)
	assert.Error(t, c.Exec(`create scene "unterminated`))
	assert.Error(t, c.Exec("run script.lua"), "no script runner configured")

	assert.NoError(t, c.Exec("   "))
	assert.NoError(t, c.Exec("# comment"))
}

func TestRunScript(t *testing.T) {
	runner := &fakeRunner{}
	c, _, _ := newConsole(t, WithScripts(runner))
	require.NoError(t, c.Exec(`run "scripts/my world.lua"`))
	assert.Equal(t, []string{"scripts/my world.lua"}, runner.paths)
}

func TestHistoryIsBounded(t *testing.T) {
	c, _, out := newConsole(t, WithHistory(2))
	_ = c.Exec("create scene a")
	_ = c.Exec("bogus")
	_ = c.Exec("ls")
	assert.Equal(t, []string{"bogus", "ls"}, c.History())

	out.Reset()
	require.NoError(t, c.Exec("history"))
	assert.Equal(t, "   1  ls\n   2  history\n", out.String())

	off, _, _ := newConsole(t, WithHistory(0))
	_ = off.Exec("ls")
	assert.Empty(t, off.History())
}

func TestRunLoop(t *testing.T) {
	c, f, out := newConsole(t, WithPrompt("$ "))
	in := strings.NewReader("create scene a\nbogus\nquit\ncreate scene b\n")

	require.NoError(t, c.Run(context.Background(), in))
	assert.NotNil(t, f.Universe().Lookup("a"))
	assert.Nil(t, f.Universe().Lookup("b"), "lines after quit are not read")
	assert.Contains(t, out.String(), "error: unknown command")
	assert.True(t, strings.HasPrefix(out.String(), "$ "))

	require.NoError(t, c.Run(context.Background(), strings.NewReader("")), "EOF ends the loop")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, c.Run(ctx, strings.NewReader("ls\n")), context.Canceled)
}

func TestSuggest(t *testing.T) {
	candidates := []string{"camera", "create", "delete"}
	assert.Equal(t, "create", suggest("creat", candidates))
	assert.Equal(t, "", suggest("xyz", candidates))
	assert.Equal(t, "", suggest("", candidates))
	assert.Equal(t, "", suggest("create", []string{"create"}))
}
