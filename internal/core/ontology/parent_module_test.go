package ontology

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ylikuutio/ylikuutio/internal/core/memory"
	"github.com/ylikuutio/ylikuutio/internal/core/observability/log"
)

func TestTwoChildrenScenario(t *testing.T) {
	names := NewRegistry()
	owner := newNode("owner")
	p := NewParentModule(owner, WithLocalNames(names))

	a := newLeaf("")
	b := newLeaf("foo")

	require.True(t, p.BindChild(a))
	require.True(t, p.BindChild(b))
	assert.Equal(t, 0, a.ChildID())
	assert.Equal(t, 1, b.ChildID())
	assert.Equal(t, 2, p.NumberOfChildren())
	assert.Same(t, b, names.GetEntity("foo"))

	p.UnbindChild(a.ChildID())
	assert.Equal(t, 1, p.NumberOfChildren())
	assert.Nil(t, p.Get(0))
	assert.Equal(t, 2, p.Len(), "slot 0 is not trailing")
	assert.Equal(t, NoChildID, a.ChildID())

	c := newLeaf("")
	require.True(t, p.BindChild(c))
	assert.Equal(t, 0, c.ChildID())
}

func TestBindChildPreconditions(t *testing.T) {
	orphan := NewParentModule(nil)
	l := newLeaf("x")
	assert.False(t, orphan.BindChild(l))
	assert.Equal(t, NoChildID, l.ChildID())
	assert.Nil(t, l.Parent())

	p := NewParentModule(newNode("owner"))
	assert.False(t, p.BindChild(nil))
	assert.Equal(t, 0, p.NumberOfChildren())

	require.True(t, p.BindChild(l))
	other := NewParentModule(newNode("other"))
	assert.False(t, other.BindChild(l), "a bound child must be rebound, not bound twice")
	assert.Equal(t, 0, other.NumberOfChildren())
}

func TestUnbindChildIgnoresInvalidIDs(t *testing.T) {
	p := NewParentModule(newNode("owner"))
	l := newLeaf("")
	require.True(t, p.BindChild(l))

	p.UnbindChild(NoChildID)
	p.UnbindChild(7)
	assert.Equal(t, 1, p.NumberOfChildren())

	p.UnbindChild(0)
	p.UnbindChild(0)
	assert.Equal(t, 0, p.NumberOfChildren())
	assert.Equal(t, []int{0}, p.FreeIDs())
}

func TestFreeIDsAreReusedFirstInFirstOut(t *testing.T) {
	p := NewParentModule(newNode("owner"))
	leaves := make([]*leaf, 5)
	for i := range leaves {
		leaves[i] = newLeaf("")
		require.True(t, p.BindChild(leaves[i]))
	}

	p.UnbindChild(3)
	p.UnbindChild(1)
	p.UnbindChild(2)
	assert.Equal(t, []int{3, 1, 2}, p.FreeIDs())

	x, y, z := newLeaf(""), newLeaf(""), newLeaf("")
	require.True(t, p.BindChild(x))
	require.True(t, p.BindChild(y))
	require.True(t, p.BindChild(z))
	assert.Equal(t, 3, x.ChildID())
	assert.Equal(t, 1, y.ChildID())
	assert.Equal(t, 2, z.ChildID())
}

func TestFreeIDsOutsideSliceAreSkipped(t *testing.T) {
	p := NewParentModule(newNode("owner"))
	a, b, c := newLeaf(""), newLeaf(""), newLeaf("")
	require.True(t, p.BindChild(a))
	require.True(t, p.BindChild(b))
	require.True(t, p.BindChild(c))

	p.UnbindChild(1)
	p.UnbindChild(2) // tail: slots 2 and 1 are trimmed
	assert.Equal(t, 1, p.Len())
	assert.Equal(t, []int{1, 2}, p.FreeIDs())

	d := newLeaf("")
	require.True(t, p.BindChild(d))
	assert.Equal(t, 1, d.ChildID())
	assert.Empty(t, p.FreeIDs(), "stale ids are dropped while searching")

	ok, reason := checkInvariants(p)
	assert.True(t, ok, reason)
}

func TestShrinkKeepsHighestOccupiedSlot(t *testing.T) {
	p := NewParentModule(newNode("owner"))
	leaves := make([]*leaf, 4)
	for i := range leaves {
		leaves[i] = newLeaf("")
		require.True(t, p.BindChild(leaves[i]))
	}

	p.UnbindChild(0)
	assert.Equal(t, 4, p.Len())
	p.UnbindChild(2)
	assert.Equal(t, 4, p.Len())
	p.UnbindChild(3)
	assert.Equal(t, 2, p.Len(), "slots 3 and 2 are both gone")
	p.UnbindChild(1)
	assert.Equal(t, 0, p.Len())
}

func TestIDsStayStableUnderRandomChurn(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := NewParentModule(newNode("owner"))
	bound := map[*leaf]int{}

	for step := 0; step < 2000; step++ {
		if len(bound) == 0 || rng.Intn(3) > 0 {
			l := newLeaf("")
			require.True(t, p.BindChild(l))
			bound[l] = l.ChildID()
		} else {
			for l := range bound {
				p.UnbindChild(l.ChildID())
				delete(bound, l)
				break
			}
		}

		for l, id := range bound {
			require.Equal(t, id, l.ChildID(), "step %d", step)
			require.Same(t, l, p.Get(id))
		}
		ok, reason := checkInvariants(p)
		require.True(t, ok, "step %d: %s", step, reason)
	}
}

func TestDuplicateSiblingNames(t *testing.T) {
	names := NewRegistry()
	p := NewParentModule(newNode("owner"), WithLocalNames(names))
	first, second := newLeaf("twin"), newLeaf("twin")

	require.True(t, p.BindChild(first))
	require.True(t, p.BindChild(second))
	assert.Same(t, first, names.GetEntity("twin"))

	p.UnbindChild(second.ChildID())
	assert.Same(t, first, names.GetEntity("twin"), "unbinding the unnamed twin keeps the name")

	p.UnbindChild(first.ChildID())
	assert.False(t, names.IsName("twin"))
}

func TestNumberOfDescendants(t *testing.T) {
	root := newNode("root")
	mid := newNode("mid")
	require.True(t, root.children.BindChild(mid))
	require.True(t, root.children.BindChild(newLeaf("")))
	require.True(t, mid.children.BindChild(newLeaf("")))
	require.True(t, mid.children.BindChild(newLeaf("")))

	assert.Equal(t, 2, root.NumberOfChildren())
	assert.Equal(t, 4, root.NumberOfDescendants())
	assert.Equal(t, 2, mid.NumberOfDescendants())
	assert.Same(t, root, mid.Parent())
}

func TestHandlesDetectRecycledIDs(t *testing.T) {
	p := NewParentModule(newNode("owner"))
	a := newLeaf("a")
	require.True(t, p.BindChild(a))
	require.True(t, p.BindChild(newLeaf("pad")))

	h, ok := p.Handle(a.ChildID())
	require.True(t, ok)
	assert.Same(t, a, p.Resolve(h))

	p.UnbindChild(a.ChildID())
	b := newLeaf("b")
	require.True(t, p.BindChild(b))
	require.Equal(t, h.ID, b.ChildID())

	assert.Nil(t, p.Resolve(h))
	_, ok = p.Handle(5)
	assert.False(t, ok)
}

func TestDestroyIsDepthFirst(t *testing.T) {
	allocator := memory.NewMemoryAllocator[leaf, *leaf]("leaf", 4, nil)
	root := newNode("root")
	mid := newNode("mid")
	require.True(t, root.children.BindChild(mid))

	heapLeaf := newLeaf("heap")
	require.True(t, mid.children.BindChild(heapLeaf))
	slabLeaf := allocator.Build(func(l *leaf) { l.SetLocalName("slab") })
	require.True(t, mid.children.BindChild(slabLeaf))
	require.Equal(t, 1, allocator.NumberOfInstances())

	root.Destroy()

	assert.Equal(t, 1, mid.destroyed)
	assert.Equal(t, 0, root.NumberOfChildren())
	assert.Equal(t, 0, mid.NumberOfChildren())
	assert.Equal(t, 1, heapLeaf.released)
	assert.False(t, heapLeaf.IsAlive())
	assert.Equal(t, NoChildID, mid.ChildID())
	assert.Equal(t, 0, allocator.NumberOfInstances())
	assert.True(t, root.children.IsDestroyed())
	assert.False(t, root.children.BindChild(newLeaf("late")))
}

func TestDestroyLogsLeftoverChildren(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	p := NewParentModule(newNode("owner"), WithLogger(log.NewWithCore(core)))
	require.True(t, p.BindChild(newLeaf("")))

	p.numberOfChildren++ // simulate a leak the ledger cannot account for
	assert.NotPanics(t, p.Destroy)

	entries := logs.FilterMessage("children left after teardown").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].ContextMap()["children"])
}

func TestDestroyWithoutLeftoversLogsNothing(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	p := NewParentModule(newNode("owner"), WithLogger(log.NewWithCore(core)))
	for i := 0; i < 3; i++ {
		require.True(t, p.BindChild(newLeaf("")))
	}
	p.Destroy()
	assert.Equal(t, 0, logs.Len())
}
