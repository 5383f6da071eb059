package todo

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/todos/internal/store"
	"github.com/roach88/todos/internal/testutil"
)

func TestNew_EmptySlot(t *testing.T) {
	s := newTestStore(t, newMemSlot())

	assert.Empty(t, s.Items())
	assert.Equal(t, FilterAll, s.Filter())
	assert.Equal(t, Stats{}, s.Stats())
}

func TestNew_NilSlotIsMemoryOnly(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	_, ok := s.Add(ctx, "Buy milk")
	require.True(t, ok)
	assert.NoError(t, s.Commit(ctx))
	assert.Equal(t, 1, s.Stats().Total)
}

func TestAdd_PrependsPendingItem(t *testing.T) {
	slot := newMemSlot()
	s := newTestStore(t, slot)
	ctx := context.Background()

	first, ok := s.Add(ctx, "Buy milk")
	require.True(t, ok)
	second, ok := s.Add(ctx, "Call mom")
	require.True(t, ok)

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, second, items[0])
	assert.Equal(t, first, items[1])

	assert.Equal(t, "todo-1", first.ID)
	assert.Equal(t, "todo-2", second.ID)
	assert.False(t, second.Done)
	assert.Equal(t, testutil.Epoch.UnixMilli()+1, first.CreatedAt)
	assert.Equal(t, testutil.Epoch.UnixMilli()+2, second.CreatedAt)
}

func TestAdd_IncreasesTotalByOne(t *testing.T) {
	s := newTestStore(t, newMemSlot())
	ctx := context.Background()

	for i, text := range []string{"a", "b", "  c  ", "ünïcode"} {
		before := s.Stats().Total
		item, ok := s.Add(ctx, text)
		require.True(t, ok, "add %d", i)
		assert.Equal(t, before+1, s.Stats().Total)
		assert.Equal(t, item, s.ItemsFor(FilterAll)[0])
		assert.False(t, s.ItemsFor(FilterAll)[0].Done)
	}
}

func TestAdd_TrimsText(t *testing.T) {
	s := newTestStore(t, newMemSlot())

	item, ok := s.Add(context.Background(), "  \tBuy milk \n")
	require.True(t, ok)
	assert.Equal(t, "Buy milk", item.Text)
}

func TestAdd_NormalizesToNFC(t *testing.T) {
	s := newTestStore(t, newMemSlot())

	// "e" followed by a combining acute accent.
	item, ok := s.Add(context.Background(), "cafe\u0301")
	require.True(t, ok)
	assert.Equal(t, "caf\u00e9", item.Text)
}

func TestAdd_BlankIsNoOp(t *testing.T) {
	slot := newMemSlot()
	s := newTestStore(t, slot)
	ctx := context.Background()

	for _, text := range []string{"", "   ", "\t\n"} {
		item, ok := s.Add(ctx, text)
		assert.False(t, ok)
		assert.Equal(t, Item{}, item)
	}

	assert.Empty(t, s.Items())
	assert.Equal(t, 0, slot.putCount(), "blank add must not write")
}

func TestAdd_RetriesDuplicateID(t *testing.T) {
	ids := &scriptedIDs{ids: []string{"x", "x", "y"}}
	s := New(context.Background(), newMemSlot(),
		WithLogger(discardLogger()),
		WithIDGenerator(ids),
	)
	ctx := context.Background()

	a, ok := s.Add(ctx, "first")
	require.True(t, ok)
	b, ok := s.Add(ctx, "second")
	require.True(t, ok)

	assert.Equal(t, "x", a.ID)
	assert.Equal(t, "y", b.ID)
}

func TestAdd_GivesUpOnConstantIDs(t *testing.T) {
	ids := &scriptedIDs{ids: []string{"same"}, repeatLast: true}
	s := New(context.Background(), newMemSlot(),
		WithLogger(discardLogger()),
		WithIDGenerator(ids),
	)
	ctx := context.Background()

	_, ok := s.Add(ctx, "first")
	require.True(t, ok)
	_, ok = s.Add(ctx, "second")
	assert.False(t, ok)
	assert.Equal(t, 1, s.Stats().Total)
}

func TestToggle_TwiceRestores(t *testing.T) {
	s := newTestStore(t, newMemSlot())
	ctx := context.Background()

	s.Add(ctx, "a")
	target, _ := s.Add(ctx, "b")
	s.Add(ctx, "c")
	before := s.Items()

	require.True(t, s.Toggle(ctx, target.ID))
	toggled, ok := s.Find(target.ID)
	require.True(t, ok)
	assert.True(t, toggled.Done)
	assert.Equal(t, target.Text, toggled.Text)
	assert.Equal(t, target.CreatedAt, toggled.CreatedAt)
	assert.Equal(t, target.ID, s.Items()[1].ID, "position unchanged")

	require.True(t, s.Toggle(ctx, target.ID))
	assert.Equal(t, before, s.Items())
}

func TestToggle_UnknownIDIsNoOp(t *testing.T) {
	slot := newMemSlot()
	s := newTestStore(t, slot)
	ctx := context.Background()

	s.Add(ctx, "a")
	before := s.Items()
	puts := slot.putCount()

	assert.False(t, s.Toggle(ctx, "missing"))
	assert.Equal(t, before, s.Items())
	assert.Equal(t, puts, slot.putCount())
}

func TestRemove_KeepsOrder(t *testing.T) {
	s := newTestStore(t, newMemSlot())
	ctx := context.Background()

	s.Add(ctx, "a")
	b, _ := s.Add(ctx, "b")
	s.Add(ctx, "c")

	require.True(t, s.Remove(ctx, b.ID))
	assert.Equal(t, []string{"c", "a"}, texts(s.Items()))

	_, found := s.Find(b.ID)
	assert.False(t, found)
}

func TestRemove_UnknownIDIsNoOp(t *testing.T) {
	slot := newMemSlot()
	s := newTestStore(t, slot)
	ctx := context.Background()

	s.Add(ctx, "a")
	before := s.Items()
	puts := slot.putCount()

	assert.False(t, s.Remove(ctx, "missing"))
	assert.False(t, s.Remove(ctx, "missing"))
	assert.Equal(t, before, s.Items())
	assert.Equal(t, puts, slot.putCount())
}

func TestClearCompleted(t *testing.T) {
	slot := newMemSlot()
	s := newTestStore(t, slot)
	ctx := context.Background()

	a, _ := s.Add(ctx, "a")
	s.Add(ctx, "b")
	c, _ := s.Add(ctx, "c")
	s.Add(ctx, "d")
	s.Toggle(ctx, a.ID)
	s.Toggle(ctx, c.ID)

	assert.Equal(t, 2, s.ClearCompleted(ctx))
	assert.Equal(t, 0, s.Stats().Done)
	assert.Equal(t, []string{"d", "b"}, texts(s.Items()))

	puts := slot.putCount()
	assert.Equal(t, 0, s.ClearCompleted(ctx))
	assert.Equal(t, puts, slot.putCount(), "no write when nothing was done")
}

func TestSetFilter(t *testing.T) {
	slot := newMemSlot()
	s := newTestStore(t, slot)

	for _, f := range Filters {
		require.NoError(t, s.SetFilter(f))
		assert.Equal(t, f, s.Filter())
	}
	assert.Equal(t, 0, slot.putCount(), "filter is never persisted")
}

func TestSetFilter_InvalidRejected(t *testing.T) {
	s := newTestStore(t, newMemSlot())
	require.NoError(t, s.SetFilter(FilterDone))

	err := s.SetFilter(Filter("archived"))
	require.ErrorIs(t, err, ErrInvalidFilter)
	assert.Contains(t, err.Error(), "archived")
	assert.Equal(t, FilterDone, s.Filter())
}

func TestVisibleItems_FollowsFilter(t *testing.T) {
	s := newTestStore(t, newMemSlot())
	ctx := context.Background()

	// Build [{done:false}, {done:true}, {done:false}] in list order.
	first, _ := s.Add(ctx, "third")
	second, _ := s.Add(ctx, "second")
	third, _ := s.Add(ctx, "first")
	s.Toggle(ctx, second.ID)

	require.NoError(t, s.SetFilter(FilterActive))
	active := s.VisibleItems()
	require.Len(t, active, 2)
	assert.Equal(t, third.ID, active[0].ID)
	assert.Equal(t, first.ID, active[1].ID)

	require.NoError(t, s.SetFilter(FilterDone))
	done := s.VisibleItems()
	require.Len(t, done, 1)
	assert.Equal(t, second.ID, done[0].ID)

	require.NoError(t, s.SetFilter(FilterAll))
	assert.Equal(t, []string{"first", "second", "third"}, texts(s.VisibleItems()))
}

func TestItemsFor_InvalidFilterEmpty(t *testing.T) {
	s := newTestStore(t, newMemSlot())
	s.Add(context.Background(), "a")

	items := s.ItemsFor(Filter("bogus"))
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestItems_ReturnsCopy(t *testing.T) {
	s := newTestStore(t, newMemSlot())
	s.Add(context.Background(), "a")

	items := s.Items()
	items[0].Text = "mutated"
	items[0].Done = true

	assert.Equal(t, "a", s.Items()[0].Text)
	assert.False(t, s.Items()[0].Done)
}

func TestScenario_BuyMilkCallMom(t *testing.T) {
	s := newTestStore(t, newMemSlot())
	ctx := context.Background()

	milk, _ := s.Add(ctx, "Buy milk")
	s.Add(ctx, "Call mom")
	assert.Equal(t, []string{"Call mom", "Buy milk"}, texts(s.Items()))

	s.Toggle(ctx, milk.ID)
	assert.Equal(t, Stats{Total: 2, Pending: 1, Done: 1}, s.Stats())

	s.ClearCompleted(ctx)
	assert.Equal(t, []string{"Call mom"}, texts(s.Items()))
}

func TestPersist_EveryMutationWritesFullSequence(t *testing.T) {
	slot := newMemSlot()
	s := newTestStore(t, slot)
	ctx := context.Background()

	a, _ := s.Add(ctx, "a")
	assert.Equal(t, 1, slot.putCount())
	s.Add(ctx, "b")
	assert.Equal(t, 2, slot.putCount())
	s.Toggle(ctx, a.ID)
	assert.Equal(t, 3, slot.putCount())
	s.ClearCompleted(ctx)
	assert.Equal(t, 4, slot.putCount())
	s.Remove(ctx, s.Items()[0].ID)
	assert.Equal(t, 5, slot.putCount())

	assert.JSONEq(t, `[]`, string(slot.raw(DefaultKey)))
}

func TestPersist_WriteFailureSwallowed(t *testing.T) {
	slot := newMemSlot()
	slot.failPut = errQuota
	s := newTestStore(t, slot)
	ctx := context.Background()

	item, ok := s.Add(ctx, "Buy milk")
	require.True(t, ok, "add still reports success")
	assert.True(t, s.Toggle(ctx, item.ID))
	assert.Equal(t, Stats{Total: 1, Pending: 0, Done: 1}, s.Stats())

	err := s.Commit(ctx)
	require.ErrorIs(t, err, errQuota)
	assert.Nil(t, slot.raw(DefaultKey))
}

func TestPersist_CustomKey(t *testing.T) {
	slot := newMemSlot()
	s := New(context.Background(), slot,
		WithLogger(discardLogger()),
		WithKey("other"),
	)

	s.Add(context.Background(), "a")
	assert.NotNil(t, slot.raw("other"))
	assert.Nil(t, slot.raw(DefaultKey))
}

func TestHydrate_RoundTrip(t *testing.T) {
	slot := newMemSlot()
	s := newTestStore(t, slot)
	ctx := context.Background()

	s.Add(ctx, "a")
	b, _ := s.Add(ctx, "b")
	s.Add(ctx, "c")
	s.Toggle(ctx, b.ID)

	reloaded := newTestStore(t, slot)
	assert.Equal(t, s.Items(), reloaded.Items())
	assert.Equal(t, FilterAll, reloaded.Filter(), "filter is not restored")
}

func TestHydrate_CorruptPayloadYieldsEmpty(t *testing.T) {
	payloads := map[string]string{
		"not json":     `{{{`,
		"object":       `{"id":"a"}`,
		"null":         `null`,
		"wrong types":  `[{"id":"a","text":"x","done":"no","createdAt":1}]`,
		"missing id":   `[{"text":"x","done":false,"createdAt":1}]`,
		"float time":   `[{"id":"a","text":"x","done":false,"createdAt":1.5}]`,
		"empty string": ``,
	}

	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			slot := newMemSlot()
			slot.values[DefaultKey] = []byte(payload)

			s := newTestStore(t, slot)
			assert.Empty(t, s.Items())
		})
	}
}

func TestHydrate_ReadFailureYieldsEmpty(t *testing.T) {
	slot := newMemSlot()
	slot.values[DefaultKey] = []byte(`[{"id":"a","text":"x","done":false,"createdAt":1}]`)
	slot.failGet = errQuota

	s := newTestStore(t, slot)
	assert.Empty(t, s.Items())
}

func TestHydrate_SQLiteSlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.db")
	ctx := context.Background()

	st, err := store.Open(path)
	require.NoError(t, err)

	s := newTestStore(t, st)
	s.Add(ctx, "Buy milk")
	s.Add(ctx, "Call mom")
	want := s.Items()
	require.NoError(t, st.Close())

	st2, err := store.Open(path)
	require.NoError(t, err)
	defer st2.Close()

	reloaded := newTestStore(t, st2)
	assert.Equal(t, want, reloaded.Items())
}

// scriptedIDs returns ids from a fixed list.
type scriptedIDs struct {
	ids        []string
	idx        int
	repeatLast bool
}

func (g *scriptedIDs) Generate() string {
	if g.idx >= len(g.ids) {
		if g.repeatLast && len(g.ids) > 0 {
			return g.ids[len(g.ids)-1]
		}
		return ""
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}
