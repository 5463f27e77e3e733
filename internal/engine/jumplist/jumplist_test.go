package jumplist

import (
	"testing"

	"github.com/quarzedit/quarz/internal/engine/buffer"
)

// fakeResolver simulates the buffer registry's liveness and size queries.
type fakeResolver struct {
	lens map[buffer.BufferID]buffer.ByteOffset
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{lens: make(map[buffer.BufferID]buffer.ByteOffset)}
}

func (r *fakeResolver) open(id buffer.BufferID, n buffer.ByteOffset) {
	r.lens[id] = n
}

func (r *fakeResolver) close(id buffer.BufferID) {
	delete(r.lens, id)
}

func (r *fakeResolver) IsLive(id buffer.BufferID) bool {
	_, ok := r.lens[id]
	return ok
}

func (r *fakeResolver) ContentLen(id buffer.BufferID) buffer.ByteOffset {
	return r.lens[id]
}

// fakeNavigator records jumps and tracks the simulated cursor.
type fakeNavigator struct {
	jumps   []Entry
	current Entry
}

func (n *fakeNavigator) JumpTo(e Entry) error {
	n.jumps = append(n.jumps, e)
	n.current = e
	return nil
}

func TestRecordMergesNearbyLocations(t *testing.T) {
	res := newFakeResolver()
	res.open("A", 10000)
	l := New(res, nil)

	l.Record("A", 100)
	l.Record("A", 300) // within DefaultMinDistance of 100

	past := l.PastEntries()
	if len(past) != 1 {
		t.Fatalf("past has %d entries, want 1", len(past))
	}
	if past[0] != (Entry{Buffer: "A", Offset: 300}) {
		t.Errorf("head = %+v, want (A,300)", past[0])
	}
}

func TestRecordSplitsBeyondThreshold(t *testing.T) {
	res := newFakeResolver()
	res.open("A", 10000)
	l := New(res, nil, WithMinDistance(200))

	l.Record("A", 100)
	l.Record("A", 300) // exactly at threshold: |300-100| >= 200

	past := l.PastEntries()
	if len(past) != 2 {
		t.Fatalf("past has %d entries, want 2", len(past))
	}
	if past[0].Offset != 300 || past[1].Offset != 100 {
		t.Errorf("past = %+v, want [(A,300),(A,100)]", past)
	}
}

func TestRecordSplitClearsFuture(t *testing.T) {
	res := newFakeResolver()
	res.open("A", 10000)
	res.open("B", 10000)
	nav := &fakeNavigator{}
	l := New(res, nav, WithMinDistance(50))

	// Build a non-empty future via a backward step.
	l.Record("A", 100)
	l.Record("A", 500)
	nav.current = Entry{Buffer: "A", Offset: 500}
	if _, ok := l.Back(nav.current); !ok {
		t.Fatal("Back should navigate")
	}
	if st := l.Status(); st.Future == 0 {
		t.Fatal("future should be populated after Back")
	}

	// Divergent new motion invalidates the forward path.
	l.Record("B", 100)
	if st := l.Status(); st.Future != 0 {
		t.Errorf("future = %d after divergent record, want 0", st.Future)
	}
}

func TestRecordDifferentBufferAppends(t *testing.T) {
	res := newFakeResolver()
	res.open("A", 10000)
	res.open("B", 10000)
	l := New(res, nil)

	l.Record("A", 100)
	l.Record("B", 100)

	past := l.PastEntries()
	if len(past) != 2 {
		t.Fatalf("past has %d entries, want 2", len(past))
	}
	if past[0].Buffer != "B" || past[1].Buffer != "A" {
		t.Errorf("past = %+v, want [(B,100),(A,100)]", past)
	}
}

func TestRecordCapsPastStack(t *testing.T) {
	res := newFakeResolver()
	res.open("A", 1<<30)
	l := New(res, nil, WithMaxEntries(5), WithMinDistance(10))

	for i := 0; i < 50; i++ {
		l.Record("A", buffer.ByteOffset(i*100))
		if st := l.Status(); st.Past > 5 {
			t.Fatalf("past grew to %d entries after record %d, cap is 5", st.Past, i)
		}
	}

	past := l.PastEntries()
	if len(past) != 5 {
		t.Fatalf("past has %d entries, want 5", len(past))
	}
	// The oldest entries were evicted.
	if past[0].Offset != 4900 || past[4].Offset != 4500 {
		t.Errorf("unexpected survivors: %+v", past)
	}
}

func TestRecordOnEmptyPastKeepsFuture(t *testing.T) {
	res := newFakeResolver()
	res.open("A", 10000)
	res.open("B", 10000)
	res.open("C", 10000)
	nav := &fakeNavigator{}
	l := New(res, nav, WithMinDistance(50))

	l.Record("A", 100)
	l.Record("B", 200)
	nav.current = Entry{Buffer: "B", Offset: 200}
	l.Back(nav.current) // future = [(B,200)], past = [(A,100)]

	res.close("A")
	l.Record("C", 300) // prune empties past; first-entry push must not clear future

	st := l.Status()
	if st.Past != 1 || st.Future != 1 {
		t.Errorf("status = %+v, want {Past:1 Future:1}", st)
	}
}

func TestPruneRemovesClosedBuffers(t *testing.T) {
	res := newFakeResolver()
	res.open("A", 10000)
	res.open("B", 10000)
	l := New(res, nil)

	l.Record("A", 100)
	l.Record("B", 100)

	res.close("A")

	st := l.Status()
	if st.Past != 1 {
		t.Fatalf("past = %d after close, want 1", st.Past)
	}
	if past := l.PastEntries(); past[0].Buffer != "B" {
		t.Errorf("surviving entry = %+v, want buffer B", past[0])
	}
}

func TestPruneClampsShrunkenOffsets(t *testing.T) {
	res := newFakeResolver()
	res.open("A", 1000)
	l := New(res, nil)

	l.Record("A", 500)
	res.open("A", 100) // buffer shrank

	l.Status() // trigger prune
	past := l.PastEntries()
	if past[0].Offset != 101 {
		t.Errorf("offset = %d after shrink, want 101 (len+1)", past[0].Offset)
	}
}

func TestBackFirstPressCapturesCurrent(t *testing.T) {
	res := newFakeResolver()
	res.open("A", 10000)
	nav := &fakeNavigator{}
	l := New(res, nav, WithMinDistance(20))

	l.Record("A", 10)
	nav.current = Entry{Buffer: "A", Offset: 50}

	dest, ok := l.Back(nav.current)
	if !ok {
		t.Fatal("Back should navigate")
	}
	if dest != (Entry{Buffer: "A", Offset: 10}) {
		t.Errorf("dest = %+v, want (A,10)", dest)
	}

	future := l.FutureEntries()
	if len(future) != 1 || future[0] != (Entry{Buffer: "A", Offset: 50}) {
		t.Errorf("future = %+v, want [(A,50)]", future)
	}
}

func TestBackForwardSymmetry(t *testing.T) {
	res := newFakeResolver()
	res.open("A", 10000)
	res.open("B", 10000)
	res.open("C", 10000)
	nav := &fakeNavigator{}
	l := New(res, nav, WithMinDistance(5))

	l.Record("B", 5)
	l.Record("A", 10)
	start := Entry{Buffer: "C", Offset: 7}
	nav.current = start

	if dest, ok := l.Back(nav.current); !ok || dest != (Entry{Buffer: "A", Offset: 10}) {
		t.Fatalf("first Back = %+v, %v", dest, ok)
	}
	if dest, ok := l.Back(nav.current); !ok || dest != (Entry{Buffer: "B", Offset: 5}) {
		t.Fatalf("second Back = %+v, %v", dest, ok)
	}

	if dest, ok := l.Forward(); !ok || dest != (Entry{Buffer: "A", Offset: 10}) {
		t.Fatalf("first Forward = %+v, %v", dest, ok)
	}
	if dest, ok := l.Forward(); !ok || dest != start {
		t.Fatalf("second Forward = %+v, %v", dest, ok)
	}

	if nav.current != start {
		t.Errorf("cursor = %+v, want the original position %+v", nav.current, start)
	}
	st := l.Status()
	if st.Past != 3 || st.Future != 0 {
		t.Errorf("status = %+v, want {Past:3 Future:0}", st)
	}
}

func TestBackWithNothingRecorded(t *testing.T) {
	res := newFakeResolver()
	nav := &fakeNavigator{}
	l := New(res, nav, WithEligibility(func(Entry) bool { return false }))

	if _, ok := l.Back(Entry{Buffer: "A", Offset: 0}); ok {
		t.Error("Back on empty history should be a no-op")
	}
	if len(nav.jumps) != 0 {
		t.Error("no navigation should occur")
	}
}

func TestBackSingleEntryAtTopIsNoOp(t *testing.T) {
	// Second backward press with a single-entry history and the cursor
	// already at that entry: silently stay put.
	res := newFakeResolver()
	res.open("A", 10000)
	nav := &fakeNavigator{}
	l := New(res, nav)

	l.Record("A", 10)
	nav.current = Entry{Buffer: "A", Offset: 10}

	if _, ok := l.Back(nav.current); ok {
		t.Error("Back should not navigate with nowhere further back")
	}
	st := l.Status()
	if st.Past != 1 || st.Future != 0 {
		t.Errorf("status = %+v, want {Past:1 Future:0}", st)
	}
}

func TestBackIneligibleCurrentSkipsCapture(t *testing.T) {
	res := newFakeResolver()
	res.open("A", 10000)
	res.open("B", 10000)
	nav := &fakeNavigator{}
	l := New(res, nav, WithEligibility(func(e Entry) bool { return e.Buffer != "B" }))

	l.Record("A", 10)
	nav.current = Entry{Buffer: "B", Offset: 50}

	dest, ok := l.Back(nav.current)
	if !ok || dest != (Entry{Buffer: "A", Offset: 10}) {
		t.Fatalf("Back = %+v, %v, want jump to (A,10)", dest, ok)
	}
	if st := l.Status(); st.Future != 0 {
		t.Errorf("future = %d, want 0 (ineligible position not captured)", st.Future)
	}
}

func TestForwardOnEmptyFuture(t *testing.T) {
	res := newFakeResolver()
	res.open("A", 10000)
	nav := &fakeNavigator{}
	l := New(res, nav)

	l.Record("A", 10)
	if _, ok := l.Forward(); ok {
		t.Error("Forward with empty future should be a no-op")
	}
	if len(nav.jumps) != 0 {
		t.Error("no navigation should occur")
	}
}

func TestClearThenNavigateIsNoOp(t *testing.T) {
	res := newFakeResolver()
	res.open("A", 10000)
	res.open("B", 10000)
	nav := &fakeNavigator{}
	l := New(res, nav, WithMinDistance(5), WithEligibility(func(Entry) bool { return false }))

	l.Record("A", 10)
	l.Record("B", 20)
	l.Clear()

	if _, ok := l.Back(Entry{Buffer: "B", Offset: 20}); ok {
		t.Error("Back after Clear should be a no-op")
	}
	if _, ok := l.Forward(); ok {
		t.Error("Forward after Clear should be a no-op")
	}
	if st := l.Status(); st.Past != 0 || st.Future != 0 {
		t.Errorf("status = %+v, want {Past:0 Future:0}", st)
	}
}

func TestPruneCapCountsExaminedEntries(t *testing.T) {
	// Entries older than the cap are dropped unconditionally, even
	// when live.
	res := newFakeResolver()
	res.open("A", 1<<30)
	l := New(res, nil, WithMaxEntries(10), WithMinDistance(1))

	for i := 0; i < 10; i++ {
		l.Record("A", buffer.ByteOffset(i*100))
	}
	l.SetMaxEntries(3)

	st := l.Status()
	if st.Past != 3 {
		t.Errorf("past = %d after cap change, want 3", st.Past)
	}
	past := l.PastEntries()
	if past[0].Offset != 900 || past[2].Offset != 700 {
		t.Errorf("unexpected survivors: %+v", past)
	}
}

func TestRuntimeSettingChanges(t *testing.T) {
	res := newFakeResolver()
	res.open("A", 1<<30)
	l := New(res, nil)

	l.SetMinDistance(10)
	l.Record("A", 0)
	l.Record("A", 50) // 50 >= 10, splits

	if st := l.Status(); st.Past != 2 {
		t.Errorf("past = %d, want 2 after lowering min distance", st.Past)
	}
}
