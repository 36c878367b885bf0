package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/drawtools/internal/geom"
)

func newTestScene(n int) (*Scene, []Shape) {
	s := NewScene()
	shapes := make([]Shape, n)
	for i := range shapes {
		shapes[i] = NewRectangle(rect(i*20, 0, 10, 10), DefaultStyle())
	}
	// add back to front so shapes[0] ends up on top
	for i := n - 1; i >= 0; i-- {
		s.Add(shapes[i])
	}
	return s, shapes
}

func shapeIDs(shapes ...Shape) []ID {
	out := make([]ID, len(shapes))
	for i, sh := range shapes {
		out[i] = sh.ID()
	}
	return out
}

func TestSceneAddPutsShapeOnTop(t *testing.T) {
	s := NewScene()
	a := NewRectangle(rect(0, 0, 10, 10), DefaultStyle())
	b := NewEllipse(rect(5, 5, 5, 5), DefaultStyle())

	s.Add(a)
	assert.Equal(t, 1, s.Len())
	s.Add(b)
	assert.Equal(t, 2, s.Len())

	assert.Equal(t, b.ID(), s.At(0).ID())
	assert.Equal(t, a.ID(), s.At(1).ID())
	assert.Nil(t, s.At(2))
	assert.Nil(t, s.At(-1))
	assert.Equal(t, 1, s.IndexOf(a.ID()))
	assert.Equal(t, -1, s.IndexOf(ID(-5)))
}

func TestSceneIndexedMutation(t *testing.T) {
	s, sh := newTestScene(3)
	extra := NewLine(geom.Pt(0, 0), geom.Pt(1, 1), DefaultStyle())

	s.Insert(1, extra)
	assert.Equal(t, shapeIDs(sh[0], extra, sh[1], sh[2]), ids(s))

	s.RemoveAt(1)
	assert.Equal(t, shapeIDs(sh...), ids(s))

	s.Insert(3, extra)
	assert.Equal(t, shapeIDs(sh[0], sh[1], sh[2], extra), ids(s))
	s.RemoveAt(3)

	s.Replace(2, extra)
	assert.Equal(t, shapeIDs(sh[0], sh[1], extra), ids(s))

	// out of range is ignored
	s.Insert(9, sh[2])
	s.Insert(-1, sh[2])
	s.Replace(3, sh[2])
	s.RemoveAt(3)
	s.RemoveAt(-1)
	assert.Equal(t, shapeIDs(sh[0], sh[1], extra), ids(s))

	s.DeleteLastAdded()
	assert.Equal(t, shapeIDs(sh[1], extra), ids(s))
}

func TestSceneClear(t *testing.T) {
	s, _ := newTestScene(2)
	assert.True(t, s.Clear())
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Clear())
}

func TestSceneDeleteSelection(t *testing.T) {
	s, sh := newTestScene(4)
	assert.False(t, s.DeleteSelection())

	sh[1].SetSelected(true)
	sh[3].SetSelected(true)
	assert.True(t, s.DeleteSelection())
	assert.Equal(t, shapeIDs(sh[0], sh[2]), ids(s))
}

func TestSceneSelection(t *testing.T) {
	s, sh := newTestScene(4)
	sh[3].SetSelected(true)
	sh[1].SetSelected(true)

	var got []Shape
	for x := range s.Selection() {
		got = append(got, x)
	}
	assert.Equal(t, shapeIDs(sh[1], sh[3]), shapeIDs(got...))
	assert.Equal(t, 2, s.SelectionCount())

	// restartable and live
	sh[0].SetSelected(true)
	got = got[:0]
	for x := range s.Selection() {
		got = append(got, x)
	}
	assert.Equal(t, shapeIDs(sh[0], sh[1], sh[3]), shapeIDs(got...))

	s.UnselectAll()
	assert.Equal(t, 0, s.SelectionCount())
	s.SelectAll()
	assert.Equal(t, 4, s.SelectionCount())
}

func TestSelectInRectangleIsExclusive(t *testing.T) {
	s, sh := newTestScene(4) // x = 0, 20, 40, 60
	sh[3].SetSelected(true)

	r := rect(15, 0, 30, 5)
	s.SelectInRectangle(r)

	var want []ID
	for _, x := range s.All() {
		if x.Intersects(r) {
			want = append(want, x.ID())
		}
	}
	var got []ID
	for x := range s.Selection() {
		got = append(got, x.ID())
	}
	assert.Equal(t, want, got)
	assert.Equal(t, shapeIDs(sh[1], sh[2]), got)
	assert.False(t, sh[3].Selected())
}

func TestMoveSelectionToBack(t *testing.T) {
	s, sh := newTestScene(3)
	a, b, c := sh[0], sh[1], sh[2]
	a.SetSelected(true)
	c.SetSelected(true)

	assert.True(t, s.MoveSelectionToBack())
	assert.Equal(t, shapeIDs(b, a, c), ids(s))
	assert.True(t, a.Selected())
	assert.True(t, c.Selected())
	assert.False(t, b.Selected())
}

func TestMoveSelectionToFront(t *testing.T) {
	s, sh := newTestScene(4)
	sh[1].SetSelected(true)
	sh[3].SetSelected(true)

	assert.True(t, s.MoveSelectionToFront())
	assert.Equal(t, shapeIDs(sh[1], sh[3], sh[0], sh[2]), ids(s))

	s.UnselectAll()
	assert.False(t, s.MoveSelectionToFront())
	assert.False(t, s.MoveSelectionToBack())
}

func TestSelectionStyle(t *testing.T) {
	s, sh := newTestScene(3)
	assert.Equal(t, Properties{}, s.SelectionStyle())

	red := RGB(255, 0, 0)
	sh[0].SetStyle(Style{Color: red, PenWidth: 2})
	sh[1].SetStyle(Style{Color: red, PenWidth: 5})
	sh[0].SetSelected(true)
	sh[1].SetSelected(true)

	props := s.SelectionStyle()
	require.NotNil(t, props.Color)
	assert.Equal(t, red, *props.Color)
	assert.Nil(t, props.PenWidth)
}

func TestApplyStyle(t *testing.T) {
	s, sh := newTestScene(3)
	sh[0].SetSelected(true)
	sh[2].SetSelected(true)

	width := 4
	assert.True(t, s.ApplyStyle(Properties{PenWidth: &width}))
	assert.Equal(t, 4, sh[0].Style().PenWidth)
	assert.Equal(t, 1, sh[1].Style().PenWidth)
	assert.Equal(t, 4, sh[2].Style().PenWidth)
	assert.Equal(t, Black, sh[0].Style().Color)

	assert.False(t, s.ApplyStyle(Properties{PenWidth: &width}))
	assert.False(t, s.ApplyStyle(Properties{}))
}

func TestSceneDrawsBackToFront(t *testing.T) {
	s, sh := newTestScene(3)
	sh[0].SetSelected(true)
	p := &paintLog{}

	s.Draw(p)
	assert.Equal(t, shapeIDs(sh[2], sh[1], sh[0]), p.ids)
	// three outlines and eight handles of the selected top shape
	assert.Len(t, p.calls, 3+8)
	assert.Equal(t, "rect {0 0 10 10} w1", p.calls[2])
}

func TestSceneBounds(t *testing.T) {
	s, _ := newTestScene(3)
	assert.Equal(t, rect(0, 0, 50, 10), s.Bounds())
	assert.Equal(t, geom.Rect{}, NewScene().Bounds())

	// flat shapes still count
	s.Add(NewLine(geom.Pt(0, 100), geom.Pt(10, 100), DefaultStyle()))
	assert.Equal(t, rect(0, 0, 50, 100), s.Bounds())
}

func sampleScene() (*Scene, *Rectangle, *Line, *Polygon) {
	r := NewRectangle(rect(1, 2, 30, 40), Style{Color: RGB(10, 20, 30), PenWidth: 2})
	l := NewLine(geom.Pt(5, 6), geom.Pt(70, 80), Style{Color: Black, PenWidth: 1})
	pg := NewPolygon([]geom.Point{{X: 0, Y: 0}, {X: 15, Y: 0}, {X: 30, Y: 30}}, Style{Color: White, PenWidth: 3})

	s := NewScene()
	s.Add(pg)
	s.Add(l)
	s.Add(r)
	return s, r, l, pg
}

func TestSceneWriteFieldsLayout(t *testing.T) {
	s, _, _, _ := sampleScene()
	m := newFieldMap()
	require.NoError(t, s.WriteFields(m))

	assert.Equal(t, []string{
		"Count",
		"Type0", "Rect0", "Color0", "PenWidth0",
		"Type1", "Start1", "End1", "Color1", "PenWidth1",
		"Type2", "Length2", "Point2-0", "Point2-1", "Point2-2", "Color2", "PenWidth2",
	}, m.keys)

	assert.Equal(t, 3, m.values["Count"])
	assert.Equal(t, "DrawTools.DrawRectangle", m.values["Type0"])
	assert.Equal(t, "DrawTools.DrawLine", m.values["Type1"])
	assert.Equal(t, "DrawTools.DrawPolygon", m.values["Type2"])
	assert.Equal(t, rect(1, 2, 30, 40), m.values["Rect0"])
	assert.Equal(t, int32(-16777216), m.values["Color1"])
}

func TestReadSceneRoundTrip(t *testing.T) {
	s, r, l, pg := sampleScene()
	m := newFieldMap()
	require.NoError(t, s.WriteFields(m))

	got, err := ReadScene(m)
	require.NoError(t, err)
	require.Equal(t, 3, got.Len())

	for i, want := range []Shape{r, l, pg} {
		sh := got.At(i)
		assert.Equal(t, want.Kind(), sh.Kind())
		assert.Equal(t, want.Bounds(), sh.Bounds())
		assert.Equal(t, want.Style(), sh.Style())
		assert.NotEqual(t, want.ID(), sh.ID())
		assert.False(t, sh.Selected())
	}
	assert.Equal(t, pg.Points(), got.At(2).(*Polygon).Points())
}

func TestReadSceneErrors(t *testing.T) {
	t.Run("missing count", func(t *testing.T) {
		_, err := ReadScene(newFieldMap())
		assert.Error(t, err)
	})

	t.Run("negative count", func(t *testing.T) {
		m := newFieldMap()
		require.NoError(t, m.WriteField("Count", -1))
		_, err := ReadScene(m)
		assert.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("huge count", func(t *testing.T) {
		m := newFieldMap()
		require.NoError(t, m.WriteField("Count", 1<<62))
		var s *Scene
		var err error
		require.NotPanics(t, func() { s, err = ReadScene(m) })
		assert.Nil(t, s)
		assert.ErrorContains(t, err, "read shape 0")
	})

	t.Run("huge polygon length", func(t *testing.T) {
		m := newFieldMap()
		require.NoError(t, m.WriteField("Count", 1))
		require.NoError(t, m.WriteField("Type0", "DrawTools.DrawPolygon"))
		require.NoError(t, m.WriteField("Length0", 1<<62))
		require.NoError(t, m.WriteField("Point0-0", geom.Pt(1, 2)))
		var err error
		require.NotPanics(t, func() { _, err = ReadScene(m) })
		assert.ErrorContains(t, err, "Point0-1")
	})

	t.Run("unknown type", func(t *testing.T) {
		m := newFieldMap()
		require.NoError(t, m.WriteField("Count", 1))
		require.NoError(t, m.WriteField("Type0", "DrawTools.DrawStar"))
		_, err := ReadScene(m)
		assert.ErrorIs(t, err, ErrUnknownShapeType)
	})

	t.Run("missing shape field", func(t *testing.T) {
		s, _, _, _ := sampleScene()
		m := newFieldMap()
		require.NoError(t, s.WriteFields(m))
		delete(m.values, "End1")
		_, err := ReadScene(m)
		assert.ErrorContains(t, err, "read shape 1")
	})

	t.Run("wrong field type", func(t *testing.T) {
		m := newFieldMap()
		require.NoError(t, m.WriteField("Count", 1))
		require.NoError(t, m.WriteField("Type0", "DrawTools.DrawEllipse"))
		require.NoError(t, m.WriteField("Rect0", "not a rect"))
		_, err := ReadScene(m)
		assert.Error(t, err)
	})
}
