package ir

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddValueResolvesExisting(t *testing.T) {
	g := NewGraph("test")

	a, err := g.AddValue("x", Float32, Shape{2, 3})
	require.NoError(t, err)

	b, err := g.AddValue("x", Float32, Shape{2, 3})
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, 1, g.NumValues())
}

func TestAddValueTypeClash(t *testing.T) {
	g := NewGraph("test")

	_, err := g.AddValue("x", Int32, nil)
	require.NoError(t, err)

	_, err = g.AddValue("x", Float32, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateValue)

	var dup *DuplicateValueError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "x", dup.Name)
	assert.Equal(t, Int32, dup.Existing)
	assert.Equal(t, Float32, dup.Requested)
}

func TestAddValueRefinesUnknownShape(t *testing.T) {
	g := NewGraph("test")

	a, err := g.AddValue("x", Float32, nil)
	require.NoError(t, err)
	assert.Nil(t, a.Shape())

	_, err = g.AddValue("x", Float32, Shape{4})
	require.NoError(t, err)
	assert.Equal(t, Shape{4}, a.Shape())
}

func TestAddNodeArity(t *testing.T) {
	g := NewGraph("test")
	x, _ := g.AddValue("x", Float32, nil)
	y, _ := g.AddValue("y", Float32, nil)
	z, _ := g.AddValue("z", Float32, nil)

	// Abs takes exactly one input.
	_, err := g.AddNode(KindAbs, "", []*Value{x, y}, []*Value{z})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrArityMismatch)
	assert.Equal(t, 0, g.NumNodes())

	_, err = g.AddNode(KindAbs, "", []*Value{x}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrArityMismatch)

	n, err := g.AddNode(KindAbs, "", []*Value{x}, []*Value{z})
	require.NoError(t, err)
	assert.Equal(t, KindAbs, n.Kind())
	assert.Equal(t, 1, g.NumNodes())
}

func TestAddNodeRejectsForeignValue(t *testing.T) {
	g := NewGraph("a")
	other := NewGraph("b")
	x, _ := g.AddValue("x", Float32, nil)
	alien, _ := other.AddValue("x", Float32, nil)

	_, err := g.AddNode(KindAbs, "", []*Value{alien}, []*Value{x})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForeignValue)
	assert.Equal(t, 0, g.NumNodes())
}

func TestNodesKeepInsertionOrder(t *testing.T) {
	g := NewGraph("test")
	x, _ := g.AddValue("x", Float32, nil)
	y, _ := g.AddValue("y", Float32, nil)
	z, _ := g.AddValue("z", Float32, nil)

	_, err := g.AddNode(KindAbs, "first", []*Value{x}, []*Value{y})
	require.NoError(t, err)
	_, err = g.AddNode(KindRelu, "second", []*Value{y}, []*Value{z})
	require.NoError(t, err)

	nodes := g.Nodes()
	require.Len(t, nodes, 2)
	assert.Equal(t, "first", nodes[0].Name())
	assert.Equal(t, "second", nodes[1].Name())

	// Traversal is restartable and stable.
	again := g.Nodes()
	assert.Equal(t, nodes, again)
}

func TestValidateOrdering(t *testing.T) {
	g := NewGraph("test")
	x, _ := g.AddValue("x", Float32, nil)
	y, _ := g.AddValue("y", Float32, nil)
	z, _ := g.AddValue("z", Float32, nil)
	g.MarkInput(x)

	// Node consuming y before anything produces it.
	_, err := g.AddNode(KindRelu, "", []*Value{y}, []*Value{z})
	require.NoError(t, err)
	require.Error(t, g.Validate())

	g2 := NewGraph("test")
	x2, _ := g2.AddValue("x", Float32, nil)
	y2, _ := g2.AddValue("y", Float32, nil)
	g2.MarkInput(x2)
	_, err = g2.AddNode(KindRelu, "", []*Value{x2}, []*Value{y2})
	require.NoError(t, err)
	require.NoError(t, g2.Validate())
}

func TestGraphCloneIsIndependent(t *testing.T) {
	g := NewGraph("test")
	x, _ := g.AddValue("x", Float32, Shape{2})
	y, _ := g.AddValue("y", Float32, Shape{2})
	g.MarkInput(x)
	g.MarkOutput(y)
	n, err := g.AddNode(KindAbs, "a", []*Value{x}, []*Value{y})
	require.NoError(t, err)
	n.SetAttr("alpha", FloatAttr(0.5))

	clone := g.Clone()
	require.Equal(t, g.Dump(), clone.Dump())

	// Mutations do not cross the copy.
	n.SetAttr("alpha", FloatAttr(9))
	attr, ok := clone.Nodes()[0].Attr("alpha")
	require.True(t, ok)
	assert.Equal(t, 0.5, attr.Float())

	// Clone's values are its own.
	assert.NotSame(t, g.GetValue("x"), clone.GetValue("x"))
}

func TestDumpDeterministic(t *testing.T) {
	build := func() *Graph {
		g := NewGraph("det")
		x, _ := g.AddValue("x", Float32, Shape{1, 3})
		y, _ := g.AddValue("y", Float32, Shape{1, 3})
		g.MarkInput(x)
		g.MarkOutput(y)
		n, _ := g.AddNode(KindSoftmax, "", []*Value{x}, []*Value{y})
		n.SetAttr("axis", IntAttr(1))
		n.SetAttr("beta", FloatAttr(1))
		return g
	}
	assert.Equal(t, build().Dump(), build().Dump())
}

func TestAcceptDispatchesByKind(t *testing.T) {
	g := NewGraph("test")
	x, _ := g.AddValue("x", Float32, nil)
	y, _ := g.AddValue("y", Float32, nil)
	abs, err := g.AddNode(KindAbs, "", []*Value{x}, []*Value{y})
	require.NoError(t, err)

	v := &countingVisitor{}
	require.NoError(t, abs.Accept(v))
	assert.Equal(t, 1, v.abs)
	assert.Equal(t, 0, v.relu)
}

func TestAcceptPropagatesVisitorError(t *testing.T) {
	g := NewGraph("test")
	x, _ := g.AddValue("x", Float32, nil)
	y, _ := g.AddValue("y", Float32, nil)
	relu, err := g.AddNode(KindRelu, "", []*Value{x}, []*Value{y})
	require.NoError(t, err)

	boom := errors.New("cannot legalize")
	v := &countingVisitor{reluErr: boom}
	assert.ErrorIs(t, relu.Accept(v), boom)
}

type countingVisitor struct {
	BaseVisitor
	abs     int
	relu    int
	reluErr error
}

func (v *countingVisitor) VisitAbs(*Node) error { v.abs++; return nil }

func (v *countingVisitor) VisitRelu(*Node) error {
	v.relu++
	return v.reluErr
}
