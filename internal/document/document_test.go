package document

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pbxgen/internal/objgraph"
	"github.com/hupe1980/pbxgen/internal/plist"
)

type item struct {
	name    string
	child   *item
	backRef *item
	ownBack *item
	extRef  *item
	boom    bool
}

func (i *item) PBXFields(s *objgraph.Serializer) plist.Mapping {
	if i.boom {
		panic("unrelated failure")
	}

	m := plist.Mapping{"isa": plist.String("Item"), "name": plist.String(i.name)}

	if i.child != nil {
		m["child"] = plist.Identifier(s.Serialize(i.child))
	}

	if i.backRef != nil {
		m["parent"] = plist.Identifier(s.IDOf(i.backRef))
	}

	if i.ownBack != nil {
		m["parent"] = plist.Identifier(s.Serialize(i.ownBack))
	}

	if i.extRef != nil {
		m["ext"] = plist.Identifier(s.IDOf(i.extRef))
	}

	return m
}

func TestEnvelope(t *testing.T) {
	env := Envelope("OBJ_1", plist.Mapping{}, Options{})

	assert.Equal(t, plist.String("1"), env["archiveVersion"])
	assert.Equal(t, plist.String("46"), env["objectVersion"])
	assert.Equal(t, plist.Identifier("OBJ_1"), env["rootObject"])
	assert.Equal(t, plist.Mapping{}, env["classes"])

	env = Envelope("OBJ_1", plist.Mapping{}, Options{ObjectVersion: "56"})
	assert.Equal(t, plist.String("56"), env["objectVersion"])
}

func TestGenerate_TwoNodeGraph(t *testing.T) {
	a := &item{name: "A"}
	a.child = &item{name: "B", backRef: a}

	out, err := Generate(a, Options{CheckReferences: true})
	require.NoError(t, err)

	want := `{
   archiveVersion = "1";
   classes = {
   };
   objectVersion = "46";
   objects = {
      OBJ_1 = {
         isa = "Item";
         child = OBJ_2;
         name = "A";
      };
      OBJ_2 = {
         isa = "Item";
         name = "B";
         parent = OBJ_1;
      };
   };
   rootObject = OBJ_1;
}`

	assert.Equal(t, want, string(out))
}

func TestBuild_OwningBackReferenceFails(t *testing.T) {
	a := &item{name: "A"}
	a.child = &item{name: "B", ownBack: a}

	res, err := Build(a, Options{})
	require.Error(t, err)
	assert.Nil(t, res)

	var cv *objgraph.ContractViolation
	require.ErrorAs(t, err, &cv)
	assert.Equal(t, objgraph.ViolationCycle, cv.Kind)
	assert.Equal(t, "OBJ_1", cv.ID)
}

func TestBuild_DanglingReference(t *testing.T) {
	root := &item{name: "root", extRef: &item{name: "nowhere"}}

	_, err := Build(root, Options{CheckReferences: true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, objgraph.ErrDanglingReference))

	res, err := Build(root, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"OBJ_2"}, res.Serializer.Dangling())
	assert.True(t, strings.Contains(plist.Render(res.Root, 0), "ext = OBJ_2;"))
}

func TestBuild_OtherPanicsPropagate(t *testing.T) {
	assert.PanicsWithValue(t, "unrelated failure", func() {
		_, _ = Build(&item{boom: true}, Options{})
	})
}

func TestBuild_FreshSerializerPerCall(t *testing.T) {
	root := &item{name: "root", child: &item{name: "leaf"}}

	first, err := Build(root, Options{})
	require.NoError(t, err)

	second, err := Build(root, Options{})
	require.NoError(t, err)

	assert.Equal(t, "OBJ_1", second.RootID)
	assert.Equal(t, plist.Render(first.Root, 0), plist.Render(second.Root, 0))
}
