package normalize

import (
	"reflect"
	"testing"

	"github.com/jacoelho/pm2http/internal/pm/ast"
)

func leaf(name string) ast.Item {
	return ast.Item{Name: name, Request: &ast.RequestValue{URL: "http://localhost/" + name}}
}

func names(nodes []RequestNode) []string {
	out := make([]string, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, node.Name)
	}
	return out
}

func TestIsLeaf(t *testing.T) {
	t.Parallel()

	if !IsLeaf(ast.Item{Name: "absent"}) {
		t.Fatal("expected item without children to be a leaf")
	}
	if !IsLeaf(ast.Item{Name: "empty", Item: []ast.Item{}}) {
		t.Fatal("expected item with empty children to be a leaf")
	}
	if IsLeaf(ast.Item{Name: "folder", Item: []ast.Item{leaf("r")}}) {
		t.Fatal("expected item with children to be a folder")
	}
}

func TestRequests(t *testing.T) {
	t.Parallel()

	collection := ast.Collection{
		Item: []ast.Item{
			{
				Name: "Folder A",
				Item: []ast.Item{leaf("Req 1")},
			},
			leaf("Req 2"),
		},
	}

	nodes := Requests(collection)
	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(nodes))
	}

	if nodes[0].Name != "Folder-A_Req-1" {
		t.Fatalf("first node name = %q", nodes[0].Name)
	}
	if !reflect.DeepEqual(nodes[0].FolderPath, []string{"Folder A"}) {
		t.Fatalf("first node folder path = %#v", nodes[0].FolderPath)
	}
	if !reflect.DeepEqual(nodes[0].FullPath(), []string{"Folder A", "Req 1"}) {
		t.Fatalf("first node full path = %#v", nodes[0].FullPath())
	}
	if nodes[1].Name != "Req-2" {
		t.Fatalf("second node name = %q", nodes[1].Name)
	}
}

func TestRequestsPreOrderAcrossDepths(t *testing.T) {
	t.Parallel()

	collection := ast.Collection{
		Item: []ast.Item{
			{
				Name: "F1",
				Item: []ast.Item{
					{Name: "Deep", Item: []ast.Item{{Name: "Deeper", Item: []ast.Item{leaf("r1")}}}},
					leaf("r2"),
				},
			},
			{Name: "F2", Item: []ast.Item{leaf("r3")}},
		},
	}

	got := names(Requests(collection))
	want := []string{"F1_Deep_Deeper_r1", "F1_r2", "F2_r3"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("names = %#v, want %#v", got, want)
	}
}

func TestRequestsEmitsEmptyFolderAsLeaf(t *testing.T) {
	t.Parallel()

	collection := ast.Collection{
		Item: []ast.Item{
			{Name: "Empty", Item: []ast.Item{}},
			leaf("r"),
		},
	}

	nodes := Requests(collection)
	if got := names(nodes); !reflect.DeepEqual(got, []string{"Empty", "r"}) {
		t.Fatalf("names = %#v", got)
	}
	if nodes[0].Item.Request != nil {
		t.Fatal("expected empty folder leaf to carry no request")
	}
}

func TestRequestsResolvesInheritedAuth(t *testing.T) {
	t.Parallel()

	collectionAuth := &ast.Auth{Type: "bearer"}
	folderAuth := &ast.Auth{Type: "basic"}
	requestAuth := &ast.Auth{Type: "apikey"}

	collection := ast.Collection{
		Auth: collectionAuth,
		Item: []ast.Item{
			leaf("root"),
			{
				Name: "Basic",
				Auth: folderAuth,
				Item: []ast.Item{
					leaf("inherits"),
					{Name: "own", Request: &ast.RequestValue{Spec: &ast.Request{Auth: requestAuth}}},
					{Name: "none", Request: &ast.RequestValue{Spec: &ast.Request{Auth: &ast.Auth{Type: "noauth"}}}},
				},
			},
			{Name: "Open", Auth: &ast.Auth{Type: "noauth"}, Item: []ast.Item{leaf("public")}},
		},
	}

	nodes := Requests(collection)
	want := []*ast.Auth{collectionAuth, folderAuth, requestAuth, nil, nil}
	if len(nodes) != len(want) {
		t.Fatalf("nodes len = %d", len(nodes))
	}
	for index, node := range nodes {
		if node.Auth != want[index] {
			t.Fatalf("node %s auth = %#v, want %#v", node.Name, node.Auth, want[index])
		}
	}
}

func TestRequestsCombinesAncestorAndRequestEventsInOrder(t *testing.T) {
	t.Parallel()

	collectionEvent := ast.Event{Listen: "test", Script: ast.Script{Exec: ast.Lines{`tests["collection"] = true;`}}}
	folderEvent := ast.Event{Listen: "test", Script: ast.Script{Exec: ast.Lines{`tests["folder"] = true;`}}}
	requestEvent := ast.Event{Listen: "prerequest", Script: ast.Script{Exec: ast.Lines{`pm.variables.set("a", 1);`}}}

	withEvent := leaf("Req 1")
	withEvent.Event = []ast.Event{requestEvent}

	collection := ast.Collection{
		Event: []ast.Event{collectionEvent},
		Item: []ast.Item{
			{Name: "Folder A", Event: []ast.Event{folderEvent}, Item: []ast.Item{withEvent}},
			leaf("Req 2"),
		},
	}

	nodes := Requests(collection)
	if !reflect.DeepEqual(nodes[0].Events, []ast.Event{collectionEvent, folderEvent, requestEvent}) {
		t.Fatalf("Req 1 events = %#v", nodes[0].Events)
	}
	if !reflect.DeepEqual(nodes[1].Events, []ast.Event{collectionEvent}) {
		t.Fatalf("Req 2 events = %#v", nodes[1].Events)
	}
}
