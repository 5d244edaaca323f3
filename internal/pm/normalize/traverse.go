package normalize

import (
	"github.com/jacoelho/pm2http/internal/pm/ast"
	"github.com/jacoelho/pm2http/internal/pm/naming"
)

// RequestNode contains one leaf item plus context inherited from its folders.
type RequestNode struct {
	Name       string
	FolderPath []string
	Item       ast.Item
	Auth       *ast.Auth
	Events     []ast.Event
}

// FullPath returns folder/request path segments.
func (n RequestNode) FullPath() []string {
	path := make([]string, 0, len(n.FolderPath)+1)
	path = append(path, n.FolderPath...)
	path = append(path, n.Item.Name)
	return path
}

// IsLeaf reports whether item is a request: its item list is absent or empty.
func IsLeaf(item ast.Item) bool {
	return len(item.Item) == 0
}

// Requests flattens a nested collection into one node per leaf, pre-order,
// preserving sibling order. Folders are never emitted.
func Requests(collection ast.Collection) []RequestNode {
	var out []RequestNode
	walkItems(collection.Item, scope{auth: collection.Auth, events: collection.Event}, &out)
	return out
}

type scope struct {
	prefix     string
	folderPath []string
	auth       *ast.Auth
	events     []ast.Event
}

func walkItems(items []ast.Item, parent scope, out *[]RequestNode) {
	for _, item := range items {
		name := naming.Qualified(parent.prefix, item.Name)
		events := appendEvents(parent.events, item.Event)
		auth := nearestAuth(parent.auth, item.Auth)

		if IsLeaf(item) {
			if item.Request != nil && item.Request.Spec != nil {
				auth = nearestAuth(auth, item.Request.Spec.Auth)
			}
			*out = append(*out, RequestNode{
				Name:       name,
				FolderPath: append([]string(nil), parent.folderPath...),
				Item:       item,
				Auth:       effectiveAuth(auth),
				Events:     events,
			})
			continue
		}

		walkItems(item.Item, scope{
			prefix:     name,
			folderPath: append(append([]string(nil), parent.folderPath...), item.Name),
			auth:       auth,
			events:     events,
		}, out)
	}
}

func nearestAuth(inherited *ast.Auth, own *ast.Auth) *ast.Auth {
	if own == nil || own.Type == "" || own.Type == "inherit" {
		return inherited
	}
	return own
}

func effectiveAuth(auth *ast.Auth) *ast.Auth {
	if auth == nil || auth.Type == "noauth" {
		return nil
	}
	return auth
}

func appendEvents(parent []ast.Event, current []ast.Event) []ast.Event {
	if len(parent) == 0 && len(current) == 0 {
		return nil
	}

	events := make([]ast.Event, 0, len(parent)+len(current))
	for _, event := range parent {
		events = append(events, cloneEvent(event))
	}
	for _, event := range current {
		events = append(events, cloneEvent(event))
	}

	return events
}

func cloneEvent(event ast.Event) ast.Event {
	cloned := event
	cloned.Script.Exec = append(ast.Lines(nil), event.Script.Exec...)
	return cloned
}
