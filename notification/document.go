package notification

import (
	"errors"
	"sync"

	"intranet/entity"
)

var ErrNotFound = errors.New("notification element not found")

// Document is the render target toasts are inserted into. A browser page,
// a websocket hub or an in-memory tree can all serve.
type Document interface {
	Append(n entity.Notification) error
	AddClass(id, class string) error
	RemoveClass(id, class string) error
	Remove(id string) error
}

// MemoryDocument is a headless Document.
type MemoryDocument struct {
	mu       sync.Mutex
	order    []string
	elements map[string]*entity.Notification
}

func NewMemoryDocument() *MemoryDocument {
	return &MemoryDocument{elements: make(map[string]*entity.Notification)}
}

func (d *MemoryDocument) Append(n entity.Notification) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	el := n.Clone()
	if _, ok := d.elements[el.ID]; !ok {
		d.order = append(d.order, el.ID)
	}
	d.elements[el.ID] = &el
	return nil
}

func (d *MemoryDocument) AddClass(id, class string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	el, ok := d.elements[id]
	if !ok {
		return ErrNotFound
	}
	if !el.HasClass(class) {
		el.Classes = append(el.Classes, class)
	}
	return nil
}

func (d *MemoryDocument) RemoveClass(id, class string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	el, ok := d.elements[id]
	if !ok {
		return ErrNotFound
	}
	kept := el.Classes[:0]
	for _, c := range el.Classes {
		if c != class {
			kept = append(kept, c)
		}
	}
	el.Classes = kept
	return nil
}

func (d *MemoryDocument) Remove(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.elements[id]; !ok {
		return ErrNotFound
	}
	delete(d.elements, id)
	for i, v := range d.order {
		if v == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns a copy of the element with the given id.
func (d *MemoryDocument) Get(id string) (entity.Notification, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	el, ok := d.elements[id]
	if !ok {
		return entity.Notification{}, false
	}
	return el.Clone(), true
}

func (d *MemoryDocument) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.elements)
}

// Elements returns copies of all elements in insertion order.
func (d *MemoryDocument) Elements() []entity.Notification {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]entity.Notification, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.elements[id].Clone())
	}
	return out
}
