package entity

import "strings"

// Notification is a toast element as inserted into a document.
type Notification struct {
	ID        string   `json:"id"`
	Type      string   `json:"type"`
	Message   string   `json:"message"`
	Classes   []string `json:"classes"`
	CreatedAt string   `json:"created_at"`
}

// ClassName renders the class list the way a DOM className would.
func (n Notification) ClassName() string {
	return strings.Join(n.Classes, " ")
}

func (n Notification) HasClass(class string) bool {
	for _, c := range n.Classes {
		if c == class {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slice with n.
func (n Notification) Clone() Notification {
	n.Classes = append([]string(nil), n.Classes...)
	return n
}
