package common

import "intranet/entity"

// Document mutation events sent to browsers.
const (
	EventAppend      = "append"
	EventAddClass    = "add_class"
	EventRemoveClass = "remove_class"
	EventRemove      = "remove"
)

type WSMessage struct {
	Event     string               `json:"event"`
	ID        string               `json:"id"`
	Class     string               `json:"class,omitempty"`
	Element   *entity.Notification `json:"element,omitempty"`
	Timestamp string               `json:"timestamp,omitempty"`
}
