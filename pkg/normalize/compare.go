package normalize

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Comparer orders rooms and start times. Rooms use a German collation with
// numeric ordering so "Raum 2" sorts before "Raum 10". A Comparer wraps a
// collator and is not safe for concurrent use; create one per sort.
type Comparer struct {
	collator *collate.Collator
}

// NewComparer creates a Comparer.
func NewComparer() *Comparer {
	return &Comparer{
		collator: collate.New(language.German, collate.Numeric),
	}
}

// Rooms compares two room labels, returning -1, 0 or 1.
func (c *Comparer) Rooms(a, b string) int {
	return c.collator.CompareString(a, b)
}

// Times compares two zero-padded HH:MM strings lexicographically.
func (c *Comparer) Times(a, b string) int {
	return strings.Compare(a, b)
}

// RoomThenTime orders by room, then start time.
func (c *Comparer) RoomThenTime(roomA, timeA, roomB, timeB string) int {
	if r := c.Rooms(roomA, roomB); r != 0 {
		return r
	}
	return c.Times(timeA, timeB)
}

// TimeThenRoom orders by start time, then room.
func (c *Comparer) TimeThenRoom(roomA, timeA, roomB, timeB string) int {
	if r := c.Times(timeA, timeB); r != 0 {
		return r
	}
	return c.Rooms(roomA, roomB)
}
