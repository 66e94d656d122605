// Package normalize turns raw room labels and time strings into comparable
// keys. Everything here is pure and safe for concurrent use, except Comparer
// which must not be shared between goroutines.
package normalize

import (
	"strconv"
	"strings"

	"github.com/agentstation/eventmaster/pkg/constants"
)

// invalidRoomPhrases mark OCR context rows ("in front of the room", "inside
// the room") that are not room assignments.
var invalidRoomPhrases = []string{
	"vor dem raum",
	"in dem raum",
}

// TimeOrdinal converts "HH:MM" into an integer by dropping the separator,
// so "14:30" becomes 1430. The result orders times correctly but is not a
// minute count: 13:45 and 14:00 are 55 apart although only 15 minutes
// separate them. Callers only compare ordinals or take small differences.
//
// Leading digits are parsed after separators are removed; ok is false when
// there are none.
func TimeOrdinal(t string) (ordinal int, ok bool) {
	s := strings.TrimSpace(t)
	s = strings.NewReplacer(":", "", ".", "").Replace(s)

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// RoomKey returns the lower-cased, trimmed room label used for matching.
func RoomKey(room string) string {
	return strings.ToLower(strings.TrimSpace(room))
}

// IsInvalidRoom reports whether room is a context phrase rather than a room.
func IsInvalidRoom(room string) bool {
	key := RoomKey(room)
	for _, phrase := range invalidRoomPhrases {
		if strings.Contains(key, phrase) {
			return true
		}
	}
	return false
}

// RoomsMatch reports whether either room key contains the other. Empty
// labels never match, since the empty string is contained in everything.
func RoomsMatch(a, b string) bool {
	ka, kb := RoomKey(a), RoomKey(b)
	if ka == "" || kb == "" {
		return false
	}
	return strings.Contains(ka, kb) || strings.Contains(kb, ka)
}

// TimesMatch reports whether two start times are within the default ordinal
// tolerance of each other. Unparsable times never match.
func TimesMatch(a, b string) bool {
	return TimesWithin(a, b, constants.TimeTolerance)
}

// TimesWithin reports whether the ordinal distance of a and b is below tolerance.
func TimesWithin(a, b string, tolerance int) bool {
	oa, ok := TimeOrdinal(a)
	if !ok {
		return false
	}
	ob, ok := TimeOrdinal(b)
	if !ok {
		return false
	}
	return abs(oa-ob) < tolerance
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
