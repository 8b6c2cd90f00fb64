package snapshot

import (
	"fmt"
	"strconv"
	"strings"
)

// Key identifies one (process, resource) pair in the allocation and request
// tables. The wire encoding is "<pid>_<rid>", split on the first underscore,
// so a resource id may itself contain underscores but a pid may not.
//
// The underscore scheme is inherited from the wire contract with the
// detection service and is fragile by construction: a resource id that
// starts with digits and an underscore (e.g. "12_disk") is indistinguishable
// from a different pid/rid split. Keys built through [NewKey] and parsed
// through [ParseKey] round-trip correctly as long as resource ids never
// need to be re-split; changing the delimiter would break every existing
// client, so the format stays.
type Key struct {
	PID int    // Process id, the part before the first underscore
	RID string // Resource id, everything after the first underscore
}

// NewKey builds a Key from its parts.
func NewKey(pid int, rid string) Key {
	return Key{PID: pid, RID: rid}
}

// ParseKey parses the wire form "<pid>_<rid>". It is the only way a raw
// string becomes a Key; anything that does not split into an integer pid
// and a non-empty resource id fails with a [MalformedKeyError] naming the
// offending key.
func ParseKey(s string) (Key, error) {
	pidPart, rid, ok := strings.Cut(s, "_")
	if !ok {
		return Key{}, &MalformedKeyError{Key: s, Reason: `missing "_" separator`}
	}
	pid, err := strconv.Atoi(pidPart)
	if err != nil {
		return Key{}, &MalformedKeyError{Key: s, Reason: fmt.Sprintf("pid %q is not an integer", pidPart)}
	}
	if rid == "" {
		return Key{}, &MalformedKeyError{Key: s, Reason: "empty resource id"}
	}
	return Key{PID: pid, RID: rid}, nil
}

// String returns the wire form "<pid>_<rid>".
func (k Key) String() string {
	return strconv.Itoa(k.PID) + "_" + k.RID
}

// MarshalText encodes the key in its wire form. Together with
// [Key.UnmarshalText] this lets allocation and request tables marshal as
// plain JSON objects keyed by "<pid>_<rid>".
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses the wire form via [ParseKey], so a malformed key in
// incoming JSON fails the whole decode instead of producing a half-parsed
// table.
func (k *Key) UnmarshalText(text []byte) error {
	parsed, err := ParseKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MalformedKeyError reports a composite key that cannot be split into a
// pid and a resource id. It is fatal to the call that encountered it: a
// silently dropped key would misrepresent the system state being analyzed.
type MalformedKeyError struct {
	Key    string // The offending key as received
	Reason string // Why it failed to parse
}

// Error implements the error interface.
func (e *MalformedKeyError) Error() string {
	return fmt.Sprintf("malformed composite key %q: %s", e.Key, e.Reason)
}
