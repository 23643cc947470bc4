package stage

// Kind classifies the special transition behavior of a stage.
type Kind string

const (
	// KindNormal stages apply immediately with no extra input.
	KindNormal Kind = "normal"
	// KindCompleted marks a won deal; entering it clears the next
	// contact date.
	KindCompleted Kind = "completed"
	// KindClosed marks a lost or dropped deal; entering it requires a
	// close reason and clears the next contact date.
	KindClosed Kind = "closed"
	// KindRecontact parks a deal for a later cycle; entering it requires
	// a close reason but keeps the next contact date.
	KindRecontact Kind = "recontact"
)

var kinds = map[Code]Kind{
	S5: KindCompleted,
	S6: KindClosed,
	S7: KindRecontact,
}

// KindOf returns the transition kind for a raw stage value. Unknown
// stages behave as normal stages.
func KindOf(raw string) Kind {
	code, ok := Canonical(raw)
	if !ok {
		return KindNormal
	}
	if k, ok := kinds[code]; ok {
		return k
	}
	return KindNormal
}

// RequiresReason reports whether moving into the given stage needs a
// close reason captured in the same update.
func RequiresReason(raw string) bool {
	k := KindOf(raw)
	return k == KindClosed || k == KindRecontact
}

// ClearsNextContact reports whether moving into the given stage nulls
// out the next contact date. Won and closed deals need no follow-up;
// recontact deals keep theirs.
func ClearsNextContact(raw string) bool {
	k := KindOf(raw)
	return k == KindCompleted || k == KindClosed
}
