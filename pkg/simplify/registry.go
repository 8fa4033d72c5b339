package simplify

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
)

// idAlphabet is the character set for generated style ids.
const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// idLength is the number of random characters after the kind prefix.
const idLength = 6

// StyleRegistry is a call-scoped, content-addressed store of style values.
// Registering a value that is structurally equal to one already stored
// returns the existing id (first writer wins); new values are assigned a
// short id prefixed with their kind.
//
// Lookup is a hash map keyed by the canonical JSON serialization of
// (kind, value), so registration cost stays flat as documents grow.
//
// The id generator is a fixed-seed PRNG local to the registry: ids look
// random but a fresh registry walking the same input produces the same ids,
// which keeps repeated simplification calls byte-identical.
type StyleRegistry struct {
	styles map[string]StyleValue // id -> value
	index  map[string]string     // canonical key -> id
	rng    *rand.Rand
}

// NewStyleRegistry creates an empty registry for one simplification call.
func NewStyleRegistry() *StyleRegistry {
	return &StyleRegistry{
		styles: make(map[string]StyleValue),
		index:  make(map[string]string),
		rng:    rand.New(rand.NewPCG(0x5117, 0xF19A)),
	}
}

// Register stores value under a generated id prefixed with kind, returning
// the existing id if a structurally equal value of that kind was registered
// before.
func (r *StyleRegistry) Register(value StyleValue, kind string) string {
	key := canonicalKey(kind, value)
	if id, ok := r.index[key]; ok {
		return id
	}

	id := r.newID(kind)
	r.styles[id] = value
	r.index[key] = id
	return id
}

// RegisterNamed stores value directly under the given human-readable name,
// bypassing deduplication entirely. A later call with the same name
// overwrites the earlier value.
func (r *StyleRegistry) RegisterNamed(name string, value StyleValue) string {
	r.styles[name] = value
	return name
}

// Lookup returns the stored value for a reference id.
func (r *StyleRegistry) Lookup(id string) (StyleValue, bool) {
	v, ok := r.styles[id]
	return v, ok
}

// GlobalVars returns the registry contents as the shared style table of a
// simplified design.
func (r *StyleRegistry) GlobalVars() GlobalVars {
	return GlobalVars{Styles: r.styles}
}

// Len returns the number of stored styles.
func (r *StyleRegistry) Len() int {
	return len(r.styles)
}

func (r *StyleRegistry) newID(kind string) string {
	for {
		buf := make([]byte, idLength)
		for i := range buf {
			buf[i] = idAlphabet[r.rng.IntN(len(idAlphabet))]
		}
		id := kind + "_" + string(buf)
		if _, taken := r.styles[id]; !taken {
			return id
		}
	}
}

// canonicalKey serializes a style value into a stable lookup key. JSON
// marshaling of the concrete style structs is deterministic (fixed field
// order, sorted map keys), so structural equality collapses to string
// equality.
func canonicalKey(kind string, value StyleValue) string {
	b, err := json.Marshal(value)
	if err != nil {
		// Style values are plain data; marshaling cannot fail for them.
		panic(fmt.Sprintf("simplify: canonicalize %s style: %v", kind, err))
	}
	return kind + ":" + string(b)
}
