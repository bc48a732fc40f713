package lod

// Member is anything the Registry can broadcast to.
type Member interface {
	Alive() bool
	ApplySettings(snapshot PositionSnapshot, considerDirection bool) bool
}

// Registry holds the active sources and fans out controller ticks to them.
// It is owned by one App and only touched from its systems.
type Registry struct {
	members []Member
}

func NewRegistry() *Registry {
	return &Registry{members: make([]Member, 0)}
}

// Register adds m once; registering a member twice is a no-op.
func (r *Registry) Register(m Member) {
	if r.index(m) >= 0 {
		return
	}
	r.members = append(r.members, m)
}

// Unregister removes m if present.
func (r *Registry) Unregister(m Member) {
	if i := r.index(m); i >= 0 {
		r.removeAt(i)
	}
}

func (r *Registry) Contains(m Member) bool { return r.index(m) >= 0 }

func (r *Registry) Len() int { return len(r.members) }

// Members returns a copy of the current membership in registration order.
func (r *Registry) Members() []Member {
	out := make([]Member, len(r.members))
	copy(out, r.members)
	return out
}

func (r *Registry) Reset() {
	clear(r.members)
	r.members = r.members[:0]
}

// Broadcast applies the snapshot to every live member and drops dead ones.
// It returns how many members wrote their light.
func (r *Registry) Broadcast(snapshot PositionSnapshot, considerDirection bool) int {
	written := 0
	for i := 0; i < len(r.members); {
		m := r.members[i]
		if m == nil || !m.Alive() {
			r.removeAt(i)
			continue
		}
		if m.ApplySettings(snapshot, considerDirection) {
			written++
		}
		i++
	}
	return written
}

func (r *Registry) index(m Member) int {
	for i, member := range r.members {
		if member == m {
			return i
		}
	}
	return -1
}

func (r *Registry) removeAt(i int) {
	copy(r.members[i:], r.members[i+1:])
	r.members[len(r.members)-1] = nil
	r.members = r.members[:len(r.members)-1]
}
