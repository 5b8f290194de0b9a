package findtext

// Registry holds the groups of the latest search and which one is active.
type Registry struct {
	groups []Group
	active int
}

// NewRegistry wraps groups; no group is active yet.
func NewRegistry(groups []Group) *Registry {
	return &Registry{groups: groups, active: -1}
}

// Len returns the number of groups.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.groups)
}

// Groups returns the groups in document order.
func (r *Registry) Groups() []Group {
	if r == nil {
		return nil
	}
	return r.groups
}

// Active returns the index of the active group, or -1.
func (r *Registry) Active() int {
	if r == nil {
		return -1
	}
	return r.active
}

// Goto scrolls group i into view and repaints every unit so that only the
// units of group i are active. It reports false when i is out of range.
func (r *Registry) Goto(i int) bool {
	if r == nil || i < 0 || i >= len(r.groups) {
		return false
	}
	if units := r.groups[i].Units; len(units) > 0 {
		units[0].ScrollIntoView()
	}
	for idx, group := range r.groups {
		for _, unit := range group.Units {
			unit.SetActive(idx == i)
		}
	}
	r.active = i
	return true
}

// Step moves the active group by delta, wrapping around at both ends, and
// returns the new active index (-1 when there are no groups).
func (r *Registry) Step(delta int) int {
	n := r.Len()
	if n == 0 {
		return -1
	}
	target := r.active
	switch {
	case target < 0 && delta < 0:
		target = n - 1
	case target < 0:
		target = 0
	default:
		target = (target + delta) % n
		if target < 0 {
			target += n
		}
	}
	r.Goto(target)
	return target
}
