package shared

// Pool is a named expendable counter (charges, points, uses).
// Current counts what remains; Reset says when it refills.
type Pool struct {
	Current int      `json:"current"`
	Max     int      `json:"max"`
	Reset   RestType `json:"reset"`
}

// NewPool creates a full pool with the given maximum
func NewPool(max int, reset RestType) *Pool {
	return &Pool{Current: max, Max: max, Reset: reset}
}

// Use spends n from the pool. Returns false without mutating when the
// pool holds fewer than n.
func (p *Pool) Use(n int) bool {
	if n < 0 || p.Current < n {
		return false
	}
	p.Current -= n
	return true
}

// Restore adds n back, clamped at Max
func (p *Pool) Restore(n int) {
	if n < 0 {
		return
	}
	p.Current += n
	if p.Current > p.Max {
		p.Current = p.Max
	}
}

// Fill restores the pool to maximum
func (p *Pool) Fill() {
	p.Current = p.Max
}

// SetMax resizes the pool. Growth preserves what was already spent;
// shrinking clamps Current down to the new maximum.
func (p *Pool) SetMax(max int) {
	if max < 0 {
		max = 0
	}
	used := p.Max - p.Current
	p.Max = max
	p.Current = max - used
	if p.Current < 0 {
		p.Current = 0
	}
	if p.Current > p.Max {
		p.Current = p.Max
	}
}

// Clone returns a copy of the pool
func (p *Pool) Clone() *Pool {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}
