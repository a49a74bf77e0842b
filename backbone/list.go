package backbone

// List is an intrusive doubly-linked list of *Record values, threaded
// through each Record's own next/prev fields. A Record is a member of at
// most one List at a time — the backbone's free-page list, or (from the
// slab package) a bucket's partial or free list, or none while cached in
// a per-CPU magazine — per the allocator's page-ownership invariant.
type List struct {
	head *Record
	n    int
}

// Len reports the number of records currently linked into l.
func (l *List) Len() int { return l.n }

// Empty reports whether l has no records linked into it.
func (l *List) Empty() bool { return l.head == nil }

// PushFront links r at the head of l. r must not already belong to a list.
func (l *List) PushFront(r *Record) {
	r.prev = nil
	r.next = l.head
	if l.head != nil {
		l.head.prev = r
	}
	l.head = r
	l.n++
}

// PopFront unlinks and returns the head of l, or nil if l is empty.
func (l *List) PopFront() *Record {
	r := l.head
	if r == nil {
		return nil
	}
	l.head = r.next
	if l.head != nil {
		l.head.prev = nil
	}
	r.next, r.prev = nil, nil
	l.n--
	return r
}

// Remove unlinks r from l. r must currently belong to l.
func (l *List) Remove(r *Record) {
	if r.prev != nil {
		r.prev.next = r.next
	} else {
		l.head = r.next
	}
	if r.next != nil {
		r.next.prev = r.prev
	}
	r.next, r.prev = nil, nil
	l.n--
}
