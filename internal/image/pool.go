package image

// Pool recycles pixel slices of the sizes a buffer has used.
//
// Filters that compute into a separate output slice take it from the pool,
// swap it into the buffer, and return the displaced slice. Pool groups slices
// by length so a slice is only handed out for a buffer of the same size.
//
// Pool is not safe for concurrent use; each engine owns its own.
type Pool struct {
	buckets map[int][][]byte
	maxSize int // max slices per bucket
}

// NewPool creates a pool retaining at most maxPerBucket slices per length.
// A maxPerBucket of 0 means unlimited (use with caution).
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[int][][]byte),
		maxSize: maxPerBucket,
	}
}

// Get returns a slice of length n. Its contents are unspecified; callers
// overwrite every byte.
func (p *Pool) Get(n int) []byte {
	bucket := p.buckets[n]
	if len(bucket) > 0 {
		buf := bucket[len(bucket)-1]
		bucket[len(bucket)-1] = nil
		p.buckets[n] = bucket[:len(bucket)-1]
		return buf
	}
	return make([]byte, n)
}

// Put returns a slice for reuse. Nil, empty, or over-capacity slices are
// dropped.
func (p *Pool) Put(buf []byte) {
	if len(buf) == 0 {
		return
	}
	bucket := p.buckets[len(buf)]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[len(buf)] = append(bucket, buf)
}

// Reset drops every pooled slice. Engines call it when the buffer size changes.
func (p *Pool) Reset() {
	clear(p.buckets)
}

// Len returns the number of pooled slices of length n.
func (p *Pool) Len(n int) int {
	return len(p.buckets[n])
}
