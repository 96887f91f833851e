package sample

// ChangeTracker implements constant-folding and first/last-changed-index
// bookkeeping for one writer-side property.
type ChangeTracker struct {
	numSamples        int
	firstChangedIndex int
	lastChangedIndex  int
	prevKey           Key
	havePrevKey       bool
}

// Observe records the Key of the (numSamples)-th appended sample, updating
// first/last-changed-index as the archive format's change-tracking rule
// requires.
func (c *ChangeTracker) Observe(key Key) {
	n := c.numSamples

	if !c.havePrevKey {
		c.firstChangedIndex = 0
		c.lastChangedIndex = 0
		c.prevKey = key
		c.havePrevKey = true
	} else if !key.Equal(c.prevKey) {
		c.lastChangedIndex = n
		c.prevKey = key
	}

	c.numSamples = n + 1
}

// NumSamples returns the number of samples observed so far.
func (c *ChangeTracker) NumSamples() int { return c.numSamples }

// FirstChangedIndex returns the property's first_changed_index.
func (c *ChangeTracker) FirstChangedIndex() int { return c.firstChangedIndex }

// LastChangedIndex returns the property's last_changed_index.
func (c *ChangeTracker) LastChangedIndex() int { return c.lastChangedIndex }

// IsConstant reports whether the writer only ever observed one distinct
// SampleKey across all appended samples.
func (c *ChangeTracker) IsConstant() bool {
	return c.numSamples > 0 && c.firstChangedIndex == 0 && c.lastChangedIndex == 0
}

// MaxNumSamples is the property's reported max_num_samples: 1 for a
// constant property regardless of how many times the sample was appended,
// else the true sample count.
func (c *ChangeTracker) MaxNumSamples() int {
	if c.IsConstant() {
		return 1
	}
	return c.numSamples
}
