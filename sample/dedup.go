package sample

import "sync"

// PayloadForm distinguishes how a deduplicated block's payload bytes are
// stored on disk. A raw scalar block and a zlib-compressed array block can
// share a content Key while holding different bytes, so the two forms
// never dedup against each other.
type PayloadForm uint8

const (
	// PayloadRaw marks blocks whose payload is the encoded sample bytes.
	PayloadRaw PayloadForm = iota
	// PayloadCompressed marks blocks whose payload went through ZlibCodec.
	PayloadCompressed
)

type dedupEntry struct {
	key  Key
	form PayloadForm
}

// DedupMap is an archive writer's content-addressed Key -> data-block-offset
// table. One instance per ArchiveWriter, not global or
// per-process, so concurrent writers to different archives never contend
// on a shared lock (see DESIGN.md's Open Question decision on dedup scope).
type DedupMap struct {
	mu      sync.Mutex
	enabled bool
	offsets map[dedupEntry]uint64
}

// NewDedupMap returns a DedupMap; enabled mirrors the archive's
// dedup_enabled configuration flag.
func NewDedupMap(enabled bool) *DedupMap {
	return &DedupMap{enabled: enabled, offsets: make(map[dedupEntry]uint64)}
}

// Lookup returns the offset previously recorded for (key, form), if dedup
// is enabled and that pair has been seen before.
func (d *DedupMap) Lookup(key Key, form PayloadForm) (uint64, bool) {
	if !d.enabled {
		return 0, false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	off, ok := d.offsets[dedupEntry{key: key, form: form}]
	return off, ok
}

// Insert records offset for (key, form). A no-op when dedup is disabled,
// so every sample is written as its own block.
func (d *DedupMap) Insert(key Key, form PayloadForm, offset uint64) {
	if !d.enabled {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.offsets[dedupEntry{key: key, form: form}] = offset
}

// Enabled reports whether this map performs deduplication.
func (d *DedupMap) Enabled() bool { return d.enabled }
