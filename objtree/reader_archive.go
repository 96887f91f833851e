package objtree

import (
	"strconv"

	"github.com/ogawa-go/ogawa/cache"
	"github.com/ogawa-go/ogawa/container"
	"github.com/ogawa-go/ogawa/errs"
	"github.com/ogawa-go/ogawa/internal/options"
	"github.com/ogawa-go/ogawa/metadata"
	"github.com/ogawa-go/ogawa/timesampling"
)

// ArchiveReader is the read side of an Ogawa archive. Open eagerly
// validates the header and decodes the small archive-level trailer blocks
// (version, library version, archive metadata, time-sampling registry,
// indexed metadata table); the object/property tree beneath the root
// group is walked lazily as callers descend into it.
type ArchiveReader struct {
	path   string
	r      *container.Reader
	cache  *cache.Cache

	archiveVersion  uint32
	libraryVersion  string
	archiveMeta     *metadata.MetaData
	registry        *timesampling.Registry
	table           *metadata.Table
	tsMaxSamples    map[uint32]uint32
	compressionHint int

	rootGroup container.Group
}

type archiveReaderConfig struct {
	useMmap           bool
	cacheCapacityBytes int64
}

// ArchiveReaderOption configures an ArchiveReader at Open time.
type ArchiveReaderOption = options.Option[*archiveReaderConfig]

// WithMmap selects mmap'd (true) or buffered (false) file access.
func WithMmap(useMmap bool) ArchiveReaderOption {
	return options.NoError(func(c *archiveReaderConfig) { c.useMmap = useMmap })
}

// WithReadCacheCapacityBytes bounds the decoded-sample read cache.
func WithReadCacheCapacityBytes(bytes uint64) ArchiveReaderOption {
	return options.NoError(func(c *archiveReaderConfig) { c.cacheCapacityBytes = int64(bytes) })
}

// Open validates and opens an archive for reading (defaults: mmap on,
// 256MiB cache).
func Open(path string, opts ...ArchiveReaderOption) (*ArchiveReader, error) {
	cfg := &archiveReaderConfig{useMmap: true, cacheCapacityBytes: cache.DefaultMaxBytes}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	r, err := container.Open(path, cfg.useMmap)
	if err != nil {
		return nil, err
	}

	topGroup, err := r.Root()
	if err != nil {
		r.Close()
		return nil, err
	}
	if topGroup.NumChildren() != 6 {
		r.Close()
		return nil, errs.Invalid("archive top-level group must have exactly 6 children")
	}

	versionBytes, err := readAllChildData(topGroup, 0)
	if err != nil {
		r.Close()
		return nil, err
	}
	archiveVersion, _, err := getUint32(versionBytes, 0)
	if err != nil {
		r.Close()
		return nil, err
	}

	libVersionBytes, err := readAllChildData(topGroup, 1)
	if err != nil {
		r.Close()
		return nil, err
	}

	rootGroup, err := topGroup.ChildGroup(2)
	if err != nil {
		r.Close()
		return nil, err
	}

	archiveMetaBytes, err := readAllChildData(topGroup, 3)
	if err != nil {
		r.Close()
		return nil, err
	}
	archiveMeta, err := metadata.Parse(string(archiveMetaBytes))
	if err != nil {
		r.Close()
		return nil, errs.InvalidWrap("malformed archive metadata", err)
	}

	tsBlock, err := readAllChildData(topGroup, 4)
	if err != nil {
		r.Close()
		return nil, err
	}
	count, off, err := getUint32(tsBlock, 0)
	if err != nil {
		r.Close()
		return nil, err
	}
	nonIdentity, maxSamples, err := timesampling.Decode(tsBlock[off:], int(count))
	if err != nil {
		r.Close()
		return nil, err
	}
	registry, err := timesampling.LoadRegistry(append([]timesampling.Sampling{timesampling.Identity()}, nonIdentity...))
	if err != nil {
		r.Close()
		return nil, err
	}

	tableBytes, err := readAllChildData(topGroup, 5)
	if err != nil {
		r.Close()
		return nil, err
	}
	tableEntries, err := decodeMetadataTable(tableBytes)
	if err != nil {
		r.Close()
		return nil, err
	}

	tsMaxSamples := make(map[uint32]uint32, len(maxSamples))
	for i, m := range maxSamples {
		tsMaxSamples[uint32(i+1)] = m
	}

	// _ogawa_compression_hint is set by every conforming writer (see
	// ArchiveWriter.WriteArchive); default to "store" only for archives
	// written before this tag existed, where guessing is the best a reader
	// can do.
	compressionHint := 0
	if v, ok := archiveMeta.Get("_ogawa_compression_hint"); ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			compressionHint = parsed
		}
	}

	return &ArchiveReader{
		path:            path,
		r:               r,
		cache:           cache.New(cfg.cacheCapacityBytes),
		archiveVersion:  archiveVersion,
		libraryVersion:  string(libVersionBytes),
		archiveMeta:     archiveMeta,
		registry:        registry,
		table:           metadata.LoadTable(tableEntries),
		tsMaxSamples:    tsMaxSamples,
		compressionHint: compressionHint,
		rootGroup:       rootGroup,
	}, nil
}

func readAllChildData(g container.Group, i int) ([]byte, error) {
	d, err := g.ChildData(i)
	if err != nil {
		return nil, err
	}
	return d.ReadAll()
}

// Name returns the path the archive was opened from.
func (a *ArchiveReader) Name() string { return a.path }

// ArchiveVersion returns the property/object tree schema version stored
// in the trailer (distinct from the container's own format version).
func (a *ArchiveReader) ArchiveVersion() uint32 { return a.archiveVersion }

// LibraryVersion returns the writer library's version string.
func (a *ArchiveReader) LibraryVersion() string { return a.libraryVersion }

// Metadata returns the archive-level metadata map (always containing at
// least _ai_AlembicVersion).
func (a *ArchiveReader) Metadata() *metadata.MetaData { return a.archiveMeta }

// CompressionHint returns the compression_hint the archive was written
// with: -1 means every array payload is stored raw, 0..9
// means every array payload was passed through ZlibCodec.
func (a *ArchiveReader) CompressionHint() int { return a.compressionHint }

// NumTimeSamplings returns the number of registered samplings, including
// the reserved identity slot.
func (a *ArchiveReader) NumTimeSamplings() int { return a.registry.Len() }

// TimeSampling returns the Sampling registered at index i.
func (a *ArchiveReader) TimeSampling(i uint32) (timesampling.Sampling, error) {
	return a.registry.At(i)
}

// MaxNumSamplesForTimeSamplingIndex returns the largest max_num_samples
// observed across every property that used time-sampling slot i.
func (a *ArchiveReader) MaxNumSamplesForTimeSamplingIndex(i uint32) uint32 {
	return a.tsMaxSamples[i]
}

// Root returns the archive's root object reader.
func (a *ArchiveReader) Root() (*ObjectReader, error) {
	return newObjectReader(a, a.rootGroup, "")
}

// FindObject descends from the root by name at each "/"-separated path
// segment. Empty path segments are rejected.
func (a *ArchiveReader) FindObject(path string) (*ObjectReader, error) {
	segments, err := splitPath(path)
	if err != nil {
		return nil, err
	}

	obj, err := a.Root()
	if err != nil {
		return nil, err
	}

	for _, seg := range segments {
		obj, err = obj.ChildByName(seg)
		if err != nil {
			return nil, err
		}
	}

	return obj, nil
}

// Close releases the underlying container handle.
func (a *ArchiveReader) Close() error {
	return a.r.Close()
}
