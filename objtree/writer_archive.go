package objtree

import (
	"fmt"
	"os"
	"time"

	"github.com/ogawa-go/ogawa/container"
	"github.com/ogawa-go/ogawa/errs"
	"github.com/ogawa-go/ogawa/internal/options"
	"github.com/ogawa-go/ogawa/metadata"
	"github.com/ogawa-go/ogawa/sample"
	"github.com/ogawa-go/ogawa/timesampling"
)

// ArchiveVersion is the property/object tree schema version written to
// the archive trailer, distinct from the Ogawa container's own format
// version in the 16-byte header.
const ArchiveVersion uint32 = 1

// LibraryVersion is this module's library-version string, embedded in the
// trailer's "library-version data" block and in the _ai_AlembicVersion
// archive metadata value.
const LibraryVersion = "1.0.0"

// buildStampEnvVar lets callers pin the build date/time stamp embedded in
// _ai_AlembicVersion, so two invocations of the writer
// against identical input produce byte-identical archives.
const buildStampEnvVar = "OGAWA_BUILD_STAMP"

// ArchiveWriter is the write side of an Ogawa archive: a container.Writer
// plus the shared per-archive state (dedup map, compression codec,
// metadata table, time-sampling registry) the property/object tree
// finalization traversal needs.
type ArchiveWriter struct {
	path   string
	writer *container.Writer
	table  *metadata.Table
	registry *timesampling.Registry
	dedup  *sample.DedupMap
	codec  sample.Codec

	compressionHint int
	dedupEnabled    bool

	appName         string
	userDescription string
	dateWritten     string
	dccFPS          float64

	tsMaxSamples map[uint32]uint32

	root *ObjectWriter
	done bool
}

// ArchiveWriterOption configures an ArchiveWriter at Create time:
// compression hint, dedup toggle, and the archive-metadata setters.
type ArchiveWriterOption = options.Option[*ArchiveWriter]

// WithCompressionHint sets the array-payload compression level: -1
// disables compression, 0 is zlib store, 1..9 are deflate levels.
func WithCompressionHint(hint int) ArchiveWriterOption {
	return options.New(func(a *ArchiveWriter) error {
		if hint < -1 || hint > 9 {
			return errs.Invalid("compression hint must be -1 or in 0..9")
		}
		a.compressionHint = hint
		return nil
	})
}

// WithDedupEnabled toggles the sample-key deduplication map.
func WithDedupEnabled(enabled bool) ArchiveWriterOption {
	return options.NoError(func(a *ArchiveWriter) { a.dedupEnabled = enabled })
}

// WithAppName sets the optional _ai_Application archive metadata value.
func WithAppName(name string) ArchiveWriterOption {
	return options.NoError(func(a *ArchiveWriter) { a.appName = name })
}

// WithUserDescription sets the optional _ai_UserDescription archive metadata value.
func WithUserDescription(desc string) ArchiveWriterOption {
	return options.NoError(func(a *ArchiveWriter) { a.userDescription = desc })
}

// WithDateWritten sets the optional _ai_DateWritten archive metadata value.
func WithDateWritten(date string) ArchiveWriterOption {
	return options.NoError(func(a *ArchiveWriter) { a.dateWritten = date })
}

// WithDCCFPS sets the optional _ai_DCCFPS archive metadata value.
func WithDCCFPS(fps float64) ArchiveWriterOption {
	return options.NoError(func(a *ArchiveWriter) { a.dccFPS = fps })
}

// Create opens path for writing and returns a ready-to-use ArchiveWriter
// with an empty root object.
func Create(path string, opts ...ArchiveWriterOption) (*ArchiveWriter, error) {
	w, err := container.Create(path)
	if err != nil {
		return nil, err
	}

	aw := &ArchiveWriter{
		path:         path,
		writer:       w,
		table:        metadata.NewTable(),
		registry:     timesampling.NewRegistry(),
		dedupEnabled: true,
		tsMaxSamples: make(map[uint32]uint32),
		root:         NewObjectWriter(""),
	}

	if err := options.Apply(aw, opts...); err != nil {
		return nil, err
	}

	aw.dedup = sample.NewDedupMap(aw.dedupEnabled)

	codec, err := sample.CodecForHint(aw.compressionHint)
	if err != nil {
		return nil, err
	}
	aw.codec = codec

	return aw, nil
}

// Root returns the archive's root object, for callers to populate with
// children and properties before calling WriteArchive.
func (a *ArchiveWriter) Root() *ObjectWriter { return a.root }

// AddTimeSampling registers a new time-sampling entry and returns its
// registry index, for use as a property's TimeSamplingIndex.
func (a *ArchiveWriter) AddTimeSampling(s timesampling.Sampling) uint32 {
	return a.registry.Add(s)
}

func (a *ArchiveWriter) buildStamp() string {
	if v := os.Getenv(buildStampEnvVar); v != "" {
		return v
	}
	return time.Now().UTC().Format("2006-01-02T15:04:05Z")
}

func encodeMetadataTable(entries []string) []byte {
	buf := putUint32(nil, uint32(len(entries)))
	for _, e := range entries {
		buf = putString(buf, e)
	}
	return buf
}

func decodeMetadataTable(data []byte) ([]string, error) {
	count, off, err := getUint32(data, 0)
	if err != nil {
		return nil, err
	}

	entries := make([]string, count)
	for i := range entries {
		s, next, err := getString(data, off)
		if err != nil {
			return nil, err
		}
		entries[i] = s
		off = next
	}

	return entries, nil
}

// WriteArchive serializes the whole tree: recurse into the root object
// (bottom-up, collecting hashes), then emit the archive-level trailer
// (version, library version, root group, archive metadata, time
// samplings, indexed metadata table), then seek back and commit the
// frozen flag as the final step. The ArchiveWriter is single-use: calling
// WriteArchive twice returns an error.
func (a *ArchiveWriter) WriteArchive() error {
	if a.done {
		return errs.OtherWrap("archive already written", errs.ErrFrozenArchive)
	}
	a.done = true

	ctx := &writeContext{
		writer: a.writer,
		dedup:  a.dedup,
		codec:  a.codec,
		table:  a.table,
		observeTimeSampling: func(idx uint32, maxSamples int) {
			if idx == 0 {
				return // identity slot is never written to the trailer
			}
			if uint32(maxSamples) > a.tsMaxSamples[idx] {
				a.tsMaxSamples[idx] = uint32(maxSamples)
			}
		},
	}

	rootGroupOffset, _, _, err := a.root.finalizeObject(ctx)
	if err != nil {
		return err
	}

	md := metadata.New()
	md.Set("_ai_AlembicVersion", fmt.Sprintf("%s %s", LibraryVersion, a.buildStamp()))
	// Tags every array payload block as compressed or raw so a reader never
	// has to guess from the bytes.
	md.Set("_ogawa_compression_hint", fmt.Sprintf("%d", a.compressionHint))
	if a.appName != "" {
		md.Set("_ai_Application", a.appName)
	}
	if a.dateWritten != "" {
		md.Set("_ai_DateWritten", a.dateWritten)
	}
	if a.dccFPS != 0 {
		md.Set("_ai_DCCFPS", fmt.Sprintf("%g", a.dccFPS))
	}
	if a.userDescription != "" {
		md.Set("_ai_UserDescription", a.userDescription)
	}

	versionOffset, err := a.writer.WriteData(putUint32(nil, ArchiveVersion))
	if err != nil {
		return err
	}
	libVersionOffset, err := a.writer.WriteData([]byte(LibraryVersion))
	if err != nil {
		return err
	}
	archiveMetaOffset, err := a.writer.WriteData([]byte(md.Serialize()))
	if err != nil {
		return err
	}

	entries := a.registry.All()[1:] // identity (slot 0) is never written
	maxSamplesSlice := make([]uint32, len(entries))
	for i := range entries {
		maxSamplesSlice[i] = a.tsMaxSamples[uint32(i+1)]
	}
	tsBytes, err := timesampling.Encode(entries, maxSamplesSlice)
	if err != nil {
		return err
	}
	tsBlock := putUint32(nil, uint32(len(entries)))
	tsBlock = append(tsBlock, tsBytes...)
	tsOffset, err := a.writer.WriteData(tsBlock)
	if err != nil {
		return err
	}

	tableOffset, err := a.writer.WriteData(encodeMetadataTable(a.table.Entries()))
	if err != nil {
		return err
	}

	topChildren := []uint64{
		container.EncodeChildOffset(versionOffset, container.KindData),
		container.EncodeChildOffset(libVersionOffset, container.KindData),
		container.EncodeChildOffset(rootGroupOffset, container.KindGroup),
		container.EncodeChildOffset(archiveMetaOffset, container.KindData),
		container.EncodeChildOffset(tsOffset, container.KindData),
		container.EncodeChildOffset(tableOffset, container.KindData),
	}

	topGroupOffset, err := a.writer.WriteGroup(topChildren)
	if err != nil {
		return err
	}

	return a.writer.Finalize(topGroupOffset)
}
