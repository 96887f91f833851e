// Package hash provides the two hash families the ogawa core needs for
// byte-exact parity with the reference Alembic implementation: an
// incremental SpookyHash V2 for object/property header
// hashing, and a MurmurHash3 x64_128 wrapper for sample
// digests. It also exposes an xxHash64 cache-key hash for the bounded
// sample read cache.
package hash
