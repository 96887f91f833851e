package container

import "github.com/ogawa-go/ogawa/errs"

// Group is a handle to a `[u64 num_children][num_children x u64 child]`
// node. The constructor reads the count and every packed child offset;
// the child nodes themselves are opened only when requested.
type Group struct {
	s        streams
	offset   uint64
	children []uint64 // raw packed child offsets, read once on construction
}

func newGroup(s streams, offset uint64) (Group, error) {
	hdr, err := s.readAt(offset, 8)
	if err != nil {
		return Group{}, err
	}

	count := readU64(hdr)
	if count == 0 {
		return Group{s: s, offset: offset}, nil
	}

	raw, err := s.readAt(offset+8, count*8)
	if err != nil {
		return Group{}, err
	}

	children := make([]uint64, count)
	for i := range children {
		children[i] = readU64(raw[i*8:])
	}

	return Group{s: s, offset: offset, children: children}, nil
}

// NumChildren returns the number of children this group lists.
func (g Group) NumChildren() int { return len(g.children) }

// IsChildData reports whether child i is a Data node.
func (g Group) IsChildData(i int) bool {
	_, kind := DecodeChildOffset(g.children[i])
	return kind == KindData
}

// IsChildGroup reports whether child i is a Group node.
func (g Group) IsChildGroup(i int) bool { return !g.IsChildData(i) }

// ChildData returns child i as a Data node. Returns KindInvalid if the
// child is actually a Group.
func (g Group) ChildData(i int) (Data, error) {
	if i < 0 || i >= len(g.children) {
		return Data{}, errs.Invalid("child index out of range")
	}

	offset, kind := DecodeChildOffset(g.children[i])
	if kind != KindData {
		return Data{}, errs.Invalid("child is a group, not data")
	}

	return newData(g.s, offset)
}

// ChildGroup returns child i as a nested Group. Returns KindInvalid if the
// child is actually Data.
func (g Group) ChildGroup(i int) (Group, error) {
	if i < 0 || i >= len(g.children) {
		return Group{}, errs.Invalid("child index out of range")
	}

	offset, kind := DecodeChildOffset(g.children[i])
	if kind != KindGroup {
		return Group{}, errs.Invalid("child is data, not a group")
	}

	return newGroup(g.s, offset)
}
