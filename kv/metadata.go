package kv

// Metadata holds everything the store keeps alongside an object's payload:
// the content type, user-defined metadata, secondary index entries and
// links. An Object exclusively owns its Metadata; sibling materialization
// clones it so peers never share a Metadata instance.
type Metadata struct {
	contentType    string
	hasContentType bool
	userMeta       map[string]string
	indexes        []IndexEntry
	links          []Link
}

// NewMetadata returns empty, normalized metadata.
func NewMetadata() *Metadata {
	m := &Metadata{}
	m.normalize()
	return m
}

// normalize ensures the user-meta map and index sequence are usable even on
// metadata decoded from older response formats that omit them.
func (m *Metadata) normalize() {
	if m.userMeta == nil {
		m.userMeta = make(map[string]string)
	}
	if m.indexes == nil {
		m.indexes = []IndexEntry{}
	}
}

// Clone returns an independent deep copy.
func (m *Metadata) Clone() *Metadata {
	m.normalize()
	clone := &Metadata{
		contentType:    m.contentType,
		hasContentType: m.hasContentType,
		userMeta:       make(map[string]string, len(m.userMeta)),
		indexes:        make([]IndexEntry, len(m.indexes)),
		links:          make([]Link, len(m.links)),
	}
	for key, value := range m.userMeta {
		clone.userMeta[key] = value
	}
	copy(clone.indexes, m.indexes)
	copy(clone.links, m.links)
	return clone
}

// ContentType returns the stored content type and whether one is set.
func (m *Metadata) ContentType() (string, bool) {
	return m.contentType, m.hasContentType
}

// SetContentType sets the content type.
func (m *Metadata) SetContentType(contentType string) {
	m.contentType = contentType
	m.hasContentType = true
}

// UserMeta returns a copy of the user-defined metadata.
func (m *Metadata) UserMeta() map[string]string {
	m.normalize()
	out := make(map[string]string, len(m.userMeta))
	for key, value := range m.userMeta {
		out[key] = value
	}
	return out
}

// SetUserMeta replaces the user-defined metadata.
func (m *Metadata) SetUserMeta(userMeta map[string]string) {
	m.userMeta = make(map[string]string, len(userMeta))
	for key, value := range userMeta {
		m.userMeta[key] = value
	}
}

// Indexes returns a copy of the index entries in order.
func (m *Metadata) Indexes() []IndexEntry {
	m.normalize()
	out := make([]IndexEntry, len(m.indexes))
	copy(out, m.indexes)
	return out
}

// SetIndexes replaces the entire index set. Unlike AddIndex, no implicit
// deduplication happens; that responsibility stays with the caller.
func (m *Metadata) SetIndexes(entries ...IndexEntry) {
	m.indexes = make([]IndexEntry, len(entries))
	copy(m.indexes, entries)
}

// AddIndex inserts the entry unless an equal one already exists.
func (m *Metadata) AddIndex(entry IndexEntry) {
	m.normalize()
	for _, existing := range m.indexes {
		if existing.Equal(entry) {
			return
		}
	}
	m.indexes = append(m.indexes, entry)
}

// Links returns a copy of the links in order.
func (m *Metadata) Links() []Link {
	out := make([]Link, len(m.links))
	copy(out, m.links)
	return out
}

// SetLinks replaces all links.
func (m *Metadata) SetLinks(links ...Link) {
	m.links = make([]Link, len(links))
	copy(m.links, links)
}

// AddLink appends the link, first removing any existing link to the same
// bucket and key so a target is never linked twice. Retagging a target
// therefore replaces its link; the new tag wins.
func (m *Metadata) AddLink(link Link) {
	kept := m.links[:0]
	for _, existing := range m.links {
		if existing.bucket != link.bucket || existing.key != link.key {
			kept = append(kept, existing)
		}
	}
	m.links = append(kept, link)
}

// RemoveLink filters out all links equal to the target. Removing a link
// that does not exist is a no-op.
func (m *Metadata) RemoveLink(link Link) {
	kept := m.links[:0]
	for _, existing := range m.links {
		if !existing.Equal(link) {
			kept = append(kept, existing)
		}
	}
	m.links = kept
}
