package kv

import "fmt"

// Object is a single logical record in the store: its identity, causality
// token, metadata, payload, existence flag and — after a conflicting read —
// its siblings. Objects are not internally synchronized; do not invoke two
// operations on the same instance concurrently.
type Object struct {
	bucket *Bucket
	key    string
	// structured objects encode and decode payloads through the
	// content-type codec registry; binary objects carry raw bytes.
	structured bool

	vclock   []byte
	value    any
	metadata *Metadata
	exists   bool
	siblings *siblingList
}

func newObject(bucket *Bucket, key string, structured bool) *Object {
	return &Object{
		bucket:     bucket,
		key:        key,
		structured: structured,
		metadata:   NewMetadata(),
	}
}

// Bucket returns the object's bucket.
func (o *Object) Bucket() *Bucket {
	return o.bucket
}

// Key returns the object's key. An empty key means the server assigns one
// on first store.
func (o *Object) Key() string {
	return o.key
}

// Exists reports whether the object was present in the store on the last
// read or write that reconciled it.
func (o *Object) Exists() bool {
	return o.exists
}

// VClock returns the opaque causality token from the store, or nil before
// the first reconciliation.
func (o *Object) VClock() []byte {
	return o.vclock
}

// Metadata returns the object's metadata. The object owns it exclusively.
func (o *Object) Metadata() *Metadata {
	return o.metadata
}

// SetMetadata replaces the object's metadata.
func (o *Object) SetMetadata(metadata *Metadata) {
	if metadata == nil {
		metadata = NewMetadata()
	}
	metadata.normalize()
	o.metadata = metadata
}

// Clear resets the object to an empty, non-existent state: payload and
// siblings are dropped and the existence flag is lowered. Key, metadata and
// vector clock are retained until the next reconciliation overwrites them.
func (o *Object) Clear() {
	o.value = nil
	o.exists = false
	o.siblings = nil
}

// Value returns the payload: the decoded value for structured objects, raw
// bytes for binary ones, or nil.
func (o *Object) Value() any {
	return o.value
}

// SetValue stores the payload. If no content type is set yet, a default is
// assigned: application/json for structured objects, application/octet-stream
// for binary ones.
func (o *Object) SetValue(value any) {
	o.value = value
	if _, ok := o.metadata.ContentType(); !ok {
		if o.structured {
			o.metadata.SetContentType(ContentTypeJSON)
		} else {
			o.metadata.SetContentType(ContentTypeOctetStream)
		}
	}
}

// ContentType returns the content type, falling back to the structured or
// binary default when none is set.
func (o *Object) ContentType() string {
	if contentType, ok := o.metadata.ContentType(); ok {
		return contentType
	}
	if o.structured {
		return ContentTypeJSON
	}
	return ContentTypeOctetStream
}

// SetContentType sets the content type.
func (o *Object) SetContentType(contentType string) {
	o.metadata.SetContentType(contentType)
}

// EncodedValue returns the payload encoded for storage. Structured objects
// use the codec for their content type; without one, textual payloads pass
// through and anything else fails with ErrEncoding. Binary objects must
// hold bytes or a string.
func (o *Object) EncodedValue() ([]byte, error) {
	if o.value == nil {
		return nil, nil
	}
	if !o.structured {
		return textualBytes(o.value, "binary object payload")
	}
	contentType := o.ContentType()
	encoder := o.bucket.Encoder(contentType)
	if encoder == nil {
		return textualBytes(o.value, contentType)
	}
	encoded, err := encoder(o.value)
	if err != nil {
		return nil, fmt.Errorf("kv: encode %s payload: %w", contentType, err)
	}
	return encoded, nil
}

func textualBytes(value any, what string) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("%w: %s holds non-textual %T", ErrEncoding, what, value)
	}
}

// SetEncodedValue sets the payload from its stored encoding. Structured
// objects are decoded with the codec for their content type; when no
// decoder is registered the raw bytes are kept for the application to
// handle.
func (o *Object) SetEncodedValue(data []byte) error {
	if !o.structured {
		o.value = data
		return nil
	}
	contentType := o.ContentType()
	decoder := o.bucket.Decoder(contentType)
	if decoder == nil {
		o.value = data
		return nil
	}
	decoded, err := decoder(data)
	if err != nil {
		return fmt.Errorf("kv: decode %s payload: %w", contentType, err)
	}
	o.value = decoded
	return nil
}

// AddIndex tags the object with a field/value index pair. Adding an entry
// equal to an existing one leaves the index set unchanged.
func (o *Object) AddIndex(field string, value any) error {
	entry, err := NewIndexEntry(field, value)
	if err != nil {
		return err
	}
	o.metadata.AddIndex(entry)
	return nil
}

// RemoveIndex removes index entries. With both arguments zero it removes
// all entries; with only a field it removes every entry for that field;
// with field and value it removes the exact entry. A value without a field
// is a usage error. Removing entries that do not exist is a no-op.
func (o *Object) RemoveIndex(field string, value any) error {
	switch {
	case field == "" && value == nil:
		o.metadata.SetIndexes()
		return nil
	case field != "" && value == nil:
		kept := make([]IndexEntry, 0, len(o.metadata.indexes))
		for _, entry := range o.metadata.Indexes() {
			if entry.Field() != field {
				kept = append(kept, entry)
			}
		}
		o.metadata.SetIndexes(kept...)
		return nil
	case field != "":
		target, err := NewIndexEntry(field, value)
		if err != nil {
			return err
		}
		kept := make([]IndexEntry, 0, len(o.metadata.indexes))
		for _, entry := range o.metadata.Indexes() {
			if !entry.Equal(target) {
				kept = append(kept, entry)
			}
		}
		o.metadata.SetIndexes(kept...)
		return nil
	default:
		return fmt.Errorf("%w: cannot remove an index by value without a field", ErrInvalidArgument)
	}
}

// SetIndexes replaces the entire index set. Deduplication is the caller's
// responsibility.
func (o *Object) SetIndexes(entries ...IndexEntry) {
	o.metadata.SetIndexes(entries...)
}

// Indexes returns all index entries in order.
func (o *Object) Indexes() []IndexEntry {
	return o.metadata.Indexes()
}

// IndexValues returns the values of all entries for the given field.
func (o *Object) IndexValues(field string) []any {
	var values []any
	for _, entry := range o.metadata.Indexes() {
		if entry.Field() == field {
			values = append(values, entry.Value())
		}
	}
	return values
}

// AddLink links this object to another, replacing any existing equal link.
func (o *Object) AddLink(link Link) {
	o.metadata.AddLink(link)
}

// RemoveLink removes all links equal to the target; a no-op when absent.
func (o *Object) RemoveLink(link Link) {
	o.metadata.RemoveLink(link)
}

// SetLinks replaces all links. Use NewLink, NewTaggedLink, ObjectLink or
// TaggedObjectLink to normalize the various link sources.
func (o *Object) SetLinks(links ...Link) {
	o.metadata.SetLinks(links...)
}

// Links returns the object's links, each bound to this object's client so
// the linked objects can be fetched.
func (o *Object) Links() []Link {
	links := o.metadata.Links()
	for i := range links {
		links[i].client = o.bucket.client
	}
	return links
}

// UserMeta returns the user-defined metadata entries.
func (o *Object) UserMeta() map[string]string {
	return o.metadata.UserMeta()
}

// SetUserMeta replaces the user-defined metadata.
func (o *Object) SetUserMeta(userMeta map[string]string) {
	o.metadata.SetUserMeta(userMeta)
}

// SetUserMetaEntry sets a single user-metadata entry.
func (o *Object) SetUserMetaEntry(key, value string) {
	o.metadata.normalize()
	o.metadata.userMeta[key] = value
}

// UserMetaEntry returns a single user-metadata entry and whether it exists.
func (o *Object) UserMetaEntry(key string) (string, bool) {
	o.metadata.normalize()
	value, ok := o.metadata.userMeta[key]
	return value, ok
}

// RemoveUserMetaEntry removes a single user-metadata entry. Removing a key
// that does not exist is a no-op.
func (o *Object) RemoveUserMetaEntry(key string) {
	o.metadata.normalize()
	delete(o.metadata.userMeta, key)
}
