package kv

import "fmt"

// populate reconciles the object with a transport read result. The object
// is cleared first, so afterwards its state reflects exactly the response,
// never a merge of old and new. withPayload is false for metadata-only
// reads, which must leave the payload empty even when the transport carried
// data.
func (o *Object) populate(result *RawResult, withPayload bool) error {
	o.Clear()
	if result == nil {
		return nil
	}

	switch result.Kind {
	case ResultNotFound:
		return nil

	case ResultVersionTags:
		// A single tag is no conflict; sibling lists of at most one entry
		// normalize to empty.
		if len(result.VTags) <= 1 {
			return nil
		}
		shared := &siblingList{slots: make([]siblingSlot, len(result.VTags))}
		for i, tag := range result.VTags {
			shared.slots[i] = siblingSlot{vtag: tag}
		}
		o.siblings = shared
		return nil

	case ResultVersions:
		return o.populateVersions(result, withPayload)

	default:
		return fmt.Errorf("%w: kind %d", ErrProtocolDecode, result.Kind)
	}
}

func (o *Object) populateVersions(result *RawResult, withPayload bool) error {
	o.vclock = result.VClock
	if len(result.Contents) == 0 {
		// Tombstone: the clock is kept but the object does not exist.
		return nil
	}

	if err := o.applyContent(result.Contents[0], withPayload); err != nil {
		return err
	}
	if len(result.Contents) == 1 {
		return nil
	}

	// Concurrent versions: the first content is this object, the rest
	// become peers that share its identity and one sibling list.
	siblings := []*Object{o}
	for _, content := range result.Contents[1:] {
		sibling := newObject(o.bucket, o.key, o.structured)
		sibling.vclock = o.vclock
		if err := sibling.applyContent(content, withPayload); err != nil {
			return err
		}
		siblings = append(siblings, sibling)
	}

	shared := &siblingList{slots: make([]siblingSlot, len(siblings))}
	for i, sibling := range siblings {
		shared.slots[i] = siblingSlot{obj: sibling}
	}
	for _, sibling := range siblings {
		sibling.siblings = shared
	}
	return nil
}

func (o *Object) applyContent(content VersionContent, withPayload bool) error {
	metadata := content.Metadata
	if metadata == nil {
		metadata = NewMetadata()
	} else {
		metadata = metadata.Clone()
	}
	o.SetMetadata(metadata)
	o.exists = true
	if withPayload && content.Data != nil {
		return o.SetEncodedValue(content.Data)
	}
	return nil
}
