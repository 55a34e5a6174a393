package localstore

import (
	"encoding/json"
	"fmt"

	"github.com/stratakv/strata/kv"
)

// metadataDoc is the stored JSON form of object metadata.
type metadataDoc struct {
	ContentType *string           `json:"content_type,omitempty"`
	UserMeta    map[string]string `json:"user_meta,omitempty"`
	Indexes     []indexDoc        `json:"indexes,omitempty"`
	Links       []linkDoc         `json:"links,omitempty"`
}

type indexDoc struct {
	Field       string  `json:"field"`
	StringValue *string `json:"string_value,omitempty"`
	IntValue    *int64  `json:"int_value,omitempty"`
}

type linkDoc struct {
	Bucket string  `json:"bucket"`
	Key    string  `json:"key"`
	Tag    *string `json:"tag,omitempty"`
}

func encodeMetadata(metadata *kv.Metadata) (string, error) {
	doc := metadataDoc{
		UserMeta: metadata.UserMeta(),
	}
	if contentType, ok := metadata.ContentType(); ok {
		doc.ContentType = &contentType
	}
	for _, entry := range metadata.Indexes() {
		item := indexDoc{Field: entry.Field()}
		switch value := entry.Value().(type) {
		case string:
			item.StringValue = &value
		case int64:
			item.IntValue = &value
		default:
			return "", fmt.Errorf("localstore: unsupported index value %T", entry.Value())
		}
		doc.Indexes = append(doc.Indexes, item)
	}
	for _, link := range metadata.Links() {
		item := linkDoc{Bucket: link.Bucket(), Key: link.Key()}
		if tag, ok := link.Tag(); ok {
			item.Tag = &tag
		}
		doc.Links = append(doc.Links, item)
	}
	encoded, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func decodeMetadata(stored string) (*kv.Metadata, error) {
	var doc metadataDoc
	if err := json.Unmarshal([]byte(stored), &doc); err != nil {
		return nil, fmt.Errorf("localstore: decode metadata: %w", err)
	}

	metadata := kv.NewMetadata()
	if doc.ContentType != nil {
		metadata.SetContentType(*doc.ContentType)
	}
	if doc.UserMeta != nil {
		metadata.SetUserMeta(doc.UserMeta)
	}

	entries := make([]kv.IndexEntry, 0, len(doc.Indexes))
	for _, item := range doc.Indexes {
		var value any
		switch {
		case item.StringValue != nil:
			value = *item.StringValue
		case item.IntValue != nil:
			value = *item.IntValue
		default:
			return nil, fmt.Errorf("localstore: index entry for %q has no value", item.Field)
		}
		entry, err := kv.NewIndexEntry(item.Field, value)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	metadata.SetIndexes(entries...)

	links := make([]kv.Link, 0, len(doc.Links))
	for _, item := range doc.Links {
		if item.Tag != nil {
			links = append(links, kv.NewTaggedLink(item.Bucket, item.Key, *item.Tag))
		} else {
			links = append(links, kv.NewLink(item.Bucket, item.Key))
		}
	}
	metadata.SetLinks(links...)

	return metadata, nil
}
