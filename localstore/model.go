package localstore

// objectVersion is one stored version of a key. Concurrent writes leave
// multiple rows per (bucket, key); a tombstone is a single retained row
// carrying only the vector clock.
type objectVersion struct {
	Bucket        string `gorm:"column:bucket;primaryKey;size:190;not null"`
	ObjectKey     string `gorm:"column:object_key;primaryKey;size:190;not null"`
	VTag          string `gorm:"column:vtag;primaryKey;size:64;not null"`
	VClock        []byte `gorm:"column:vclock;not null"`
	Tombstone     bool   `gorm:"column:tombstone;not null;default:false"`
	MetadataJSON  string `gorm:"column:metadata_json;type:text;not null"`
	Data          []byte `gorm:"column:data"`
	StoredAtNanos int64  `gorm:"column:stored_at_ns;not null;index:idx_versions_order"`
}

// TableName provides the explicit table binding for GORM.
func (objectVersion) TableName() string {
	return "object_versions"
}
