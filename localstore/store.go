// Package localstore is an embedded, single-node implementation of the
// kv.Transport contract on SQLite. It keeps every causally concurrent
// version of a key as its own row, prunes versions superseded by a write's
// vector clock, and retains tombstones so deleted keys still answer reads
// with a clock.
//
// A single embedded replica acknowledges everything, so quorum parameters
// are accepted and logged but have no effect here.
package localstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stratakv/strata/kv"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrKeyExists reports a failed if-none-match precondition: the key is
	// already stored.
	ErrKeyExists = errors.New("localstore: key already exists")

	errMissingDatabase = errors.New("database handle is required")
)

// Config carries the dependencies for a Store.
type Config struct {
	// Database is the GORM handle. Required; the objectVersion schema must
	// be migrated (Open does both).
	Database *gorm.DB
	// Logger receives structured write/prune logs. Optional.
	Logger *zap.Logger
	// NodeID identifies this store when it has to advance a clock itself,
	// such as for tombstones of never-written keys. Optional; defaults to a
	// generated UUID.
	NodeID string
	// Clock supplies the current time. Optional; defaults to time.Now.
	Clock func() time.Time
}

// Store implements kv.Transport on an embedded SQLite database.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
	nodeID string
	clock  func() time.Time
}

// New validates the configuration and returns a Store.
func New(cfg Config) (*Store, error) {
	if cfg.Database == nil {
		return nil, fmt.Errorf("localstore: new store: %w", errMissingDatabase)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	nodeID := cfg.NodeID
	if nodeID == "" {
		nodeID = uuid.NewString()
	}

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Store{db: cfg.Database, logger: logger, nodeID: nodeID, clock: clock}, nil
}

// PutNew stores an object under a generated key.
func (s *Store) PutNew(ctx context.Context, obj *kv.Object, opts kv.StoreOptions) (kv.PutNewResult, error) {
	key := uuid.NewString()
	newClock, err := s.writeVersion(ctx, obj, key, opts.IfNoneMatch)
	if err != nil {
		return kv.PutNewResult{}, err
	}
	return kv.PutNewResult{
		Key:      key,
		VClock:   newClock,
		Metadata: obj.Metadata().Clone(),
	}, nil
}

// Put updates an object by key. When a body is requested, the returned
// result carries every surviving version, so a write that joined a conflict
// comes back as siblings.
func (s *Store) Put(ctx context.Context, obj *kv.Object, opts kv.StoreOptions) (*kv.RawResult, error) {
	if _, err := s.writeVersion(ctx, obj, obj.Key(), opts.IfNoneMatch); err != nil {
		return nil, err
	}
	if !opts.ReturnBody {
		return nil, nil
	}
	return s.Get(ctx, obj, kv.GetOptions{R: kv.QuorumOne})
}

// Get reads all versions of a key, or the single version named by a vtag.
func (s *Store) Get(ctx context.Context, obj *kv.Object, opts kv.GetOptions) (*kv.RawResult, error) {
	rows, err := s.readVersions(ctx, obj.Bucket().Name(), obj.Key(), opts.VTag)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	s.logger.Debug("object read",
		zap.String("bucket", obj.Bucket().Name()),
		zap.String("key", obj.Key()),
		zap.Int("versions", len(rows)),
		zap.Int("r", int(opts.R)))
	return buildResult(rows, true)
}

// Head matches Get without payload bytes. A conflicted key read without a
// vtag answers with the version-tag list, forcing sibling-scoped reads.
func (s *Store) Head(ctx context.Context, obj *kv.Object, opts kv.GetOptions) (*kv.RawResult, error) {
	rows, err := s.readVersions(ctx, obj.Bucket().Name(), obj.Key(), opts.VTag)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	if opts.VTag == "" {
		var liveTags []string
		for _, row := range rows {
			if !row.Tombstone {
				liveTags = append(liveTags, row.VTag)
			}
		}
		if len(liveTags) > 1 {
			return kv.VersionTagsResult(liveTags...), nil
		}
	}
	return buildResult(rows, false)
}

// Delete replaces every version of the key with a single tombstone carrying
// the merged, advanced clock.
func (s *Store) Delete(ctx context.Context, obj *kv.Object, opts kv.DeleteOptions) error {
	bucket := obj.Bucket().Name()
	key := obj.Key()
	writer := obj.Bucket().Client().ID()
	if writer == "" {
		writer = s.nodeID
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := listVersions(tx, bucket, key, "")
		if err != nil {
			return err
		}
		merged, err := mergeClocks(rows)
		if err != nil {
			return err
		}
		merged.Tick(writer)

		if err := tx.Where("bucket = ? AND object_key = ?", bucket, key).
			Delete(&objectVersion{}).Error; err != nil {
			return err
		}
		tombstone := objectVersion{
			Bucket:        bucket,
			ObjectKey:     key,
			VTag:          uuid.NewString(),
			VClock:        merged.Bytes(),
			Tombstone:     true,
			MetadataJSON:  "{}",
			StoredAtNanos: s.clock().UnixNano(),
		}
		return tx.Create(&tombstone).Error
	})
	if err != nil {
		return err
	}

	s.logger.Debug("object deleted",
		zap.String("bucket", bucket),
		zap.String("key", key),
		zap.Int("rw", int(opts.RW)))
	return nil
}

// writeVersion inserts a new version whose clock descends from the
// object's, pruning every stored version the new clock supersedes.
// Causally concurrent versions survive as siblings.
func (s *Store) writeVersion(ctx context.Context, obj *kv.Object, key string, ifNoneMatch bool) ([]byte, error) {
	bucket := obj.Bucket().Name()

	data, err := obj.EncodedValue()
	if err != nil {
		return nil, err
	}
	metadataJSON, err := encodeMetadata(obj.Metadata())
	if err != nil {
		return nil, err
	}

	newClock, err := parseClock(obj.VClock())
	if err != nil {
		return nil, fmt.Errorf("localstore: parse submitted clock: %w", err)
	}
	writer := obj.Bucket().Client().ID()
	if writer == "" {
		writer = s.nodeID
	}
	newClock.Tick(writer)

	pruned := 0
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := listVersions(tx, bucket, key, "")
		if err != nil {
			return err
		}
		if ifNoneMatch {
			for _, row := range rows {
				if !row.Tombstone {
					return fmt.Errorf("%w: %s/%s", ErrKeyExists, bucket, key)
				}
			}
		}
		for _, row := range rows {
			rowClock, err := parseClock(row.VClock)
			if err != nil {
				return err
			}
			if descends(newClock, rowClock) {
				if err := tx.Where("bucket = ? AND object_key = ? AND vtag = ?",
					bucket, key, row.VTag).Delete(&objectVersion{}).Error; err != nil {
					return err
				}
				pruned++
			}
		}
		version := objectVersion{
			Bucket:        bucket,
			ObjectKey:     key,
			VTag:          uuid.NewString(),
			VClock:        newClock.Bytes(),
			MetadataJSON:  metadataJSON,
			Data:          data,
			StoredAtNanos: s.clock().UnixNano(),
		}
		return tx.Create(&version).Error
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("version written",
		zap.String("bucket", bucket),
		zap.String("key", key),
		zap.String("writer", writer),
		zap.Int("pruned", pruned))
	return newClock.Bytes(), nil
}

func (s *Store) readVersions(ctx context.Context, bucket, key, vtag string) ([]objectVersion, error) {
	return listVersions(s.db.WithContext(ctx), bucket, key, vtag)
}

func listVersions(tx *gorm.DB, bucket, key, vtag string) ([]objectVersion, error) {
	var rows []objectVersion
	query := tx.Where("bucket = ? AND object_key = ?", bucket, key)
	if vtag != "" {
		query = query.Where("vtag = ?", vtag)
	}
	if err := query.Order("stored_at_ns ASC, vtag ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func buildResult(rows []objectVersion, withData bool) (*kv.RawResult, error) {
	merged, err := mergeClocks(rows)
	if err != nil {
		return nil, err
	}
	contents := make([]kv.VersionContent, 0, len(rows))
	for _, row := range rows {
		if row.Tombstone {
			continue
		}
		metadata, err := decodeMetadata(row.MetadataJSON)
		if err != nil {
			return nil, err
		}
		content := kv.VersionContent{Metadata: metadata}
		if withData {
			content.Data = row.Data
		}
		contents = append(contents, content)
	}
	return kv.VersionsResult(merged.Bytes(), contents...), nil
}
