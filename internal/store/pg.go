package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/slide-archive/histogramd/internal/domain"
	"github.com/slide-archive/histogramd/internal/store/schema"
)

// settingDefaultBins is the key_value_store key holding the default
// bin count used when a submission does not specify one.
const settingDefaultBins = "histogram.default_bins"

// DefaultBinCount is used when no default has been stored.
const DefaultBinCount = 256

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a
// GORM database connection. Zero values fall back to defaults:
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// AutoMigrate creates or updates the schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&schema.Item{},
		&schema.File{},
		&schema.Histogram{},
		&schema.Notification{},
		&schema.KeyValueStore{},
	)
}

// accessScope filters a histogram query down to records the user may
// read. Admins see everything; anonymous callers see public records.
func accessScope(user *domain.User) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if user != nil && user.Admin {
			return db
		}
		publicCond := "(access ->> 'public')::boolean IS TRUE"
		if user == nil {
			return db.Where(publicCond)
		}
		return db.Where(
			publicCond+` OR EXISTS (
				SELECT 1 FROM jsonb_array_elements(access -> 'users') AS grant_entry
				WHERE grant_entry ->> 'userId' = ?
			)`, user.ID)
	}
}

// FindHistograms lists histogram records matching the filter, newest first
func (s *pgStore) FindHistograms(ctx context.Context, filter HistogramFilter) ([]schema.Histogram, uint64, error) {
	query := s.db.WithContext(ctx).Model(&schema.Histogram{}).Scopes(accessScope(filter.User))

	if filter.ItemID != nil {
		query = query.Where("item_id = ?", *filter.ItemID)
	}
	if filter.FileID != nil {
		query = query.Where("file_id = ?", *filter.FileID)
	}
	if filter.JobID != nil {
		query = query.Where("job_id = ?", *filter.JobID)
	}
	if filter.CorrelationToken != nil {
		query = query.Where("correlation_token = ?", *filter.CorrelationToken)
	}
	if filter.Bins != nil {
		query = query.Where("bins = ?", *filter.Bins)
	}
	if filter.Label != nil {
		query = query.Where("label = ?", *filter.Label)
	}
	if filter.Bitmask != nil {
		query = query.Where("bitmask = ?", *filter.Bitmask)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count histograms: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	orderCol := "created_at"
	if filter.Sort == "updated" {
		orderCol = "updated_at"
	}
	query = query.Order(orderCol + " DESC").Order("id DESC").Limit(limit).Offset(int(filter.Offset)) //nolint:gosec,G115

	var histograms []schema.Histogram
	if err := query.Find(&histograms).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list histograms: %w", err)
	}

	return histograms, uint64(total), nil //nolint:gosec,G115
}

// GetHistogram retrieves a histogram record by ID
func (s *pgStore) GetHistogram(ctx context.Context, id string) (*schema.Histogram, error) {
	var histogram schema.Histogram
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&histogram).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get histogram: %w", err)
	}
	return &histogram, nil
}

// CreateHistogram mints a provisional (expected) histogram record
func (s *pgStore) CreateHistogram(ctx context.Context, input CreateHistogramInput) (*schema.Histogram, error) {
	histogram := schema.Histogram{
		ID:               ulid.Make().String(),
		ItemID:           input.ItemID,
		Label:            input.Label,
		Bitmask:          input.Bitmask,
		Bins:             input.Bins,
		Notify:           input.Notify,
		Expected:         true,
		CorrelationToken: &input.CorrelationToken,
		JobID:            &input.JobID,
		Access:           input.Access,
	}
	if input.WorkflowID != "" {
		histogram.WorkflowID = &input.WorkflowID
	}

	if err := s.db.WithContext(ctx).Create(&histogram).Error; err != nil {
		return nil, fmt.Errorf("failed to create histogram: %w", err)
	}
	return &histogram, nil
}

// SaveHistogram persists changes to an existing histogram record
func (s *pgStore) SaveHistogram(ctx context.Context, histogram *schema.Histogram) error {
	if err := s.db.WithContext(ctx).Save(histogram).Error; err != nil {
		return fmt.Errorf("failed to save histogram: %w", err)
	}
	return nil
}

// RemoveHistogram deletes a record and, unless keepFile, its result file row
func (s *pgStore) RemoveHistogram(ctx context.Context, id string, keepFile bool) (*RemovedFile, error) {
	var removed *RemovedFile
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var histogram schema.Histogram
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&histogram).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("failed to lock histogram: %w", err)
		}

		if !keepFile && histogram.FileID != nil {
			var file schema.File
			err := tx.Where("id = ?", *histogram.FileID).First(&file).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to get result file: %w", err)
			}
			if err == nil {
				if err := tx.Delete(&file).Error; err != nil {
					return fmt.Errorf("failed to delete result file: %w", err)
				}
				removed = &RemovedFile{FileID: file.ID, StorageKey: file.StorageKey}
			}
		}

		if err := tx.Delete(&histogram).Error; err != nil {
			return fmt.Errorf("failed to delete histogram: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// SetHistogramAccess replaces the ACL on a histogram record
func (s *pgStore) SetHistogramAccess(ctx context.Context, id string, access []byte) error {
	result := s.db.WithContext(ctx).Model(&schema.Histogram{}).
		Where("id = ?", id).
		Update("access", access)
	if result.Error != nil {
		return fmt.Errorf("failed to set histogram access: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// HistogramsByToken lists records carrying the given correlation
// token. Two rows are enough for every caller to distinguish a single
// match from an ambiguous one.
func (s *pgStore) HistogramsByToken(ctx context.Context, token string) ([]schema.Histogram, error) {
	var histograms []schema.Histogram
	err := s.db.WithContext(ctx).
		Where("correlation_token = ?", token).
		Limit(2).
		Find(&histograms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get histograms by token: %w", err)
	}
	return histograms, nil
}

// HistogramsByItem lists records derived from the given item
func (s *pgStore) HistogramsByItem(ctx context.Context, itemID string) ([]schema.Histogram, error) {
	var histograms []schema.Histogram
	err := s.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Find(&histograms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get histograms by item: %w", err)
	}
	return histograms, nil
}

// HistogramsByFile lists records whose result file is the given file
func (s *pgStore) HistogramsByFile(ctx context.Context, fileID string) ([]schema.Histogram, error) {
	var histograms []schema.Histogram
	err := s.db.WithContext(ctx).
		Where("file_id = ?", fileID).
		Find(&histograms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get histograms by file: %w", err)
	}
	return histograms, nil
}

// ResolveUpload binds an uploaded result file to the single record
// holding the token. Matching rows are locked for the duration of the
// transaction so two deliveries of the same token cannot both resolve.
func (s *pgStore) ResolveUpload(ctx context.Context, token string, fileID string) (*schema.Histogram, int, error) {
	var resolved *schema.Histogram
	var matches int

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var histograms []schema.Histogram
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("correlation_token = ? AND expected = ?", token, true).
			Find(&histograms).Error
		if err != nil {
			return fmt.Errorf("failed to lock histograms by token: %w", err)
		}

		matches = len(histograms)
		if matches != 1 {
			return nil
		}

		histogram := histograms[0]
		histogram.FileID = &fileID
		histogram.Expected = false
		if err := tx.Save(&histogram).Error; err != nil {
			return fmt.Errorf("failed to resolve histogram: %w", err)
		}
		resolved = &histogram
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return resolved, matches, nil
}

// GetItem retrieves an item by ID
func (s *pgStore) GetItem(ctx context.Context, id string) (*schema.Item, error) {
	var item schema.Item
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return &item, nil
}

// CreateItem creates an item
func (s *pgStore) CreateItem(ctx context.Context, item *schema.Item) error {
	if item.ID == "" {
		item.ID = ulid.Make().String()
	}
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

// GetFile retrieves a file by ID
func (s *pgStore) GetFile(ctx context.Context, id string) (*schema.File, error) {
	var file schema.File
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&file).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get file: %w", err)
	}
	return &file, nil
}

// CreateFile creates a file row and returns it
func (s *pgStore) CreateFile(ctx context.Context, input CreateFileInput) (*schema.File, error) {
	file := schema.File{
		ID:         ulid.Make().String(),
		ItemID:     input.ItemID,
		Name:       input.Name,
		MimeType:   input.MimeType,
		SizeBytes:  input.SizeBytes,
		StorageKey: input.StorageKey,
		Checksum:   input.Checksum,
		CreatorID:  input.CreatorID,
	}
	if err := s.db.WithContext(ctx).Create(&file).Error; err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return &file, nil
}

// RemoveFile deletes a file row
func (s *pgStore) RemoveFile(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&schema.File{}).Error; err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// NewestImageFile returns the most recent file of an item whose media
// type is an image or raw binary. Scanner exports often arrive typed
// as application/octet-stream.
func (s *pgStore) NewestImageFile(ctx context.Context, itemID string) (*schema.File, error) {
	var file schema.File
	err := s.db.WithContext(ctx).
		Where("item_id = ? AND (mime_type LIKE ? OR mime_type = ?)",
			itemID, "image/%", "application/octet-stream").
		Order("created_at DESC").
		Order("id DESC").
		First(&file).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get newest image file: %w", err)
	}
	return &file, nil
}

// CreateNotification persists a short-lived user notification
func (s *pgStore) CreateNotification(ctx context.Context, input CreateNotificationInput) error {
	expiry := input.ExpirySec
	if expiry <= 0 {
		expiry = 30
	}
	notification := schema.Notification{
		ID:        ulid.Make().String(),
		UserID:    input.UserID,
		Type:      input.Type,
		Data:      input.Data,
		ExpiresAt: time.Now().Add(time.Duration(expiry) * time.Second),
	}
	if err := s.db.WithContext(ctx).Create(&notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// DefaultBins reads the configured default bin count
func (s *pgStore) DefaultBins(ctx context.Context) (int, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", settingDefaultBins).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DefaultBinCount, nil
		}
		return 0, fmt.Errorf("failed to get default bins: %w", err)
	}

	bins, err := strconv.Atoi(kv.Value)
	if err != nil {
		return 0, fmt.Errorf("failed to parse default bins: %w", err)
	}
	return bins, nil
}

// SetDefaultBins stores the default bin count, rejecting negatives
func (s *pgStore) SetDefaultBins(ctx context.Context, bins int) error {
	if bins < 0 {
		return domain.NewValidationError("bins", "default bins must not be negative")
	}

	kv := schema.KeyValueStore{
		Key:   settingDefaultBins,
		Value: strconv.Itoa(bins),
	}
	if err := s.db.WithContext(ctx).Save(&kv).Error; err != nil {
		return fmt.Errorf("failed to set default bins: %w", err)
	}
	return nil
}
