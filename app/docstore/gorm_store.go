package docstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DocumentRow is the relational layout used by GormStore: one row per
// document, keyed by collection path and document id, with a JSON body.
type DocumentRow struct {
	Path      string    `gorm:"primaryKey;size:191"`
	DocID     string    `gorm:"primaryKey;size:191;column:doc_id"`
	Data      string    `gorm:"type:longtext;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (DocumentRow) TableName() string {
	return "documents"
}

// GormStore keeps documents in a SQL database through gorm.
type GormStore struct {
	db   *gorm.DB
	feed *Feed
}

func NewGormStore(db *gorm.DB) *GormStore {
	s := &GormStore{db: db}
	s.feed = newFeed(s.list)
	return s
}

func rowToDocument(row DocumentRow) Document {
	return Document{ID: row.DocID, CreateTime: row.CreatedAt, UpdateTime: row.UpdatedAt, data: []byte(row.Data)}
}

func (s *GormStore) list(ctx context.Context, path Path) ([]Document, error) {
	var rows []DocumentRow
	err := s.db.WithContext(ctx).
		Where("path = ?", string(path)).
		Order("doc_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	docs := make([]Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, rowToDocument(row))
	}
	return docs, nil
}

func (s *GormStore) check(path Path, id string) error {
	if err := path.Validate(); err != nil {
		return err
	}
	return validateID(id)
}

func (s *GormStore) Get(ctx context.Context, path Path, id string) (Document, error) {
	if err := s.check(path, id); err != nil {
		return Document{}, err
	}
	var row DocumentRow
	err := s.db.WithContext(ctx).First(&row, "path = ? AND doc_id = ?", string(path), id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, err
	}
	return rowToDocument(row), nil
}

func upsertRow(tx *gorm.DB, path Path, id string, raw []byte, now time.Time) error {
	row := DocumentRow{Path: string(path), DocID: id, Data: string(raw), CreatedAt: now, UpdatedAt: now}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "path"}, {Name: "doc_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row).Error
}

func (s *GormStore) Set(ctx context.Context, path Path, id string, doc any) error {
	if err := s.check(path, id); err != nil {
		return err
	}
	raw, err := encode(doc)
	if err != nil {
		return err
	}
	if err := upsertRow(s.db.WithContext(ctx), path, id, raw, time.Now()); err != nil {
		return err
	}
	s.feed.notify(ctx, path)
	return nil
}

func (s *GormStore) Create(ctx context.Context, path Path, id string, doc any) error {
	if err := s.check(path, id); err != nil {
		return err
	}
	raw, err := encode(doc)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&DocumentRow{}).
			Where("path = ? AND doc_id = ?", string(path), id).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyExists
		}
		now := time.Now()
		return tx.Create(&DocumentRow{Path: string(path), DocID: id, Data: string(raw), CreatedAt: now, UpdatedAt: now}).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyExists
	}
	if err != nil {
		return err
	}
	s.feed.notify(ctx, path)
	return nil
}

func (s *GormStore) Add(ctx context.Context, path Path, doc any) (string, error) {
	id := uuid.NewString()
	if err := s.Create(ctx, path, id, doc); err != nil {
		return "", err
	}
	return id, nil
}

func (s *GormStore) Update(ctx context.Context, path Path, id string, updates ...Update) error {
	if err := s.check(path, id); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row DocumentRow
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&row, "path = ? AND doc_id = ?", string(path), id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		raw, err := applyUpdates([]byte(row.Data), updates)
		if err != nil {
			return err
		}
		return tx.Model(&DocumentRow{}).
			Where("path = ? AND doc_id = ?", string(path), id).
			Updates(map[string]interface{}{"data": string(raw), "updated_at": time.Now()}).Error
	})
	if err != nil {
		return err
	}
	s.feed.notify(ctx, path)
	return nil
}

func (s *GormStore) Delete(ctx context.Context, path Path, id string) error {
	if err := s.check(path, id); err != nil {
		return err
	}
	res := s.db.WithContext(ctx).
		Where("path = ? AND doc_id = ?", string(path), id).
		Delete(&DocumentRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		s.feed.notify(ctx, path)
	}
	return nil
}

// Query filters in process; the JSON body is opaque to the SQL layer.
func (s *GormStore) Query(ctx context.Context, path Path, filters ...Filter) ([]Document, error) {
	if err := path.Validate(); err != nil {
		return nil, err
	}
	docs, err := s.list(ctx, path)
	if err != nil {
		return nil, err
	}
	out := docs[:0]
	for _, d := range docs {
		ok, err := matches(d.data, filters)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *GormStore) Batch(ctx context.Context, ops ...BatchOp) error {
	if err := validateOps(ops); err != nil {
		return err
	}
	encoded := make([][]byte, len(ops))
	for i, op := range ops {
		if op.delete {
			continue
		}
		raw, err := encode(op.Doc)
		if err != nil {
			return err
		}
		encoded[i] = raw
	}
	paths := make([]Path, 0, len(ops))
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		for i, op := range ops {
			paths = append(paths, op.Path)
			if op.delete {
				if err := tx.Where("path = ? AND doc_id = ?", string(op.Path), op.ID).
					Delete(&DocumentRow{}).Error; err != nil {
					return err
				}
				continue
			}
			if err := upsertRow(tx, op.Path, op.ID, encoded[i], now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.feed.notify(ctx, paths...)
	return nil
}

func (s *GormStore) Subscribe(ctx context.Context, path Path) (*Subscription, error) {
	return s.feed.subscribe(ctx, path)
}

func (s *GormStore) Close(context.Context) error {
	s.feed.closeAll()
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
