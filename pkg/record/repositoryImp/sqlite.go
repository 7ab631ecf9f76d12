package repositoryImp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"farmhub/entities"
	"farmhub/pkg/record"
)

var errIDTaken = errors.New("id taken")

type sqliteRepo struct {
	db    *gorm.DB
	table string
}

// NewSQLite returns a backend over the local gorm store. All entity tables
// share one stored_records table keyed by (tbl, id). Replace overwrites the
// whole record, so columns not sent are cleared.
func NewSQLite(db *gorm.DB, table string) record.Backend {
	return &sqliteRepo{db: db, table: table}
}

func (r *sqliteRepo) Table() string                      { return r.table }
func (r *sqliteRepo) Semantics() record.ReplaceSemantics { return record.ReplaceFull }

func (r *sqliteRepo) List(ctx context.Context) ([]record.Record, error) {
	var rows []entities.StoredRecord
	if err := r.db.WithContext(ctx).Where("tbl = ?", r.table).Order("id asc").Find(&rows).Error; err != nil {
		return nil, r.dbErr("list", err)
	}
	out := make([]record.Record, 0, len(rows))
	for i := range rows {
		out = append(out, toRecord(&rows[i]))
	}
	return out, nil
}

func (r *sqliteRepo) Get(ctx context.Context, id int64) (record.Record, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	row, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toRecord(row), nil
}

// Insert assigns max(id)+1 within the table inside one transaction.
func (r *sqliteRepo) Insert(ctx context.Context, rec record.Record) (record.Record, error) {
	row := entities.StoredRecord{Table: r.table, Data: data(rec)}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var max int64
		if err := tx.Model(&entities.StoredRecord{}).
			Where("tbl = ?", r.table).
			Select("COALESCE(MAX(id), 0)").
			Scan(&max).Error; err != nil {
			return err
		}
		row.ID = max + 1
		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, r.dbErr("create", err)
	}
	return toRecord(&row), nil
}

// InsertWithID stores rec under id, which must be unused in the table.
func (r *sqliteRepo) InsertWithID(ctx context.Context, id int64, rec record.Record) (record.Record, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	row := entities.StoredRecord{Table: r.table, ID: id, Data: data(rec)}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&entities.StoredRecord{}).
			Where("id = ? AND tbl = ?", id, r.table).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return errIDTaken
		}
		return tx.Create(&row).Error
	})
	if errors.Is(err, errIDTaken) {
		return nil, fmt.Errorf("%w: %s id %d already exists", record.ErrInvalidArgument, r.table, id)
	}
	if err != nil {
		return nil, r.dbErr("create", err)
	}
	return toRecord(&row), nil
}

func (r *sqliteRepo) Replace(ctx context.Context, id int64, rec record.Record) (record.Record, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	row, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}
	row.Data = data(rec)
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, r.dbErr("update", err)
	}
	return toRecord(row), nil
}

func (r *sqliteRepo) Remove(ctx context.Context, id int64) (bool, error) {
	if err := checkID(id); err != nil {
		return false, err
	}
	res := r.db.WithContext(ctx).Where("id = ? AND tbl = ?", id, r.table).Delete(&entities.StoredRecord{})
	if res.Error != nil {
		return false, r.dbErr("delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return false, record.NewNotFound(r.table, id)
	}
	return true, nil
}

func (r *sqliteRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("%w: %v", record.ErrBackendUnavailable, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: ping: %v", record.ErrBackendUnavailable, err)
	}
	return nil
}

func (r *sqliteRepo) find(ctx context.Context, id int64) (*entities.StoredRecord, error) {
	var row entities.StoredRecord
	err := r.db.WithContext(ctx).Where("id = ? AND tbl = ?", id, r.table).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, record.NewNotFound(r.table, id)
	}
	if err != nil {
		return nil, r.dbErr("get", err)
	}
	return &row, nil
}

func (r *sqliteRepo) dbErr(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %s %s: %w", record.ErrRequestFailed, op, r.table, err)
}

func data(rec record.Record) map[string]any {
	out := make(map[string]any, len(rec))
	for k, v := range rec {
		switch k {
		case record.IDKey, CreatedOnKey, ModifiedOnKey:
		default:
			out[k] = v
		}
	}
	return out
}

func toRecord(row *entities.StoredRecord) record.Record {
	out := make(record.Record, len(row.Data)+3)
	for k, v := range row.Data {
		out[k] = v
	}
	out[record.IDKey] = row.ID
	out[CreatedOnKey] = row.CreatedAt.UTC().Format(time.RFC3339Nano)
	out[ModifiedOnKey] = row.UpdatedAt.UTC().Format(time.RFC3339Nano)
	return out
}
