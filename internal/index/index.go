package index

import (
	"os"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Entry mirrors one stored file. The table lives in an in-memory sqlite
// database: the upload directory stays the source of truth, and the
// table is rebuilt from it at startup and at the start of every sweep.
type Entry struct {
	Name    string `gorm:"primaryKey"`
	Size    int64
	ModTime time.Time
}

// Index is an advisory lookup table over the upload directory. Handlers
// update it best-effort; the sweeper resyncs it before querying, so
// files placed or removed behind the service's back are still seen.
type Index struct {
	db *gorm.DB
}

// Open creates a fresh in-memory database. Each Index owns its own
// named database so independent instances never share state.
func Open() (*Index, error) {
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, err
	}
	return &Index{db: db}, nil
}

// Rebuild replaces the table contents with the given directory listing.
func (ix *Index) Rebuild(files []os.FileInfo) error {
	err := ix.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Entry{}).Error
	if err != nil {
		return err
	}

	for _, fi := range files {
		e := Entry{Name: fi.Name(), Size: fi.Size(), ModTime: fi.ModTime()}
		if err := ix.db.Create(&e).Error; err != nil {
			return err
		}
	}
	return nil
}

// Put records a stored file, replacing any previous entry of that name.
func (ix *Index) Put(name string, size int64, modTime time.Time) error {
	return ix.db.Save(&Entry{Name: name, Size: size, ModTime: modTime}).Error
}

// Remove drops a file's entry. Removing an unknown name is a no-op.
func (ix *Index) Remove(name string) error {
	return ix.db.Delete(&Entry{Name: name}).Error
}

// ExpiredBefore returns the names of files last modified strictly
// before cutoff. A file exactly at the cutoff is kept.
func (ix *Index) ExpiredBefore(cutoff time.Time) ([]string, error) {
	var names []string
	err := ix.db.Model(&Entry{}).
		Where("mod_time < ?", cutoff).
		Order("name").
		Pluck("name", &names).Error
	return names, err
}
