package repositoryImp

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"farmhub/pkg/record"
	"farmhub/pkg/recordapi"
)

// Backend kinds accepted by NewFactory.
const (
	KindRemote = "remote"
	KindMock   = "mock"
	KindSQLite = "sqlite"
)

// Factory builds the backend for one schema.
type Factory func(schema *record.Schema) record.Backend

// MemoryFactory seeds each table from dataset. Every call gets its own copy.
func MemoryFactory(dataset map[string][]record.Record, latency time.Duration) Factory {
	return func(s *record.Schema) record.Backend {
		return NewMemory(s.Table, dataset[s.Table], latency)
	}
}

func RemoteFactory(c *recordapi.Client, pageSize int) Factory {
	return func(s *record.Schema) record.Backend { return NewRemote(c, s, pageSize) }
}

func SQLiteFactory(db *gorm.DB) Factory {
	return func(s *record.Schema) record.Backend { return NewSQLite(db, s.Table) }
}

// Deps carries what each backend kind needs; only the selected kind's
// fields are used.
type Deps struct {
	Dataset  map[string][]record.Record
	Latency  time.Duration
	Client   *recordapi.Client
	PageSize int
	DB       *gorm.DB
}

func NewFactory(kind string, d Deps) (Factory, error) {
	switch kind {
	case KindMock:
		return MemoryFactory(d.Dataset, d.Latency), nil
	case KindRemote:
		if d.Client == nil {
			return nil, fmt.Errorf("backend %q: record api client is not configured", kind)
		}
		return RemoteFactory(d.Client, d.PageSize), nil
	case KindSQLite:
		if d.DB == nil {
			return nil, fmt.Errorf("backend %q: database is not open", kind)
		}
		return SQLiteFactory(d.DB), nil
	}
	return nil, fmt.Errorf("unknown backend %q (want remote, mock or sqlite)", kind)
}
