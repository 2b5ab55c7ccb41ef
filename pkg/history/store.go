package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/travigo/modeadvisor/pkg/ctdf"
	"github.com/travigo/modeadvisor/pkg/database"
)

const RecentLimit = 300

var ErrUnknownStore = errors.New("unknown history store")

// Store persists trip records. List returns newest first; an empty feature lists every feature.
type Store interface {
	Add(ctx context.Context, record *Record) error
	List(ctx context.Context, feature ctdf.Feature, limit int) ([]Record, error)
	Delete(ctx context.Context, id int64) error
	Clear(ctx context.Context) error
}

// NewStore connects the backing database for kind (memory, mongodb or sqlite)
func NewStore(kind string) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "mongodb":
		if err := database.ConnectMongoDB(); err != nil {
			return nil, err
		}

		return NewMongoStore(database.GetCollection(database.SearchesCollection)), nil
	case "sqlite":
		if err := database.ConnectSQLite(); err != nil {
			return nil, err
		}

		return NewSQLiteStore(database.GlobalGorm)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStore, kind)
	}
}
