package recordstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/AnuragRai017/paybot/internal/model"
	appErr "github.com/AnuragRai017/paybot/internal/pkg/errors"
)

// jsonStore serves records from the employee database file produced by the
// offline spreadsheet conversion. The file maps employee id to a flat
// object of record fields.
type jsonStore struct {
	records map[string]*model.EmployeeRecord
}

func NewJSONStore(path string) (Provider, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open employee database: %w", err)
	}
	defer file.Close()

	var raw map[string]map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode employee database: %w", err)
	}
	records := make(map[string]*model.EmployeeRecord, len(raw))
	for id, fields := range raw {
		records[id] = &model.EmployeeRecord{EmployeeID: id, Fields: fields}
	}
	return &jsonStore{records: records}, nil
}

func (s *jsonStore) Get(ctx context.Context, employeeID string) (*model.EmployeeRecord, error) {
	record, ok := s.records[employeeID]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	return record, nil
}

func (s *jsonStore) IDs(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
