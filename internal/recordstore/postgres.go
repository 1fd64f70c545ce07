package recordstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/didi/gendry/builder"

	"github.com/AnuragRai017/paybot/internal/model"
	"github.com/AnuragRai017/paybot/internal/pkg/dbutil"
	appErr "github.com/AnuragRai017/paybot/internal/pkg/errors"
)

// postgresStore snapshots the employee_records table (employee_id text,
// fields jsonb) at construction, matching the load-once contract of the
// json store.
type postgresStore struct {
	records map[string]*model.EmployeeRecord
}

func NewPostgresStore(db *sql.DB) (Provider, error) {
	sqlStr, args, err := builder.BuildSelect("employee_records", nil, []string{"employee_id", "fields"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("load employee records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := make(map[string]*model.EmployeeRecord)
	for rows.Next() {
		var id string
		var fieldsJSON []byte
		if err := rows.Scan(&id, &fieldsJSON); err != nil {
			return nil, err
		}
		fields := map[string]interface{}{}
		if err := json.Unmarshal(fieldsJSON, &fields); err != nil {
			return nil, fmt.Errorf("decode record fields for %s: %w", id, err)
		}
		records[id] = &model.EmployeeRecord{EmployeeID: id, Fields: fields}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &postgresStore{records: records}, nil
}

func (s *postgresStore) Get(ctx context.Context, employeeID string) (*model.EmployeeRecord, error) {
	record, ok := s.records[employeeID]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	return record, nil
}

func (s *postgresStore) IDs(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
