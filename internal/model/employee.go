package model

// EmployeeRecord is a raw annual payroll record. Fields holds the named
// yearly amounts (Basic Salary, HRA, ...) together with any auxiliary
// descriptive fields (designation, leave balance, ...) carried over from
// the source data. Records are immutable after load.
type EmployeeRecord struct {
	EmployeeID string                 `json:"employee_id"`
	Fields     map[string]interface{} `json:"fields"`
}
