// Package model defines the domain records the payroll example moves through
// its chunk pipeline.
package model

// TimesheetEntry is one employee's reported hours for a pay period, as read
// from the timesheet source.
type TimesheetEntry struct {
	// EmployeeID identifies the employee the entry belongs to.
	EmployeeID string
	// Name is the employee's display name.
	Name string
	// Period is the pay period label, e.g. "2026-W34".
	Period string
	// Hours is the total hours reported for the period.
	Hours float64
}

// Payslip is the calculated pay of one employee for one period, produced by
// the pay calculation processor.
type Payslip struct {
	// EmployeeID identifies the employee the payslip belongs to.
	EmployeeID string
	// Name is the employee's display name.
	Name string
	// Period is the pay period label the payslip covers.
	Period string
	// RegularHours is the portion of the reported hours paid at the base rate.
	RegularHours float64
	// OvertimeHours is the portion of the reported hours paid at the overtime rate.
	OvertimeHours float64
	// GrossPay is the pay before tax.
	GrossPay float64
	// Tax is the withheld tax amount.
	Tax float64
	// NetPay is the pay after tax.
	NetPay float64
}
