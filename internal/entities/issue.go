package entities

import "time"

type IssueReporter string

const (
	IssueReporterDriver     IssueReporter = "driver"
	IssueReporterCustomer   IssueReporter = "customer"
	IssueReporterRestaurant IssueReporter = "restaurant"
)

func (r IssueReporter) IsValid() bool {
	switch r {
	case IssueReporterDriver, IssueReporterCustomer, IssueReporterRestaurant:
		return true
	default:
		return false
	}
}

type IssueType string

const (
	IssueDamaged      IssueType = "damaged"
	IssueMissingItems IssueType = "missing_items"
	IssueLate         IssueType = "late"
	IssueWrongAddress IssueType = "wrong_address"
	IssueOther        IssueType = "other"
)

func (t IssueType) IsValid() bool {
	switch t {
	case IssueDamaged, IssueMissingItems, IssueLate, IssueWrongAddress, IssueOther:
		return true
	default:
		return false
	}
}

type DeliveryIssue struct {
	ID          int64
	DeliveryID  int64
	ReportedBy  IssueReporter
	IssueType   IssueType
	Description string
	Image       *string
	CreatedAt   time.Time
}

// ReportIssue входные данные жалобы по доставке.
type ReportIssue struct {
	ClientID    string
	ReportedBy  IssueReporter
	IssueType   IssueType
	Description string
	Image       *string
}
