package domain

import (
	"strings"
	"time"
)

// Contact types recorded on a tenant
const (
	ContactEmail = "EMAIL"
	ContactSMS   = "SMS"
	ContactPhone = "PHONE"
)

// Tenant represents a person renting one of the user's properties.
// Multiple tenants may reference the same property; the link is not
// cardinality-enforced.
type Tenant struct {
	ID              int64
	Name            string
	Email           string
	Phone           string
	PropertyID      string
	LeaseStartDate  time.Time
	LeaseEndDate    time.Time
	DepositAmount   float64
	Documents       string // comma-separated document paths
	PaymentHistory  string // serialized payment history blob
	CommPreferences string // serialized communication preferences
	LastContactDate time.Time
	LastContactType string
	EmailNotify     bool
	SMSNotify       bool
}

// AddDocument appends a document path to the tenant's document list
func (t *Tenant) AddDocument(path string) {
	if t.Documents == "" {
		t.Documents = path
		return
	}
	t.Documents += "," + path
}

// RemoveDocument drops a document path from the tenant's document list
func (t *Tenant) RemoveDocument(path string) {
	var kept []string
	for _, doc := range strings.Split(t.Documents, ",") {
		if doc != path {
			kept = append(kept, doc)
		}
	}
	t.Documents = strings.Join(kept, ",")
}

// DocumentList returns the tenant's documents as a slice
func (t *Tenant) DocumentList() []string {
	if t.Documents == "" {
		return nil
	}
	return strings.Split(t.Documents, ",")
}

// NextRentDue returns the first of the current month, or the first of the
// next month once that date has passed
func (t *Tenant) NextRentDue(now time.Time) time.Time {
	due := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if now.After(due) {
		due = due.AddDate(0, 1, 0)
	}
	return due
}

// UpdateLastContact stamps the tenant with the time and type of the latest contact
func (t *Tenant) UpdateLastContact(contactType string, now time.Time) {
	t.LastContactDate = now
	t.LastContactType = contactType
}

// TenantRepository defines data access for tenants in a user's database
type TenantRepository interface {
	Save(t *Tenant) error
	ListForProperty(propertyID string) ([]*Tenant, error)
	ListAll() ([]*Tenant, error)
	Delete(id int64) error
}
