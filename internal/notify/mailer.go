package notify

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/yourorg/rentledger/internal/domain"
)

// ErrNotConfigured is returned when sending is attempted before the sender
// address and API key have been configured
var ErrNotConfigured = errors.New("email settings not configured")

const defaultSendGridBaseURL = "https://api.sendgrid.com/v3"

const sendTimeout = 30 * time.Second

// reportDateLayout formats dates for human-readable email bodies
const reportDateLayout = "2 January 2006"

// sendGridMail mirrors the SendGrid v3 mail/send payload
type sendGridMail struct {
	Personalizations []personalization `json:"personalizations"`
	From             emailAddress      `json:"from"`
	Subject          string            `json:"subject"`
	Content          []mailContent     `json:"content"`
}

type personalization struct {
	To []emailAddress `json:"to"`
}

type emailAddress struct {
	Email string `json:"email"`
}

type mailContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Mailer sends template-rendered plaintext email through the SendGrid HTTP
// API
type Mailer struct {
	client   *resty.Client
	settings *Settings
	logger   *slog.Logger
	dryRun   bool
}

// NewMailer creates a mailer using the given sender settings
func NewMailer(settings *Settings, logger *slog.Logger) *Mailer {
	if logger == nil {
		logger = slog.Default()
	}

	client := resty.New().
		SetBaseURL(defaultSendGridBaseURL).
		SetTimeout(sendTimeout).
		SetHeader("Content-Type", "application/json")

	return &Mailer{
		client:   client,
		settings: settings,
		logger:   logger,
	}
}

// SetBaseURL points the mailer at a different API endpoint. Used by tests.
func (m *Mailer) SetBaseURL(url string) {
	m.client.SetBaseURL(url)
}

// SetDryRun makes Send render and log without calling the provider
func (m *Mailer) SetDryRun(enabled bool) {
	m.dryRun = enabled
}

// Configured reports whether sender settings are present
func (m *Mailer) Configured() bool {
	return m.settings.Valid()
}

// Send renders the named template with params and delivers it to a single
// recipient. Missing sender settings are a blocking configuration error.
func (m *Mailer) Send(to, subject, templateName string, params map[string]string) error {
	if !m.settings.Valid() {
		return ErrNotConfigured
	}

	body, err := Render(templateName, params)
	if err != nil {
		return err
	}

	if m.dryRun {
		m.logger.Info("email dry run",
			slog.String("to", to),
			slog.String("subject", subject),
			slog.String("template", templateName),
			slog.Int("body_bytes", len(body)),
		)
		return nil
	}

	mail := sendGridMail{
		Personalizations: []personalization{{To: []emailAddress{{Email: to}}}},
		From:             emailAddress{Email: m.settings.Email},
		Subject:          subject,
		Content:          []mailContent{{Type: "text/plain", Value: body}},
	}

	resp, err := m.client.R().
		SetAuthToken(m.settings.APIKey).
		SetBody(mail).
		Post("/mail/send")
	if err != nil {
		m.logger.Error("failed to send email",
			slog.String("to", to),
			slog.String("template", templateName),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to send email: %w", err)
	}

	if resp.StatusCode() >= 400 {
		m.logger.Error("email rejected by provider",
			slog.String("to", to),
			slog.Int("status", resp.StatusCode()),
		)
		return fmt.Errorf("failed to send email: status %d: %s", resp.StatusCode(), resp.String())
	}

	m.logger.Info("email sent",
		slog.String("to", to),
		slog.String("template", templateName),
	)
	return nil
}

// SendBulk delivers one rendered email per tenant, skipping tenants with
// email notifications off or no address on file, and stamps the last-contact
// fields on every tenant actually contacted.
func (m *Mailer) SendBulk(tenants []*domain.Tenant, subject, templateName string, params map[string]string) error {
	for _, tenant := range tenants {
		if !tenant.EmailNotify || tenant.Email == "" {
			continue
		}

		tenantParams := make(map[string]string, len(params)+1)
		for k, v := range params {
			tenantParams[k] = v
		}
		tenantParams["TENANT_NAME"] = tenant.Name

		if err := m.Send(tenant.Email, subject, templateName, tenantParams); err != nil {
			return err
		}
		tenant.UpdateLastContact(domain.ContactEmail, time.Now())
	}
	return nil
}

// SendRentReminder emails a tenant their upcoming rent details
func (m *Mailer) SendRentReminder(tenant *domain.Tenant, property *domain.Property) error {
	params := map[string]string{
		"TENANT_NAME":      tenant.Name,
		"RENT_AMOUNT":      fmt.Sprintf("%.2f", property.MonthlyRent),
		"PROPERTY_ADDRESS": property.Address,
		"DUE_DATE":         tenant.NextRentDue(time.Now()).Format(reportDateLayout),
		"OWNER_NAME":       property.OwnerName,
	}
	return m.Send(tenant.Email, "Rent Payment Reminder - "+property.Address, TemplateRentReminder, params)
}

// SendMaintenanceUpdate emails a tenant the state of a maintenance request
func (m *Mailer) SendMaintenanceUpdate(tenant *domain.Tenant, property *domain.Property, request *domain.MaintenanceRequest) error {
	scheduled := "To be scheduled"
	if !request.ScheduledDate.IsZero() {
		scheduled = request.ScheduledDate.Format(reportDateLayout)
	}

	params := map[string]string{
		"TENANT_NAME":       tenant.Name,
		"PROPERTY_ADDRESS":  property.Address,
		"MAINTENANCE_ISSUE": request.Description,
		"STATUS":            request.Status,
		"SCHEDULED_DATE":    scheduled,
		"CONTRACTOR_NAME":   request.ContractorName,
		"ADDITIONAL_NOTES":  request.Notes,
	}
	return m.Send(tenant.Email, "Maintenance Update - "+property.Address, TemplateMaintenanceUpdate, params)
}

// SendInspectionNotice emails a tenant about a scheduled inspection
func (m *Mailer) SendInspectionNotice(tenant *domain.Tenant, property *domain.Property, inspectionDate time.Time, inspectionTime string) error {
	params := map[string]string{
		"TENANT_NAME":      tenant.Name,
		"PROPERTY_ADDRESS": property.Address,
		"INSPECTION_DATE":  inspectionDate.Format(reportDateLayout),
		"INSPECTION_TIME":  inspectionTime,
	}
	return m.Send(tenant.Email, "Property Inspection Notice - "+property.Address, TemplateInspectionNotice, params)
}

// SendMonthlyReport emails a property owner their monthly financial summary
func (m *Mailer) SendMonthlyReport(ownerEmail string, property *domain.Property, rentCollected, maintenanceCosts float64, maintenanceSummary, upcomingEvents string) error {
	monthYear := time.Now().Format("January 2006")
	params := map[string]string{
		"OWNER_NAME":          property.OwnerName,
		"MONTH_YEAR":          monthYear,
		"PROPERTY_ADDRESS":    property.Address,
		"RENT_COLLECTED":      fmt.Sprintf("%.2f", rentCollected),
		"MAINTENANCE_COSTS":   fmt.Sprintf("%.2f", maintenanceCosts),
		"NET_INCOME":          fmt.Sprintf("%.2f", rentCollected-maintenanceCosts),
		"OCCUPANCY_STATUS":    property.Status,
		"MAINTENANCE_SUMMARY": maintenanceSummary,
		"UPCOMING_EVENTS":     upcomingEvents,
	}
	subject := fmt.Sprintf("Monthly Property Report - %s - %s", property.Address, monthYear)
	return m.Send(ownerEmail, subject, TemplateMonthlyReport, params)
}
