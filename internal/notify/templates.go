package notify

import (
	"fmt"
	"strings"
)

// Template names
const (
	TemplateRentReminder        = "RENT_REMINDER"
	TemplateMaintenanceUpdate   = "MAINTENANCE_UPDATE"
	TemplateInspectionNotice    = "INSPECTION_NOTICE"
	TemplateMonthlyReport       = "MONTHLY_REPORT"
	TemplateGeneralAnnouncement = "GENERAL_ANNOUNCEMENT"
	TemplateLeaseRenewal        = "LEASE_RENEWAL"
	TemplateMaintenanceSchedule = "MAINTENANCE_SCHEDULE"
	TemplateHolidayNotice       = "HOLIDAY_NOTICE"
	TemplatePolicyUpdate        = "POLICY_UPDATE"
	TemplateEmergencyNotice     = "EMERGENCY_NOTICE"
)

// templates holds the built-in plaintext bodies. Placeholders use the
// {TOKEN} form and are substituted verbatim, no escaping.
var templates = map[string]string{
	TemplateGeneralAnnouncement: `Dear {TENANT_NAME},

{ANNOUNCEMENT_TEXT}

If you have any questions or concerns, please don't hesitate to contact us.

Best regards,
Property Management Team
`,
	TemplateLeaseRenewal: `Dear {TENANT_NAME},

Your lease for {PROPERTY_ADDRESS} is due to expire on {LEASE_END_DATE}. We would like to offer you the opportunity to renew your lease.

Current Terms:
- Monthly Rent: £{CURRENT_RENT}
- Lease Period: {LEASE_PERIOD}

Please let us know your decision regarding lease renewal by {RESPONSE_DEADLINE}.

Best regards,
Property Management Team
`,
	TemplateMaintenanceSchedule: `Dear {TENANT_NAME},

We have scheduled the following maintenance work at {PROPERTY_ADDRESS}:

Work Details:
- Type: {MAINTENANCE_TYPE}
- Date: {SCHEDULED_DATE}
- Time: {SCHEDULED_TIME}
- Duration: {ESTIMATED_DURATION}

Please ensure the property is accessible during this time.

Best regards,
Property Management Team
`,
	TemplateHolidayNotice: `Dear {TENANT_NAME},

This is to inform you about our holiday schedule:

{HOLIDAY_DETAILS}

For emergencies during this period, please contact: {EMERGENCY_CONTACT}

Best regards,
Property Management Team
`,
	TemplatePolicyUpdate: `Dear {TENANT_NAME},

We are writing to inform you about important updates to our policies:

{POLICY_CHANGES}

These changes will take effect from {EFFECTIVE_DATE}.

Best regards,
Property Management Team
`,
	TemplateEmergencyNotice: `Dear {TENANT_NAME},

IMPORTANT NOTICE:

{EMERGENCY_DETAILS}

Action Required:
{ACTION_REQUIRED}

Emergency Contact: {EMERGENCY_CONTACT}

Best regards,
Property Management Team
`,
	TemplateRentReminder: `Dear {TENANT_NAME},

This is a friendly reminder that your rent payment of £{RENT_AMOUNT} for the property at {PROPERTY_ADDRESS} is due on {DUE_DATE}.

Payment Details:
- Amount Due: £{RENT_AMOUNT}
- Due Date: {DUE_DATE}
- Property: {PROPERTY_ADDRESS}

Please ensure timely payment to avoid any late fees.

If you have already made the payment, please disregard this notice.

Best regards,
{OWNER_NAME}
Property Management System
`,
	TemplateMaintenanceUpdate: `Dear {TENANT_NAME},

This is an update regarding your maintenance request for {PROPERTY_ADDRESS}:

Request Details:
- Issue: {MAINTENANCE_ISSUE}
- Status: {STATUS}
- Scheduled Date: {SCHEDULED_DATE}
- Contractor: {CONTRACTOR_NAME}

{ADDITIONAL_NOTES}

If you have any questions, please don't hesitate to contact us.

Best regards,
Property Management Team
`,
	TemplateInspectionNotice: `Dear {TENANT_NAME},

This is to notify you that a routine property inspection has been scheduled for your property at {PROPERTY_ADDRESS}.

Inspection Details:
- Date: {INSPECTION_DATE}
- Time: {INSPECTION_TIME}
- Duration: Approximately 30 minutes

Please ensure the property is accessible at the scheduled time. If this timing doesn't work for you, please contact us to reschedule.

Best regards,
Property Management Team
`,
	TemplateMonthlyReport: `Dear {OWNER_NAME},

Here is your monthly property report for {MONTH_YEAR}:

Property: {PROPERTY_ADDRESS}

Financial Summary:
- Rent Collected: £{RENT_COLLECTED}
- Maintenance Costs: £{MAINTENANCE_COSTS}
- Net Income: £{NET_INCOME}

Occupancy Status: {OCCUPANCY_STATUS}
Current Tenant: {TENANT_NAME}

Maintenance Summary:
{MAINTENANCE_SUMMARY}

Upcoming Events:
{UPCOMING_EVENTS}

Please review the attached detailed report for more information.

Best regards,
Property Management Team
`,
}

// Render substitutes {KEY} placeholders in the named template with the given
// values. It is a pure function; nothing is sent.
func Render(templateName string, params map[string]string) (string, error) {
	body, ok := templates[templateName]
	if !ok {
		return "", fmt.Errorf("unknown template: %s", templateName)
	}
	for key, value := range params {
		body = strings.ReplaceAll(body, "{"+key+"}", value)
	}
	return body, nil
}

// TemplateNames lists the available template identifiers
func TemplateNames() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	return names
}
