package types

// StripeEventType is the `type` field of a Stripe event envelope.
type StripeEventType string

const (
	StripeEventSubscriptionCreated     StripeEventType = "customer.subscription.created"
	StripeEventSubscriptionUpdated     StripeEventType = "customer.subscription.updated"
	StripeEventSubscriptionDeleted     StripeEventType = "customer.subscription.deleted"
	StripeEventInvoicePaymentSucceeded StripeEventType = "invoice.payment_succeeded"
)

const (
	// UnknownCustomer is used when a customer lookup fails or the payload has no customer.
	UnknownCustomer = "Unknown"
	// NoCustomerEmail is used when the customer exists but has no email on file.
	NoCustomerEmail = "No email"
	// NotApplicable is recorded as the customer email of unhandled events.
	NotApplicable = "N/A"
)
