package log

// Common field names for structured logging
const (
	FieldComponent    = "component"
	FieldError        = "error"
	FieldOperation    = "operation"
	FieldJobID        = "job_id"
	FieldCustomerID   = "customer_id"
	FieldCustomerName = "customer_name"
	FieldStatus       = "status"
	FieldDueDate      = "due_date"
	FieldPriceCents   = "price_cents"
	FieldDBPath       = "db_path"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentStorage = "storage"
	ComponentIntake  = "intake"
	ComponentReport  = "report"
	ComponentCLI     = "cli"
)
