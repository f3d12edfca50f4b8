package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	ChartOfAccounts ChartOfAccountsSvcFacade
	Journal         JournalSvcFacade
	Revenue         RevenueSvcFacade
	Ledger          LedgerSvc
	Customer        CustomerSvcFacade
	Audit           AuditSvcFacade
	Reporting       ReportingService
}
