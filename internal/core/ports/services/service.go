package services

// ServiceContainer holds instances of all the application services. It is
// assembled once at program start and handed to the HTTP layer; no global
// lookup exists.
type ServiceContainer struct {
	Auth       AuthSvcFacade
	Authorizer AuthorizerSvc
	User       UserSvcFacade
	Company    CompanySvcFacade
	Account    AccountSvcFacade
	Document   DocumentSvcFacade
	Journal    JournalSvcFacade
	Reporting  ReportingSvcFacade
}
