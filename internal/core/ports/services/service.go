package services

// ServiceContainer holds instances of all the application services.
// Handlers and the demo runner reach services through it.
type ServiceContainer struct {
	Person PersonSvcFacade
}
