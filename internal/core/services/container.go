package services

import (
	portsrepo "github.com/quillbooks/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/quillbooks/bookkeeping_app/internal/core/ports/services"
)

// Container holds all the services and manages their dependencies.
type Container struct {
	Ledger    portssvc.LedgerSvcFacade
	Account   portssvc.AccountSvcFacade
	Journal   portssvc.JournalSvcFacade
	Posting   portssvc.PostingSvcFacade
	Reporting portssvc.ReportingSvcFacade
	Payroll   portssvc.PayrollSvcFacade
}

// NewContainer wires the services onto the repositories and the event
// publisher. The posting service is built first because journal creation
// dispatches to it.
func NewContainer(repos *portsrepo.RepositoryProvider, events portssvc.EventPublisher) *Container {
	container := &Container{}

	container.Ledger = NewLedgerService(repos.LedgerRepo, repos.AccountRepo, events)
	container.Account = NewAccountService(repos.AccountRepo, repos.LedgerRepo, events)
	container.Posting = NewPostingService(repos.JournalRepo, repos.AccountRepo, events)
	container.Journal = NewJournalService(repos.JournalRepo, repos.AccountRepo, container.Posting, events)
	container.Reporting = NewReportingService(repos.LedgerRepo, repos.AccountRepo)
	container.Payroll = NewPayrollService(repos.PayrollRepo, repos.AccountRepo, container.Journal)

	return container
}
