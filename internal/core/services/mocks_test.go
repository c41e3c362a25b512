package services_test

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/clearbooks-dev/clearbooks_backend/internal/core/domain"
	portsrepo "github.com/clearbooks-dev/clearbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/clearbooks-dev/clearbooks_backend/internal/core/ports/services"
	"github.com/clearbooks-dev/clearbooks_backend/internal/core/ports/storage"
	"github.com/clearbooks-dev/clearbooks_backend/pkg/outcome"
)

// --- Mock JournalEntryRepository ---

type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalEntryRepository = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) outcome.Outcome[domain.JournalEntry] {
	args := m.Called(ctx, entryID)
	return args.Get(0).(outcome.Outcome[domain.JournalEntry])
}

func (m *MockJournalRepository) FindEntriesByCompany(ctx context.Context, companyID string) outcome.Outcome[[]domain.JournalEntry] {
	args := m.Called(ctx, companyID)
	return args.Get(0).(outcome.Outcome[[]domain.JournalEntry])
}

func (m *MockJournalRepository) FindEntriesByDateRange(ctx context.Context, companyID string, from, to time.Time) outcome.Outcome[[]domain.JournalEntry] {
	args := m.Called(ctx, companyID, from, to)
	return args.Get(0).(outcome.Outcome[[]domain.JournalEntry])
}

func (m *MockJournalRepository) FindEntryBySourceDocument(ctx context.Context, documentID string) outcome.Outcome[domain.JournalEntry] {
	args := m.Called(ctx, documentID)
	return args.Get(0).(outcome.Outcome[domain.JournalEntry])
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) outcome.Outcome[outcome.Unit] {
	args := m.Called(ctx, entry)
	return args.Get(0).(outcome.Outcome[outcome.Unit])
}

func (m *MockJournalRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry) outcome.Outcome[outcome.Unit] {
	args := m.Called(ctx, entry)
	return args.Get(0).(outcome.Outcome[outcome.Unit])
}

func (m *MockJournalRepository) DeleteEntry(ctx context.Context, entryID string) outcome.Outcome[outcome.Unit] {
	args := m.Called(ctx, entryID)
	return args.Get(0).(outcome.Outcome[outcome.Unit])
}

func (m *MockJournalRepository) ComputeTrialBalance(ctx context.Context, companyID string, asOf time.Time) outcome.Outcome[domain.TrialBalance] {
	args := m.Called(ctx, companyID, asOf)
	return args.Get(0).(outcome.Outcome[domain.TrialBalance])
}

// --- Mock DocumentRepository ---

type MockDocumentRepository struct {
	mock.Mock
}

var _ portsrepo.DocumentRepository = (*MockDocumentRepository)(nil)

func (m *MockDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) outcome.Outcome[domain.Document] {
	args := m.Called(ctx, documentID)
	return args.Get(0).(outcome.Outcome[domain.Document])
}

func (m *MockDocumentRepository) FindDocumentsByCompany(ctx context.Context, companyID string) outcome.Outcome[[]domain.Document] {
	args := m.Called(ctx, companyID)
	return args.Get(0).(outcome.Outcome[[]domain.Document])
}

func (m *MockDocumentRepository) FindDocumentsByStatus(ctx context.Context, companyID string, status domain.DocumentStatus) outcome.Outcome[[]domain.Document] {
	args := m.Called(ctx, companyID, status)
	return args.Get(0).(outcome.Outcome[[]domain.Document])
}

func (m *MockDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) outcome.Outcome[outcome.Unit] {
	args := m.Called(ctx, doc)
	return args.Get(0).(outcome.Outcome[outcome.Unit])
}

func (m *MockDocumentRepository) UpdateDocumentStatus(ctx context.Context, doc domain.Document) outcome.Outcome[outcome.Unit] {
	args := m.Called(ctx, doc)
	return args.Get(0).(outcome.Outcome[outcome.Unit])
}

func (m *MockDocumentRepository) DeleteDocument(ctx context.Context, documentID string) outcome.Outcome[outcome.Unit] {
	args := m.Called(ctx, documentID)
	return args.Get(0).(outcome.Outcome[outcome.Unit])
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepository = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) outcome.Outcome[domain.Account] {
	args := m.Called(ctx, accountID)
	return args.Get(0).(outcome.Outcome[domain.Account])
}

func (m *MockAccountRepository) FindAccountsByCompany(ctx context.Context, companyID string) outcome.Outcome[[]domain.Account] {
	args := m.Called(ctx, companyID)
	return args.Get(0).(outcome.Outcome[[]domain.Account])
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) outcome.Outcome[outcome.Unit] {
	args := m.Called(ctx, account)
	return args.Get(0).(outcome.Outcome[outcome.Unit])
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID, actorUserID string, now time.Time) outcome.Outcome[outcome.Unit] {
	args := m.Called(ctx, accountID, actorUserID, now)
	return args.Get(0).(outcome.Outcome[outcome.Unit])
}

// --- Mock CompanyRepository ---

type MockCompanyRepository struct {
	mock.Mock
}

var _ portsrepo.CompanyRepository = (*MockCompanyRepository)(nil)

func (m *MockCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) outcome.Outcome[domain.Company] {
	args := m.Called(ctx, companyID)
	return args.Get(0).(outcome.Outcome[domain.Company])
}

func (m *MockCompanyRepository) FindCompanyByUser(ctx context.Context, userID string) outcome.Outcome[domain.Company] {
	args := m.Called(ctx, userID)
	return args.Get(0).(outcome.Outcome[domain.Company])
}

func (m *MockCompanyRepository) FindCompaniesByAccountant(ctx context.Context, accountantUserID string) outcome.Outcome[[]domain.Company] {
	args := m.Called(ctx, accountantUserID)
	return args.Get(0).(outcome.Outcome[[]domain.Company])
}

func (m *MockCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) outcome.Outcome[outcome.Unit] {
	args := m.Called(ctx, company)
	return args.Get(0).(outcome.Outcome[outcome.Unit])
}

func (m *MockCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) outcome.Outcome[outcome.Unit] {
	args := m.Called(ctx, company)
	return args.Get(0).(outcome.Outcome[outcome.Unit])
}

func (m *MockCompanyRepository) DeleteCompany(ctx context.Context, companyID string) outcome.Outcome[outcome.Unit] {
	args := m.Called(ctx, companyID)
	return args.Get(0).(outcome.Outcome[outcome.Unit])
}

func (m *MockCompanyRepository) SaveOpeningBalance(ctx context.Context, ob domain.OpeningBalance) outcome.Outcome[outcome.Unit] {
	args := m.Called(ctx, ob)
	return args.Get(0).(outcome.Outcome[outcome.Unit])
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) outcome.Outcome[domain.User] {
	args := m.Called(ctx, userID)
	return args.Get(0).(outcome.Outcome[domain.User])
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) outcome.Outcome[domain.User] {
	args := m.Called(ctx, email)
	return args.Get(0).(outcome.Outcome[domain.User])
}

func (m *MockUserRepository) ListUsers(ctx context.Context) outcome.Outcome[[]domain.User] {
	args := m.Called(ctx)
	return args.Get(0).(outcome.Outcome[[]domain.User])
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) outcome.Outcome[outcome.Unit] {
	args := m.Called(ctx, user)
	return args.Get(0).(outcome.Outcome[outcome.Unit])
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) outcome.Outcome[outcome.Unit] {
	args := m.Called(ctx, user)
	return args.Get(0).(outcome.Outcome[outcome.Unit])
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, userID string) outcome.Outcome[outcome.Unit] {
	args := m.Called(ctx, userID)
	return args.Get(0).(outcome.Outcome[outcome.Unit])
}

// --- Mock FileStorage ---

type MockFileStorage struct {
	mock.Mock
}

var _ storage.FileStorage = (*MockFileStorage)(nil)

func (m *MockFileStorage) Upload(ctx context.Context, content io.Reader, path string) outcome.Outcome[storage.StoredFile] {
	args := m.Called(ctx, content, path)
	return args.Get(0).(outcome.Outcome[storage.StoredFile])
}

func (m *MockFileStorage) Delete(ctx context.Context, path string) outcome.Outcome[outcome.Unit] {
	args := m.Called(ctx, path)
	return args.Get(0).(outcome.Outcome[outcome.Unit])
}

func (m *MockFileStorage) GetURL(ctx context.Context, path string) outcome.Outcome[string] {
	args := m.Called(ctx, path)
	return args.Get(0).(outcome.Outcome[string])
}

func (m *MockFileStorage) Download(ctx context.Context, path string) outcome.Outcome[io.ReadCloser] {
	args := m.Called(ctx, path)
	return args.Get(0).(outcome.Outcome[io.ReadCloser])
}

// --- Mock AuthorizerSvc ---

type MockAuthorizer struct {
	mock.Mock
}

var _ portssvc.AuthorizerSvc = (*MockAuthorizer)(nil)

func (m *MockAuthorizer) CanManageUser(ctx context.Context, actorUserID, targetUserID string) outcome.Outcome[bool] {
	args := m.Called(ctx, actorUserID, targetUserID)
	return args.Get(0).(outcome.Outcome[bool])
}

func (m *MockAuthorizer) CanAccessCompany(ctx context.Context, userID, companyID string) outcome.Outcome[bool] {
	args := m.Called(ctx, userID, companyID)
	return args.Get(0).(outcome.Outcome[bool])
}

func (m *MockAuthorizer) HasPermission(ctx context.Context, userID, permission string) outcome.Outcome[bool] {
	args := m.Called(ctx, userID, permission)
	return args.Get(0).(outcome.Outcome[bool])
}
