package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/gauravjot/my-it-tools/internal/common"
	"github.com/gauravjot/my-it-tools/internal/dbx"
	"github.com/gauravjot/my-it-tools/internal/server/config"
	"github.com/gauravjot/my-it-tools/internal/server/models"
	attachmentsrepo "github.com/gauravjot/my-it-tools/internal/server/repositories/attachments"
	expensesrepo "github.com/gauravjot/my-it-tools/internal/server/repositories/expenses"
	incomesrepo "github.com/gauravjot/my-it-tools/internal/server/repositories/incomes"
	notesrepo "github.com/gauravjot/my-it-tools/internal/server/repositories/notes"
	refreshtokensrepo "github.com/gauravjot/my-it-tools/internal/server/repositories/refreshtokens"
	sharesrepo "github.com/gauravjot/my-it-tools/internal/server/repositories/shares"
	usersrepo "github.com/gauravjot/my-it-tools/internal/server/repositories/users"
)

// --- shared helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "k"
	cfg.AccessTokenValidityDuration = time.Hour
	cfg.RefreshTokenValidityDuration = 2 * time.Hour
	return cfg
}

// --- fake repositories ---

type fakeUsersRepo struct {
	createOut *models.User
	createErr error
	byEmail   *models.User
	emailErr  error
	byID      *models.User
	idErr     error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.emailErr != nil {
		return nil, f.emailErr
	}
	return f.byEmail, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.idErr != nil {
		return nil, f.idErr
	}
	return f.byID, nil
}

type fakeRefreshRepo struct {
	findOut   *models.RefreshToken
	findErr   error
	delErr    error
	createErr error
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	return f.createErr
}

func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error {
	return f.delErr
}

// fakeNotesRepo stores notes in memory, keyed by id. It stores whatever bytes
// the service hands it, so tests can observe that only ciphertext arrives.
type fakeNotesRepo struct {
	notes map[string]*models.Note
}

func newFakeNotesRepo() *fakeNotesRepo {
	return &fakeNotesRepo{notes: map[string]*models.Note{}}
}

func (f *fakeNotesRepo) Create(ctx context.Context, note *models.Note) error {
	clone := *note
	f.notes[note.ID] = &clone
	return nil
}

func (f *fakeNotesRepo) ListByUser(ctx context.Context, userID string) ([]*models.Note, error) {
	var result []*models.Note
	for _, n := range f.notes {
		if n.UserID == userID {
			meta := *n
			meta.Content = nil
			result = append(result, &meta)
		}
	}
	return result, nil
}

func (f *fakeNotesRepo) Get(ctx context.Context, id, userID string) (*models.Note, error) {
	n, ok := f.notes[id]
	if !ok || n.UserID != userID {
		return nil, common.ErrorNotFound
	}
	clone := *n
	return &clone, nil
}

func (f *fakeNotesRepo) GetByID(ctx context.Context, id string) (*models.Note, error) {
	n, ok := f.notes[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	clone := *n
	return &clone, nil
}

func (f *fakeNotesRepo) UpdateContent(ctx context.Context, id, userID string, content []byte) (*models.Note, error) {
	n, ok := f.notes[id]
	if !ok || n.UserID != userID {
		return nil, common.ErrorNotFound
	}
	n.Content = content
	n.Updated = time.Now().UTC()
	clone := *n
	clone.Content = nil
	return &clone, nil
}

func (f *fakeNotesRepo) UpdateTitle(ctx context.Context, id, userID, title string) error {
	n, ok := f.notes[id]
	if !ok || n.UserID != userID {
		return common.ErrorNotFound
	}
	n.Title = title
	return nil
}

func (f *fakeNotesRepo) Delete(ctx context.Context, id, userID string) error {
	n, ok := f.notes[id]
	if !ok || n.UserID != userID {
		return common.ErrorNotFound
	}
	delete(f.notes, id)
	return nil
}

type fakeSharesRepo struct {
	shares map[string]*models.NoteShare // keyed by passkey
}

func newFakeSharesRepo() *fakeSharesRepo {
	return &fakeSharesRepo{shares: map[string]*models.NoteShare{}}
}

func (f *fakeSharesRepo) Create(ctx context.Context, share *models.NoteShare) error {
	clone := *share
	f.shares[share.Passkey] = &clone
	return nil
}

func (f *fakeSharesRepo) ListByNote(ctx context.Context, noteID, userID string) ([]*models.NoteShare, error) {
	var result []*models.NoteShare
	for _, sh := range f.shares {
		if sh.NoteID == noteID && sh.UserID == userID {
			clone := *sh
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (f *fakeSharesRepo) FindActiveByPasskey(ctx context.Context, passkey string) (*models.NoteShare, error) {
	sh, ok := f.shares[passkey]
	if !ok || !sh.Active {
		return nil, common.ErrorNotFound
	}
	clone := *sh
	return &clone, nil
}

func (f *fakeSharesRepo) Disable(ctx context.Context, id, userID string) error {
	for _, sh := range f.shares {
		if sh.ID == id && sh.UserID == userID {
			sh.Active = false
			return nil
		}
	}
	return common.ErrorNotFound
}

type fakeIncomesRepo struct {
	created []*models.Income
	listOut []*models.Income
	listErr error
}

func (f *fakeIncomesRepo) Create(ctx context.Context, income *models.Income) (*models.Income, error) {
	income.ID = int64(len(f.created) + 1)
	income.AddedAt = time.Now()
	f.created = append(f.created, income)
	return income, nil
}

func (f *fakeIncomesRepo) ListRange(ctx context.Context, userID string, from, to time.Time) ([]*models.Income, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

type fakeExpensesRepo struct {
	expenses  map[int64]*models.Expense
	tags      []*models.ExpenseTag
	nextID    int64
	updateErr error
}

func newFakeExpensesRepo() *fakeExpensesRepo {
	return &fakeExpensesRepo{expenses: map[int64]*models.Expense{}}
}

func (f *fakeExpensesRepo) Create(ctx context.Context, expense *models.Expense) (*models.Expense, error) {
	f.nextID++
	expense.ID = f.nextID
	expense.AddedAt = time.Now()
	clone := *expense
	f.expenses[expense.ID] = &clone
	return expense, nil
}

func (f *fakeExpensesRepo) Get(ctx context.Context, id int64, userID string) (*models.Expense, error) {
	e, ok := f.expenses[id]
	if !ok || e.UserID != userID {
		return nil, common.ErrorNotFound
	}
	clone := *e
	for _, tag := range f.tags {
		if tag.ExpenseID == id {
			clone.Tags = append(clone.Tags, *tag)
		}
	}
	return &clone, nil
}

func (f *fakeExpensesRepo) ListRange(ctx context.Context, userID string, from, to time.Time) ([]*models.Expense, error) {
	var result []*models.Expense
	for _, e := range f.expenses {
		if e.UserID == userID {
			clone := *e
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (f *fakeExpensesRepo) Update(ctx context.Context, expense *models.Expense) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	e, ok := f.expenses[expense.ID]
	if !ok || e.UserID != expense.UserID {
		return common.ErrorNotFound
	}
	clone := *expense
	f.expenses[expense.ID] = &clone
	return nil
}

func (f *fakeExpensesRepo) Delete(ctx context.Context, id int64, userID string) error {
	e, ok := f.expenses[id]
	if !ok || e.UserID != userID {
		return common.ErrorNotFound
	}
	delete(f.expenses, id)
	return nil
}

func (f *fakeExpensesRepo) CreateTag(ctx context.Context, tag *models.ExpenseTag) (*models.ExpenseTag, error) {
	tag.ID = int64(len(f.tags) + 1)
	f.tags = append(f.tags, tag)
	return tag, nil
}

func (f *fakeExpensesRepo) FindTagByName(ctx context.Context, userID, name string) (*models.ExpenseTag, error) {
	for _, tag := range f.tags {
		if tag.UserID == userID && tag.Name == name {
			return tag, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeExpensesRepo) ListTags(ctx context.Context, userID string) ([]*models.ExpenseTag, error) {
	var result []*models.ExpenseTag
	for _, tag := range f.tags {
		if tag.UserID == userID {
			result = append(result, tag)
		}
	}
	return result, nil
}

type fakeAttachmentsRepo struct {
	attachments map[string]*models.Attachment // keyed by noteID+"/"+fileName
	createErr   error
}

func newFakeAttachmentsRepo() *fakeAttachmentsRepo {
	return &fakeAttachmentsRepo{attachments: map[string]*models.Attachment{}}
}

func (f *fakeAttachmentsRepo) Create(ctx context.Context, a *models.Attachment) error {
	if f.createErr != nil {
		return f.createErr
	}
	key := a.NoteID + "/" + a.FileName
	if _, ok := f.attachments[key]; ok {
		return common.ErrorAlreadyExists
	}
	clone := *a
	f.attachments[key] = &clone
	return nil
}

func (f *fakeAttachmentsRepo) Get(ctx context.Context, noteID, fileName string) (*models.Attachment, error) {
	a, ok := f.attachments[noteID+"/"+fileName]
	if !ok {
		return nil, common.ErrorNotFound
	}
	clone := *a
	return &clone, nil
}

func (f *fakeAttachmentsRepo) ListByNote(ctx context.Context, noteID string) ([]*models.Attachment, error) {
	var result []*models.Attachment
	for _, a := range f.attachments {
		if a.NoteID == noteID {
			clone := *a
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (f *fakeAttachmentsRepo) MarkUploaded(ctx context.Context, noteID, fileName string) error {
	a, ok := f.attachments[noteID+"/"+fileName]
	if !ok {
		return common.ErrorNotFound
	}
	a.UploadStatus = models.UploadCompleted
	return nil
}

func (f *fakeAttachmentsRepo) Delete(ctx context.Context, noteID, fileName string) error {
	key := noteID + "/" + fileName
	if _, ok := f.attachments[key]; !ok {
		return common.ErrorNotFound
	}
	delete(f.attachments, key)
	return nil
}

// --- fake manager ---

type fakeRepoManager struct {
	u  *fakeUsersRepo
	r  *fakeRefreshRepo
	n  *fakeNotesRepo
	sh *fakeSharesRepo
	i  *fakeIncomesRepo
	e  *fakeExpensesRepo
	a  *fakeAttachmentsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository      { return m.u }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository {
	return m.r
}
func (m *fakeRepoManager) Notes(db dbx.DBTX) notesrepo.Repository       { return m.n }
func (m *fakeRepoManager) Shares(db dbx.DBTX) sharesrepo.Repository     { return m.sh }
func (m *fakeRepoManager) Incomes(db dbx.DBTX) incomesrepo.Repository   { return m.i }
func (m *fakeRepoManager) Expenses(db dbx.DBTX) expensesrepo.Repository { return m.e }
func (m *fakeRepoManager) Attachments(db dbx.DBTX) attachmentsrepo.Repository {
	return m.a
}
